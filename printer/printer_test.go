package printer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsift/sqlsift/printer"
	"github.com/sqlsift/sqlsift/scanner"
	"github.com/sqlsift/sqlsift/token"
)

// Rendering an unmodified token stream must reproduce the input exactly,
// as long as the input uses canonical keyword casing.
func TestRenderRoundTrip(t *testing.T) {
	tt := []struct {
		name string
		sql  string
	}{
		{name: "empty", sql: ""},
		{name: "whitespace only", sql: "   \n "},
		{name: "basic select", sql: "SELECT `table`.* FROM `table` WHERE `id` = 'secret' LIMIT 1;"},
		{name: "all keywords", sql: "SELECT FROM WHERE AND OR UPDATE SET INSERT INTO VALUES INNER JOIN ON LIMIT OFFSET BETWEEN ARRAY"},
		{name: "operators", sql: "= == <=> >= <= => =< <> != > < << >> & | #> #>> * / % + -"},
		{name: "logical operators", sql: "IN NOT LIKE ILIKE RLIKE GLOB MATCH REGEXP THEN ELSE"},
		{name: "indicators", sql: "BINARY DATE TIME TIMESTAMP x 0x b 0b n _utf8'str'"},
		{name: "literals", sql: "NULL TRUE FALSE 18 18.0 -1.0 'text' \"quoted\""},
		{name: "placeholders", sql: "? $1 $23"},
		{name: "punctuation", sql: "a.b, (c), [d], e:f;"},
		{name: "comment", sql: "SELECT 1 -- trailing\n"},
		{name: "quote with escapes", sql: "'val\\'ue' \"sec\nret\\\\\""},
		{name: "unknown characters", sql: "~ ^"},
		{name: "multibyte", sql: "\"hæld\" ; 'jæld' ; `tæld`"},
		{name: "unterminated single quote", sql: "SELECT 'never closed"},
		{name: "unterminated double quote", sql: "\"val\\\"ue"},
		{name: "lone quote", sql: "'"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.sql, printer.Render(scanner.Lex(tc.sql)))
		})
	}
}

func TestRenderCanonicalizesKeywords(t *testing.T) {
	got := printer.Render(scanner.Lex("select * from table where id in (1) and x'ff'"))
	require.Equal(t, "SELECT * FROM table WHERE id IN (1) AND x'ff'", got)
}

func TestRenderSkipsTombstones(t *testing.T) {
	sql := scanner.Lex("SELECT 1;")
	for i := range sql.Tokens {
		if sql.Tokens[i].Kind == token.Numeric {
			sql.Tokens[i] = token.Token{Kind: token.None}
		}
	}
	require.Equal(t, "SELECT ;", printer.Render(sql))
}

func TestRenderSyntheticTokens(t *testing.T) {
	sql := &token.Stream{Tokens: []token.Token{
		{Kind: token.Placeholder},
		{Kind: token.Comma},
		{Kind: token.Ellipsis},
	}}
	require.Equal(t, "?,...", printer.Render(sql))
}
