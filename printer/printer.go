// Package printer renders a token.Stream back into SQL text. The mapping
// from token kinds to output fragments is exhaustive; a kind the printer
// does not know is a programming defect, not an error condition.
package printer

import (
	"fmt"
	"strings"

	"github.com/sqlsift/sqlsift/token"
)

// Render writes every token of sql in order and returns the result.
// Tombstones emit nothing. Content tokens emit the buffer text their slice
// refers to; quoted tokens re-emit their delimiters, except that a quote
// left unterminated in the input stays unterminated in the output.
func Render(sql *token.Stream) string {
	var out strings.Builder
	out.Grow(len(sql.Buf))
	for _, t := range sql.Tokens {
		switch t.Kind {
		case token.None:
		case token.Backticked:
			quoted(&out, sql, t, '`')
		case token.DoubleQuoted:
			quoted(&out, sql, t, '"')
		case token.SingleQuoted:
			quoted(&out, sql, t, '\'')
		case token.Numeric, token.Comment, token.NumberedPlaceholder, token.Ident:
			out.WriteString(sql.Content(t.Span))
		case token.Charset:
			out.WriteByte('_')
			out.WriteString(sql.Content(t.Span))
		case token.Unknown:
			out.WriteRune(t.Rune)
		default:
			text, ok := kindText[t.Kind]
			if !ok {
				panic(fmt.Sprintf("printer: no rendering for token kind %d", t.Kind))
			}
			out.WriteString(text)
		}
	}
	return out.String()
}

func quoted(out *strings.Builder, sql *token.Stream, t token.Token, delim byte) {
	out.WriteByte(delim)
	out.WriteString(sql.Content(t.Span))
	if t.Span.End < len(sql.Buf) {
		out.WriteByte(delim)
	}
}

// kindText maps every fixed-text kind to its canonical output. Keywords
// and word operators render uppercase regardless of input casing.
var kindText = map[token.Kind]string{
	token.Space:        " ",
	token.Newline:      "\n",
	token.Dot:          ".",
	token.Comma:        ",",
	token.ParenOpen:    "(",
	token.ParenClose:   ")",
	token.BracketOpen:  "[",
	token.BracketClose: "]",
	token.Colon:        ":",
	token.Semicolon:    ";",
	token.Placeholder:  "?",
	token.Wildcard:     "*",
	token.Ellipsis:     "...",
	token.Null:         "NULL",
	token.True:         "TRUE",
	token.False:        "FALSE",

	token.Select:  "SELECT",
	token.From:    "FROM",
	token.Where:   "WHERE",
	token.And:     "AND",
	token.Or:      "OR",
	token.Update:  "UPDATE",
	token.Set:     "SET",
	token.Insert:  "INSERT",
	token.Into:    "INTO",
	token.Values:  "VALUES",
	token.Inner:   "INNER",
	token.Join:    "JOIN",
	token.On:      "ON",
	token.Limit:   "LIMIT",
	token.Offset:  "OFFSET",
	token.Between: "BETWEEN",
	token.Array:   "ARRAY",

	token.Multiply: "*",
	token.Divide:   "/",
	token.Modulo:   "%",
	token.Plus:     "+",
	token.Minus:    "-",

	token.In:     "IN",
	token.Not:    "NOT",
	token.Like:   "LIKE",
	token.Ilike:  "ILIKE",
	token.Rlike:  "RLIKE",
	token.Glob:   "GLOB",
	token.Match:  "MATCH",
	token.Regexp: "REGEXP",
	token.Then:   "THEN",
	token.Else:   "ELSE",

	token.Equal:         "=",
	token.DoubleEqual:   "==",
	token.NullSafeEqual: "<=>",
	token.GreaterEqual:  ">=",
	token.LessEqual:     "<=",
	token.EqualGreater:  "=>",
	token.EqualLess:     "=<",
	token.LessGreater:   "<>",
	token.NotEqual:      "!=",
	token.Greater:       ">",
	token.Less:          "<",

	token.ShiftLeft:  "<<",
	token.ShiftRight: ">>",
	token.BitAnd:     "&",
	token.BitOr:      "|",

	token.JSONPath:     "#>",
	token.JSONPathText: "#>>",

	token.Binary:       "BINARY",
	token.Date:         "DATE",
	token.Time:         "TIME",
	token.Timestamp:    "TIMESTAMP",
	token.HexIndicator: "x",
	token.ZeroX:        "0x",
	token.BitIndicator: "b",
	token.ZeroB:        "0b",
	token.National:     "n",
}
