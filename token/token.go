// Package token defines the token vocabulary shared by the scanner,
// sanitizer and printer packages. Tokens never copy text out of the
// statement they were scanned from; content-bearing tokens reference the
// original buffer through a Slice.
package token

// Slice is a half-open byte range [Start, End) into the buffer a Stream
// owns. Content tokens use slices instead of copies so that scanning a
// statement allocates nothing per token.
type Slice struct {
	Start int
	End   int
}

// Kind classifies a Token. The enumeration is grouped into blocks so that
// the sanitizer can test token classes with a range check.
type Kind uint8

const (
	// None is a tombstone: a token deleted by the sanitizer. It renders as
	// nothing. Tombstoning instead of removal keeps token indices stable
	// during the sanitizer's single forward pass.
	None Kind = iota

	Space
	Newline
	Dot
	Comma
	ParenOpen
	ParenClose
	BracketOpen
	BracketClose
	Colon
	Semicolon
	Placeholder
	Wildcard
	Ellipsis
	Null
	True
	False
	Unknown

	// Content tokens. Span references the token's text in the buffer,
	// excluding quote delimiters.
	Backticked
	DoubleQuoted
	SingleQuoted
	Numeric
	Comment
	NumberedPlaceholder

	// Keywords. Ident is the catch-all for every unrecognized alphabetic
	// run: function names, table names, column names. The sanitizer relies
	// on that to detect expression scopes without a grammar.
	Select
	From
	Where
	And
	Or
	Update
	Set
	Insert
	Into
	Values
	Inner
	Join
	On
	Limit
	Offset
	Between
	Array
	Ident

	// Arithmetic operators.
	Multiply
	Divide
	Modulo
	Plus
	Minus

	// Logical operators.
	In
	Not
	Like
	Ilike
	Rlike
	Glob
	Match
	Regexp
	Then
	Else

	// Comparison operators.
	Equal
	DoubleEqual
	NullSafeEqual
	GreaterEqual
	LessEqual
	EqualGreater
	EqualLess
	LessGreater
	NotEqual
	Greater
	Less

	// Bitwise operators.
	ShiftLeft
	ShiftRight
	BitAnd
	BitOr

	// JSON path operators.
	JSONPath
	JSONPathText

	// Literal value type indicators: prefixes that mark the next token as a
	// literal even though no operator sits between them.
	Binary
	Date
	Time
	Timestamp
	HexIndicator
	ZeroX
	BitIndicator
	ZeroB
	National
	Charset
)

// IsKeyword reports whether k is a fixed keyword or the Ident catch-all.
func (k Kind) IsKeyword() bool { return k >= Select && k <= Ident }

// IsOperator reports whether k is an arithmetic, logical, comparison,
// bitwise or JSON path operator.
func (k Kind) IsOperator() bool { return k >= Multiply && k <= JSONPathText }

// IsIndicator reports whether k is a literal value type indicator.
func (k Kind) IsIndicator() bool { return k >= Binary && k <= Charset }

// IsSensitive reports whether k is a literal eligible for placeholder
// substitution: quoted strings, numbers and the NULL/TRUE/FALSE literals.
// Backticked strings are always identifiers and are never sensitive.
func (k Kind) IsSensitive() bool {
	switch k {
	case SingleQuoted, DoubleQuoted, Numeric, Null, True, False:
		return true
	}
	return false
}

// Token is one lexical element of a statement. Span is meaningful for
// content kinds only; Rune is meaningful for Unknown only.
type Token struct {
	Kind Kind
	Span Slice
	Rune rune
}

// Stream is a tokenized SQL statement: the original text plus the ordered
// token sequence scanned from it. The buffer is immutable once scanned;
// the sanitizer rewrites tokens in place and never edits the buffer.
type Stream struct {
	Buf    string
	Tokens []Token
}

// Content returns the text a slice refers to. An inverted or out-of-range
// slice yields "" rather than a panic, so callers holding a stale slice
// degrade to an empty string.
func (s *Stream) Content(sp Slice) string {
	if sp.Start < 0 || sp.End > len(s.Buf) || sp.Start > sp.End {
		return ""
	}
	return s.Buf[sp.Start:sp.End]
}
