// Package scanner turns raw SQL text into a token.Stream. Scanning is
// total: any Unicode input produces a token sequence, and malformed input
// degrades to Unknown tokens instead of failing.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sqlsift/sqlsift/token"
)

// charPos pairs a rune with its byte offset, so token slices always land
// on scalar value boundaries even for multi-byte input.
type charPos struct {
	off int
	r   rune
}

type lexer struct {
	buf   string
	chars []charPos
	pos   int

	// pastSelect tracks whether a SELECT has been seen with no FROM yet,
	// which decides `*` between wildcard and multiplication.
	pastSelect bool
}

// Lex tokenizes sql. It never fails; characters that fit no rule become
// Unknown tokens. The returned stream references sql, it does not copy it.
func Lex(sql string) *token.Stream {
	l := &lexer{buf: sql, chars: make([]charPos, 0, len(sql))}
	for off, r := range sql {
		l.chars = append(l.chars, charPos{off: off, r: r})
	}
	return &token.Stream{Buf: sql, Tokens: l.run()}
}

func (l *lexer) run() []token.Token {
	tokens := make([]token.Token, 0, len(l.chars)/2+1)
	emit := func(k token.Kind) {
		tokens = append(tokens, token.Token{Kind: k})
	}
	span := func(k token.Kind, start, end int) {
		tokens = append(tokens, token.Token{Kind: k, Span: token.Slice{Start: start, End: end}})
	}

	for l.pos < len(l.chars) {
		off, r := l.chars[l.pos].off, l.chars[l.pos].r
		switch {
		case r == '`':
			span(token.Backticked, off+1, l.scanQuoted(off, '`'))
		case r == '\'':
			span(token.SingleQuoted, off+1, l.scanQuoted(off, '\''))
		case r == '"':
			span(token.DoubleQuoted, off+1, l.scanQuoted(off, '"'))
		case r == '#' && (l.pos+1 >= len(l.chars) || l.at(l.pos+1) != '>'):
			// A lone # opens a comment; #> and #>> are JSON operators.
			span(token.Comment, off, l.scanUntil(off, func(_ *lexer, c rune) bool {
				return c == '\n' || c == '\r'
			}))
		case r == '-' && l.pos+1 < len(l.chars) && l.at(l.pos+1) == '-':
			span(token.Comment, off, l.scanUntil(off, func(_ *lexer, c rune) bool {
				return c == '\n' || c == '\r'
			}))
		case r == '/' && l.pos+1 < len(l.chars) && l.at(l.pos+1) == '*':
			span(token.Comment, off, l.scanUntil(off, func(l *lexer, _ rune) bool {
				return l.pos > 1 && l.at(l.pos-2) == '*' && l.at(l.pos-1) == '/'
			}))
		case r == ' ':
			l.pos++
			emit(token.Space)
		case r == '\n' || r == '\r':
			l.pos++
			emit(token.Newline)
		case r == '.':
			l.pos++
			emit(token.Dot)
		case r == ',':
			l.pos++
			emit(token.Comma)
		case r == '(':
			l.pos++
			emit(token.ParenOpen)
		case r == ')':
			l.pos++
			emit(token.ParenClose)
		case r == '[':
			l.pos++
			emit(token.BracketOpen)
		case r == ']':
			l.pos++
			emit(token.BracketClose)
		case r == ':':
			l.pos++
			emit(token.Colon)
		case r == ';':
			l.pos++
			emit(token.Semicolon)
		case r == '?':
			l.pos++
			emit(token.Placeholder)
		case r == '$':
			span(token.NumberedPlaceholder, off, l.scanUntil(off, func(_ *lexer, c rune) bool {
				return !unicode.IsDigit(c)
			}))
		case r == '*':
			l.pos++
			if l.pastSelect {
				emit(token.Wildcard)
			} else {
				emit(token.Multiply)
			}
		case r == '/':
			l.pos++
			emit(token.Divide)
		case r == '%':
			l.pos++
			emit(token.Modulo)
		case r == '+':
			l.pos++
			emit(token.Plus)
		case r == '-' && !(l.pos+1 < len(l.chars) && unicode.IsDigit(l.at(l.pos+1))):
			// A - directly followed by a digit folds into the numeric token
			// below instead.
			l.pos++
			emit(token.Minus)
		case r == '=' || r == '!' || r == '>' || r == '<' || r == '&' || r == '|' || r == '#':
			end := l.scanUntil(off, func(_ *lexer, c rune) bool {
				switch c {
				case '=', '!', '>', '<':
					return false
				}
				return true
			})
			run := l.buf[off:end]
			if k, ok := operatorKinds[run]; ok {
				emit(k)
			} else {
				// Unresolvable runs degrade one character at a time so that
				// scanning stays total.
				for _, c := range run {
					tokens = append(tokens, token.Token{Kind: token.Unknown, Rune: c})
				}
			}
		case r == '_':
			span(token.Charset, off+1, l.scanUntil(off, func(_ *lexer, c rune) bool {
				return !unicode.IsLetter(c) && !unicode.IsDigit(c)
			}))
		case unicode.IsLetter(r):
			end := l.scanUntil(off, func(_ *lexer, c rune) bool {
				return !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '-'
			})
			word := l.buf[off:end]
			if k, ok := wordKinds[strings.ToLower(word)]; ok {
				switch k {
				case token.Select:
					l.pastSelect = true
				case token.From:
					l.pastSelect = false
				}
				emit(k)
			} else {
				span(token.Ident, off, end)
			}
		case unicode.IsDigit(r) || r == '-':
			end := l.scanUntil(off, func(_ *lexer, c rune) bool {
				switch c {
				case '.', 'x', 'X', 'b', 'B':
					return false
				}
				return !unicode.IsDigit(c)
			})
			switch l.buf[off:end] {
			case "0x", "0X":
				emit(token.ZeroX)
			case "0b", "0B":
				emit(token.ZeroB)
			default:
				span(token.Numeric, off, end)
			}
		default:
			l.pos++
			tokens = append(tokens, token.Token{Kind: token.Unknown, Rune: r})
		}
	}
	return tokens
}

func (l *lexer) at(pos int) rune { return l.chars[pos].r }

// scanUntil advances the cursor from the character at the current position
// until atEnd reports true for the character under the cursor, and returns
// the exclusive byte offset of the scanned run. Hitting end of input closes
// the run after the last character.
func (l *lexer) scanUntil(end int, atEnd func(*lexer, rune) bool) int {
	l.pos++
	for {
		if l.pos >= len(l.chars) {
			end += utf8.RuneLen(l.chars[l.pos-1].r)
			break
		}
		cp := l.chars[l.pos]
		end = cp.off
		if atEnd(l, cp.r) {
			break
		}
		l.pos++
	}
	return end
}

// scanQuoted scans a quoted run opened by delim, honoring backslash
// escapes: the delimiter only closes the run when preceded by an even
// number of consecutive backslashes. An unterminated quote closes at end
// of input. The returned offset excludes the closing delimiter.
func (l *lexer) scanQuoted(end int, delim rune) int {
	escapes := 0
	l.pos++
	for {
		if l.pos >= len(l.chars) {
			end += utf8.RuneLen(l.chars[l.pos-1].r)
			break
		}
		cp := l.chars[l.pos]
		end = cp.off
		if cp.r == delim && escapes%2 == 0 {
			l.pos++
			break
		}
		if cp.r == '\\' {
			escapes++
		} else {
			escapes = 0
		}
		l.pos++
	}
	return end
}

// operatorKinds resolves a greedily scanned operator run. Longest
// operators are three characters; runs absent from the table are not
// operators at all.
var operatorKinds = map[string]token.Kind{
	"=":   token.Equal,
	"==":  token.DoubleEqual,
	"<=>": token.NullSafeEqual,
	">=":  token.GreaterEqual,
	"<=":  token.LessEqual,
	"=>":  token.EqualGreater,
	"=<":  token.EqualLess,
	"<>":  token.LessGreater,
	"!=":  token.NotEqual,
	">":   token.Greater,
	"<":   token.Less,
	"<<":  token.ShiftLeft,
	">>":  token.ShiftRight,
	"&":   token.BitAnd,
	"|":   token.BitOr,
	"#>":  token.JSONPath,
	"#>>": token.JSONPathText,
}

// wordKinds resolves alphabetic runs case-insensitively. Anything missing
// here is an identifier.
var wordKinds = map[string]token.Kind{
	"select":  token.Select,
	"from":    token.From,
	"where":   token.Where,
	"and":     token.And,
	"or":      token.Or,
	"update":  token.Update,
	"set":     token.Set,
	"insert":  token.Insert,
	"into":    token.Into,
	"values":  token.Values,
	"inner":   token.Inner,
	"join":    token.Join,
	"on":      token.On,
	"limit":   token.Limit,
	"offset":  token.Offset,
	"between": token.Between,
	"array":   token.Array,

	"in":     token.In,
	"not":    token.Not,
	"like":   token.Like,
	"ilike":  token.Ilike,
	"rlike":  token.Rlike,
	"glob":   token.Glob,
	"match":  token.Match,
	"regexp": token.Regexp,
	"then":   token.Then,
	"else":   token.Else,

	"binary":    token.Binary,
	"date":      token.Date,
	"time":      token.Time,
	"timestamp": token.Timestamp,
	"x":         token.HexIndicator,
	"b":         token.BitIndicator,
	"n":         token.National,

	"null":  token.Null,
	"true":  token.True,
	"false": token.False,
}
