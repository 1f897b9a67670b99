// Package sanitizer rewrites a token stream so that no literal value
// survives. It is a single left-to-right pass driven by one state
// variable; tokens are replaced in place or tombstoned, never reordered,
// and the underlying buffer is never edited.
package sanitizer

import "github.com/sqlsift/sqlsift/token"

// state is the sanitizer's view of where in the statement it stands. It
// is deliberately coarse: just enough grammar to tell a literal that must
// be replaced from one that is part of the statement's structure.
type state int

const (
	stateDefault state = iota
	// stateAfterOperator: an operator was just seen, the next literal is a
	// compared value.
	stateAfterOperator
	// stateScopeOpened: a parenthesis opened directly after an operator,
	// e.g. IN (...). A literal here collapses the whole list.
	stateScopeOpened
	// stateInsertValues: inside the first row of an INSERT ... VALUES.
	stateInsertValues
	// stateRowClosed: a VALUES row just closed; another opening paren
	// starts a row to collapse.
	stateRowClosed
	// stateJoinOn: inside a JOIN ... ON clause, where quoted identifiers
	// must survive.
	stateJoinOn
	stateOffset
	stateBetween
	// stateKeywordScope: after a generic keyword (including the identifier
	// catch-all, so function and table names land here).
	stateKeywordScope
	// stateKeywordScopeOpened: inside the parentheses following a generic
	// keyword, e.g. function arguments.
	stateKeywordScopeOpened
	stateArray
	// stateArrayOpened: inside ARRAY[...]. Same collapse rule as
	// stateScopeOpened.
	stateArrayOpened
	// stateIndicator: after a literal value type indicator such as x or
	// DATE, whose operand is always a literal.
	stateIndicator
)

// Sanitize rewrites sql in place and returns it. Sensitive literals become
// placeholders, opened lists and repeated INSERT rows collapse, comments
// disappear. Pre-existing ? and $N placeholders pass through untouched, so
// sanitizing already-sanitized text is a no-op.
func Sanitize(sql *token.Stream) *token.Stream {
	toks := sql.Tokens
	st := stateDefault

	for i := 0; i < len(toks); i++ {
		k := toks[i].Kind
		switch {
		case k == token.None:
			// Tombstones are invisible to the state machine.

		case k.IsOperator() && st != stateJoinOn:
			st = stateAfterOperator

		case k == token.Values:
			st = stateInsertValues
		case k == token.On:
			st = stateJoinOn
		case k == token.Offset:
			st = stateOffset
		case k == token.Between:
			st = stateBetween
		case k == token.Array:
			st = stateArray

		case k == token.And && st == stateBetween:
			// BETWEEN ? AND ? — the AND belongs to the clause.
		case (k == token.And || k == token.Or) && st == stateKeywordScope:
			st = stateKeywordScopeOpened
		case k == token.Insert || k == token.Into:
			// INSERT INTO carries no scope of its own.
		case k.IsKeyword() && st == stateKeywordScopeOpened:
			// Keywords inside an opened scope (nested calls, qualified
			// names) keep the scope alive.
		case k.IsKeyword():
			st = stateKeywordScope

		case k.IsIndicator():
			st = stateIndicator

		case k == token.ParenOpen && st == stateAfterOperator:
			st = stateScopeOpened
		case k == token.ParenOpen && st == stateKeywordScope:
			st = stateKeywordScopeOpened
		case k == token.ParenOpen && st == stateInsertValues:
			// Row opening paren of the first VALUES row.
		case k == token.BracketOpen && st == stateArray:
			st = stateArrayOpened
		case k == token.ParenClose && st == stateInsertValues:
			st = stateRowClosed
		case k == token.Comma && st == stateRowClosed:
			// Separator between VALUES rows.
		case k == token.ParenOpen && st == stateRowClosed:
			i = collapseRow(toks, i)
			st = stateRowClosed
		case k == token.ParenClose || k == token.BracketClose:
			st = stateDefault

		case k == token.Dot && st == stateJoinOn:
			// Qualified name in an ON clause, keep the state alive across
			// the dot so the following quoted identifier survives.

		case k.IsSensitive():
			switch st {
			case stateAfterOperator, stateInsertValues, stateOffset,
				stateKeywordScopeOpened, stateBetween, stateIndicator:
				if k == token.DoubleQuoted && adjoinsDot(toks, i) {
					// "table"."column" is an identifier, not a value.
					break
				}
				toks[i] = token.Token{Kind: token.Placeholder}
			case stateScopeOpened, stateArrayOpened:
				collapseList(toks, i)
			}
			// Literals never change the state, sanitized or not.

		case k == token.Comment:
			toks[i] = token.Token{Kind: token.None}
			if j := prevLive(toks, i); j >= 0 && toks[j].Kind == token.Space {
				toks[j] = token.Token{Kind: token.None}
			}

		case k == token.Space:
			// Whitespace is transparent.

		case st == stateInsertValues || st == stateKeywordScopeOpened:
			// Sticky states: everything else inside them passes through.

		default:
			st = stateDefault
		}
	}
	return sql
}

// collapseList replaces a literal-opened list with a single placeholder:
// every token from the literal at i up to (excluding) the first closing
// paren or bracket is tombstoned, then the literal's slot becomes the
// placeholder.
func collapseList(toks []token.Token, i int) {
	for j := i; j < len(toks); j++ {
		if toks[j].Kind == token.ParenClose || toks[j].Kind == token.BracketClose {
			break
		}
		toks[j] = token.Token{Kind: token.None}
	}
	toks[i] = token.Token{Kind: token.Placeholder}
}

// collapseRow elides a second-or-later INSERT VALUES row. toks[i] is the
// row's opening paren. The whole row, through its matching close, is
// tombstoned; the row becomes a single ellipsis, or vanishes entirely into
// an ellipsis a previous collapse already produced. Returns the index of
// the last consumed token.
func collapseRow(toks []token.Token, i int) int {
	// Walk back over the separator to see whether this row merges into an
	// existing ellipsis.
	merge := false
	var sep []int
	for j := i - 1; j >= 0; j-- {
		switch toks[j].Kind {
		case token.None:
			continue
		case token.Space, token.Comma:
			sep = append(sep, j)
			continue
		case token.Ellipsis:
			merge = true
		}
		break
	}
	if merge {
		// The separating comma and spaces go too, so consecutive collapsed
		// rows never render ...,...
		for _, j := range sep {
			toks[j] = token.Token{Kind: token.None}
		}
	} else {
		// Keep the comma after the previous row, drop only the whitespace
		// between it and this row.
		for _, j := range sep {
			if toks[j].Kind != token.Space {
				break
			}
			toks[j] = token.Token{Kind: token.None}
		}
	}

	end := len(toks) - 1
	depth := 0
	for j := i; j < len(toks); j++ {
		if toks[j].Kind == token.ParenOpen {
			depth++
		} else if toks[j].Kind == token.ParenClose {
			depth--
			if depth == 0 {
				end = j
				break
			}
		}
	}
	for j := i; j <= end; j++ {
		toks[j] = token.Token{Kind: token.None}
	}
	if !merge {
		toks[i] = token.Token{Kind: token.Ellipsis}
	}
	return end
}

// adjoinsDot reports whether the nearest live neighbor on either side of i
// is a dot, i.e. the token is part of a qualified name.
func adjoinsDot(toks []token.Token, i int) bool {
	if j := prevLive(toks, i); j >= 0 && toks[j].Kind == token.Dot {
		return true
	}
	if j := nextLive(toks, i); j >= 0 && toks[j].Kind == token.Dot {
		return true
	}
	return false
}

func prevLive(toks []token.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if toks[j].Kind != token.None {
			return j
		}
	}
	return -1
}

func nextLive(toks []token.Token, i int) int {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].Kind != token.None {
			return j
		}
	}
	return -1
}
