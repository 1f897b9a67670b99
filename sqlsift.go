// Package sqlsift de-identifies SQL statements for logging, tracing and
// query fingerprinting. Literal values are replaced by placeholders and
// comments are stripped, while statement structure, identifiers and
// existing placeholders are preserved.
//
// The pipeline is three stages over a single buffer: the scanner package
// tokenizes, the sanitizer package rewrites the token stream in place, and
// the printer package renders the result. All three are total over any
// Unicode input and safe for concurrent use.
package sqlsift

import (
	"github.com/sqlsift/sqlsift/printer"
	"github.com/sqlsift/sqlsift/sanitizer"
	"github.com/sqlsift/sqlsift/scanner"
)

// SanitizeText returns sql with every literal value replaced by a
// placeholder, value lists and repeated INSERT rows collapsed, and
// comments removed. It never fails; input that is not valid SQL comes
// back as unaltered as the token rules allow.
func SanitizeText(sql string) string {
	return printer.Render(sanitizer.Sanitize(scanner.Lex(sql)))
}
