package epoch

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// StandardizeKey folds a definition/entry id or label to its canonical
// comparison form: NFC-normalized, trimmed, lower-cased, with runs of
// whitespace collapsed to single underscores.
//
// Two raw spellings that standardize identically name the same entity for
// every merge and lookup in this module.
func StandardizeKey(s string) string {
	s = norm.NFC.String(s)
	fields := strings.Fields(s)
	return strings.ToLower(strings.Join(fields, "_"))
}
