package filter

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// newFolder retorna una función que compara texto sin mayúsculas ni acentos:
// "Ábaco" y "abaco" quedan iguales. No es segura entre goroutines.
func newFolder() func(string) string {
	caser := cases.Fold()
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	return func(s string) string {
		folded := caser.String(s)
		out, _, err := transform.String(stripMarks, folded)
		if err != nil {
			return folded
		}
		return out
	}
}
