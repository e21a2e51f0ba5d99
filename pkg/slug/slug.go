// Package slug converts arbitrary text into ASCII-safe tokens. Its main
// consumer is document file naming, where Slovak names must fold to
// plain ASCII ("Nováková" → "Novakova") so the files survive email
// transport and filesystem quirks.
package slug

import (
	"strings"
	"unicode"
)

// Option configures token generation.
type Option func(*config)

type config struct {
	separator string
	lowercase bool
}

func defaultConfig() *config {
	return &config{
		separator: "-",
		lowercase: true,
	}
}

// Separator sets the string joining word boundaries. Default is "-".
func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// Lowercase controls whether the output is lowercased. Default is true.
func Lowercase(enabled bool) Option {
	return func(c *config) { c.lowercase = enabled }
}

// Make creates an ASCII-safe token from the input string. Letters and
// digits pass through, diacritics fold to their base letter, and any other
// run of characters collapses into a single separator.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var b strings.Builder
	b.Grow(len(s))

	lastWasSep := true // avoid a leading separator

	for _, r := range s {
		if cfg.lowercase {
			r = unicode.ToLower(r)
		}

		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasSep = false
			continue
		}

		if folded, ok := foldDiacritic(r); ok {
			if cfg.lowercase {
				folded = unicode.ToLower(folded)
			}
			b.WriteRune(folded)
			lastWasSep = false
			continue
		}

		if !lastWasSep {
			b.WriteString(cfg.separator)
			lastWasSep = true
		}
	}

	return strings.TrimSuffix(b.String(), cfg.separator)
}

// diacriticMap maps Latin diacritics to ASCII base letters. Covers the
// major European alphabets, with full coverage of Slovak and Czech.
var diacriticMap = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a', 'ā': 'a', 'ă': 'a', 'ą': 'a',
	'À': 'A', 'Á': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A', 'Å': 'A', 'Ā': 'A', 'Ă': 'A', 'Ą': 'A',
	'ç': 'c', 'ć': 'c', 'č': 'c',
	'Ç': 'C', 'Ć': 'C', 'Č': 'C',
	'đ': 'd', 'ď': 'd',
	'Đ': 'D', 'Ď': 'D',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ė': 'e', 'ę': 'e', 'ě': 'e',
	'È': 'E', 'É': 'E', 'Ê': 'E', 'Ë': 'E', 'Ē': 'E', 'Ė': 'E', 'Ę': 'E', 'Ě': 'E',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i', 'į': 'i',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I', 'Ī': 'I', 'Į': 'I',
	'ĺ': 'l', 'ľ': 'l', 'ł': 'l',
	'Ĺ': 'L', 'Ľ': 'L', 'Ł': 'L',
	'ñ': 'n', 'ń': 'n', 'ň': 'n',
	'Ñ': 'N', 'Ń': 'N', 'Ň': 'N',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o', 'ō': 'o',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O', 'Ø': 'O', 'Ō': 'O',
	'ŕ': 'r', 'ř': 'r',
	'Ŕ': 'R', 'Ř': 'R',
	'ś': 's', 'š': 's', 'ș': 's',
	'Ś': 'S', 'Š': 'S', 'Ș': 'S',
	'ť': 't', 'ț': 't',
	'Ť': 'T', 'Ț': 'T',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ů': 'u', 'ų': 'u',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U', 'Ü': 'U', 'Ū': 'U', 'Ů': 'U', 'Ų': 'U',
	'ý': 'y', 'ÿ': 'y',
	'Ý': 'Y', 'Ÿ': 'Y',
	'ź': 'z', 'ž': 'z', 'ż': 'z',
	'Ź': 'Z', 'Ž': 'Z', 'Ż': 'Z',
	'æ': 'a',
	'Æ': 'A',
	'œ': 'o',
	'Œ': 'O',
	'ß': 's',
}

func foldDiacritic(r rune) (rune, bool) {
	if folded, ok := diacriticMap[r]; ok {
		return folded, true
	}
	return r, false
}
