package helpers

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Combining marks for the BibTeX accent commands.
var latexAccents = map[string]string{
	"'":  "\u0301",
	"`":  "\u0300",
	"^":  "\u0302",
	"\"": "\u0308",
	"~":  "\u0303",
	"=":  "\u0304",
	".":  "\u0307",
	"u":  "\u0306",
	"v":  "\u030c",
	"H":  "\u030b",
	"c":  "\u0327",
	"r":  "\u030a",
	"d":  "\u0323",
	"b":  "\u0331",
	"k":  "\u0328",
}

// Letter-like commands that stand for a single character.
var latexSymbols = map[string]string{
	"AA": "Å",
	"aa": "å",
	"AE": "Æ",
	"ae": "æ",
	"OE": "Œ",
	"oe": "œ",
	"O":  "Ø",
	"o":  "ø",
	"L":  "Ł",
	"l":  "ł",
	"ss": "ß",
	"i":  "ı",
	"j":  "ȷ",
}

var (
	// \'e, \'{e}, \"{\i}
	symbolAccentRegex = regexp.MustCompile(`\\(['` + "`" + `^"~=.])\s*(?:\{\s*(\\[ij]|[A-Za-z])\s*\}|(\\[ij]|[A-Za-z]))`)
	// \c{c}, \v s; letter commands need braces or a space before the base.
	letterAccentRegex = regexp.MustCompile(`\\([uvHcrdbk])(?:\s*\{\s*(\\[ij]|[A-Za-z])\s*\}|\s+(\\[ij]|[A-Za-z]))`)
	// \AA, {\o}, \ss{}
	latexSymbolRegex  = regexp.MustCompile(`\\([A-Za-z]+)(\{\}|\s)?`)
	// \&, \%, \_, \$, \#
	latexEscapeRegex  = regexp.MustCompile(`\\([&%_$#])`)
)

// DecodeLaTeX replaces common BibTeX accent and letter commands with the
// Unicode characters they stand for, e.g. "Jos{\'e}" -> "Jos{é}" and
// "{\AA}bo" -> "{Å}bo". Unknown commands are left untouched. Braces are
// kept; see StripBraces.
func DecodeLaTeX(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	s = replaceAccents(symbolAccentRegex, s)
	s = replaceAccents(letterAccentRegex, s)
	s = latexSymbolRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := latexSymbolRegex.FindStringSubmatch(m)
		if r, ok := latexSymbols[sub[1]]; ok {
			return r
		}
		return m
	})
	s = latexEscapeRegex.ReplaceAllString(s, "$1")
	return norm.NFC.String(s)
}

func replaceAccents(re *regexp.Regexp, s string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		base := sub[2]
		if base == "" {
			base = sub[3]
		}
		// Accented i and j are written on the dotless forms.
		switch base {
		case `\i`:
			base = "i"
		case `\j`:
			base = "j"
		}
		return base + latexAccents[sub[1]]
	})
}
