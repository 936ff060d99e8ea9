package numerals

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// Normalizer rewrites spoken numerals into digits in two passes: literal
// compound phrases first (longest first, plain substring), then whole-word
// single numerals.
type Normalizer struct {
	lexicon   *Lexicon
	compounds CompoundTable
	words     *regexp.Regexp
}

// NewNormalizer precompiles the single-word matcher for lex.
func NewNormalizer(lex *Lexicon, compounds CompoundTable) *Normalizer {
	n := &Normalizer{lexicon: lex, compounds: compounds}

	words := lex.wordsLongestFirst()
	if len(words) > 0 {
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		n.words = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return n
}

// Default is shared by every request; it holds no mutable state.
var Default = NewNormalizer(DefaultLexicon, BuildCompoundTable())

// Normalize runs Default.Normalize.
func Normalize(text string) string {
	return Default.Normalize(text)
}

// Normalize trims and lower-cases text, then substitutes numerals.
// Applying it to its own output returns the output unchanged.
func (n *Normalizer) Normalize(text string) string {
	out := strings.ToLower(strings.TrimSpace(text))
	if out == "" {
		return ""
	}

	// Compound substitution is not boundary-aware: "bees ek" also matches
	// inside "bees eka".
	for _, p := range n.compounds.phrases {
		if strings.Contains(out, p.Text) {
			out = strings.ReplaceAll(out, p.Text, p.Digits)
		}
	}

	if n.words != nil {
		out = n.words.ReplaceAllStringFunc(out, func(w string) string {
			if v, ok := n.lexicon.values[w]; ok {
				return strconv.Itoa(v)
			}
			return w
		})
	}
	return out
}

// Compounds exposes the table the normalizer substitutes from.
func (n *Normalizer) Compounds() CompoundTable {
	return n.compounds
}

// DigitRuns returns every maximal run of ASCII digits in text.
func DigitRuns(text string) []string {
	return digitRun.FindAllString(text, -1)
}

// Digits keeps only the ASCII digits of text.
func Digits(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
