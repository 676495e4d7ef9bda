package textproc

import (
	"html"
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`http\S+|www\S+`)
	mentionPattern = regexp.MustCompile(`@\w+|#`)
	// Underscore survives so that negation tags produced by a previous
	// pass are not torn apart; Normalize must be stable on its own
	// output.
	nonLetterPattern  = regexp.MustCompile(`[^a-z\s_]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

const negationPrefix = "not_"

// Normalizer cleans raw social/forum/news text into the token form the
// downstream analysis stages work on.
type Normalizer struct {
	stopwords    map[string]struct{}
	negations    map[string]struct{}
	slang        map[string]string
	contractions map[string]string
}

// NewNormalizer builds a normalizer from the given lexicon.
func NewNormalizer(lex Lexicon) *Normalizer {
	n := &Normalizer{
		stopwords:    make(map[string]struct{}, len(lex.Stopwords)),
		negations:    make(map[string]struct{}, len(lex.NegationMarkers)),
		slang:        lex.Slang,
		contractions: lex.Contractions,
	}
	for _, w := range lex.Stopwords {
		n.stopwords[w] = struct{}{}
	}
	for _, w := range lex.NegationMarkers {
		n.negations[w] = struct{}{}
	}
	return n
}

// NewDefaultNormalizer builds a normalizer from the embedded lexicon.
func NewDefaultNormalizer() (*Normalizer, error) {
	lex, err := DefaultLexicon()
	if err != nil {
		return nil, err
	}
	return NewNormalizer(lex), nil
}

// Normalize cleans one text. It never fails; an empty result means every
// word was filtered out. The stage order matters: slang expansion has to
// run before contraction lookup, which has to run before stopword
// removal, and negation scoping runs last over the surviving words.
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = nonLetterPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	text = collapseRepeats(text)

	words := strings.Fields(text)
	expanded := make([]string, 0, len(words))
	for _, w := range words {
		if rep, ok := n.slang[w]; ok {
			w = rep
		}
		if rep, ok := n.contractions[w]; ok {
			w = rep
		}
		// Replacements may be multi-word; the later passes work per
		// token, and re-normalizing would split them anyway.
		expanded = append(expanded, strings.Fields(w)...)
	}

	kept := expanded[:0]
	for _, w := range expanded {
		if _, stop := n.stopwords[w]; stop {
			if _, neg := n.negations[w]; !neg {
				continue
			}
		}
		kept = append(kept, w)
	}

	result := make([]string, 0, len(kept))
	negate := false
	for _, w := range kept {
		if _, neg := n.negations[w]; neg {
			negate = true
			result = append(result, w)
			continue
		}
		if negate {
			if !strings.HasPrefix(w, negationPrefix) {
				w = negationPrefix + w
			}
			negate = false
		}
		result = append(result, w)
	}

	return strings.Join(result, " ")
}

// IsStopword reports whether w would be removed by stopword filtering.
// Negation markers are never stopwords.
func (n *Normalizer) IsStopword(w string) bool {
	if _, neg := n.negations[w]; neg {
		return false
	}
	_, stop := n.stopwords[w]
	return stop
}

// collapseRepeats reduces any character repeated three or more times in
// a row down to exactly two (elongation normalization, "sooooo" ->
// "soo").
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
