package analysis

import (
	"strings"

	"georisk/internal/domain/risk"
	"georisk/internal/service/textproc"
)

// Filter removes noise and duplicates from a collected batch and
// attaches the normalized text to each survivor.
type Filter struct {
	normalizer  *textproc.Normalizer
	spamPhrases []string
	minWords    int
}

// NewFilter builds a filter. spamPhrases are matched case-insensitively
// as substrings of the raw text.
func NewFilter(normalizer *textproc.Normalizer, spamPhrases []string) *Filter {
	return &Filter{
		normalizer:  normalizer,
		spamPhrases: spamPhrases,
		minWords:    3,
	}
}

// Apply filters items against the place label and normalizes the
// survivors. An item survives when its exact text has not been seen
// earlier in the batch, it has at least three words, it contains no spam
// phrase, and it mentions the city or state extracted from placeLabel
// (news items are exempt from the location check, their queries are
// already location-scoped). Survivors whose normalized text comes out
// empty are dropped as well. The seen-set lives for this call only.
func (f *Filter) Apply(items []risk.RawItem, placeLabel string) []risk.FilteredItem {
	city, state := risk.SplitPlaceLabel(placeLabel)
	city = strings.ToLower(city)
	state = strings.ToLower(state)

	seen := make(map[string]struct{}, len(items))
	filtered := make([]risk.FilteredItem, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if _, dup := seen[text]; dup {
			continue
		}
		if len(strings.Fields(text)) < f.minWords {
			continue
		}

		lower := strings.ToLower(text)
		if f.isSpam(lower) {
			continue
		}

		if item.Source != risk.SourceNews && !matchesLocation(lower, city, state) {
			continue
		}

		seen[text] = struct{}{}

		normalized := f.normalizer.Normalize(text)
		if normalized == "" {
			continue
		}

		out := risk.FilteredItem{RawItem: item, OriginalText: text}
		out.Text = normalized
		filtered = append(filtered, out)
	}

	return filtered
}

func (f *Filter) isSpam(lower string) bool {
	for _, phrase := range f.spamPhrases {
		if phrase != "" && strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func matchesLocation(lower, city, state string) bool {
	if city != "" && strings.Contains(lower, city) {
		return true
	}
	if state != "" && strings.Contains(lower, state) {
		return true
	}
	return false
}
