package analysis

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"georisk/internal/domain/risk"
	"georisk/internal/service/textproc"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// Risk category names, in taxonomy order.
const (
	CategoryNaturalHazards       = "natural_hazards"
	CategoryInfrastructure       = "infrastructure"
	CategorySocialSafety         = "social_safety"
	CategoryHealthEnvironment    = "health_environment"
	CategoryPrecautionIndicators = "precaution_indicators"
)

// maxKeywordsPerCategory caps how many matched keywords one category
// reports. The cap applies in declaration order, not frequency order.
const maxKeywordsPerCategory = 5

// Category is one ordered group of risk keywords.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is the full ordered keyword table.
type Taxonomy struct {
	Categories []Category `yaml:"categories"`
}

// LoadTaxonomy parses the embedded taxonomy.
func LoadTaxonomy() (Taxonomy, error) {
	var tax Taxonomy
	if err := yaml.Unmarshal(taxonomyYAML, &tax); err != nil {
		return Taxonomy{}, fmt.Errorf("parse embedded taxonomy: %w", err)
	}
	return tax, nil
}

// KeywordExtractor scans collected text against the risk taxonomy and
// derives dominant discussion topics from normalized text.
type KeywordExtractor struct {
	taxonomy   Taxonomy
	normalizer *textproc.Normalizer
}

// NewKeywordExtractor builds an extractor over the given taxonomy.
func NewKeywordExtractor(tax Taxonomy, normalizer *textproc.Normalizer) *KeywordExtractor {
	return &KeywordExtractor{taxonomy: tax, normalizer: normalizer}
}

// Taxonomy returns the ordered keyword table the extractor runs on.
func (e *KeywordExtractor) Taxonomy() Taxonomy {
	return e.taxonomy
}

// ExtractKeywords scans the original (pre-normalization) texts for risk
// keywords. Matching is substring matching over one lowercased buffer,
// so the count for "flood" also includes "flooding" hits.
func (e *KeywordExtractor) ExtractKeywords(originalTexts []string) risk.KeywordFindings {
	buffer := strings.ToLower(strings.Join(originalTexts, " "))

	findings := make(risk.KeywordFindings, len(e.taxonomy.Categories))
	for _, cat := range e.taxonomy.Categories {
		found := []string{}
		for _, kw := range cat.Keywords {
			if len(found) == maxKeywordsPerCategory {
				break
			}
			if count := strings.Count(buffer, kw); count > 0 {
				found = append(found, fmt.Sprintf("%s (mentioned %dx)", kw, count))
			}
		}
		findings[cat.Name] = found
	}
	return findings
}

// ExtractTopics returns the topN most frequent meaningful words across
// the normalized texts. Words of length three or less and stopwords are
// skipped; frequency ties keep first-encountered order.
func (e *KeywordExtractor) ExtractTopics(normalizedTexts []string, topN int) []string {
	counts := make(map[string]int)
	var order []string
	for _, text := range normalizedTexts {
		for _, w := range strings.Fields(strings.ToLower(text)) {
			if len(w) <= 3 || e.normalizer.IsStopword(w) {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}
