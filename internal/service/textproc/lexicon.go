package textproc

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// Lexicon holds the word tables the normalizer runs on. The YAML file it
// loads from keeps entries in declaration order, though only the keyword
// taxonomy depends on that; these tables are pure lookups.
type Lexicon struct {
	Stopwords       []string          `yaml:"stopwords"`
	NegationMarkers []string          `yaml:"negation_markers"`
	Slang           map[string]string `yaml:"slang"`
	Contractions    map[string]string `yaml:"contractions"`
}

var (
	defaultLexicon     Lexicon
	defaultLexiconOnce sync.Once
	defaultLexiconErr  error
)

// DefaultLexicon parses the embedded lexicon once and returns it.
func DefaultLexicon() (Lexicon, error) {
	defaultLexiconOnce.Do(func() {
		defaultLexiconErr = yaml.Unmarshal(lexiconYAML, &defaultLexicon)
	})
	if defaultLexiconErr != nil {
		return Lexicon{}, fmt.Errorf("parse embedded lexicon: %w", defaultLexiconErr)
	}
	return defaultLexicon, nil
}
