// Package config provides configuration structures for the search engine.
// It defines per-index build settings and the application configuration
// loaded at startup.
package config

import (
	"strconv"
	"strings"
)

const (
	// DefaultMinTermLength is the shortest token, in runes, that becomes an index term.
	DefaultMinTermLength = 2
	// DefaultTitleBonus is added to a hit's score once per query term found in its title.
	DefaultTitleBonus = 2
)

// IndexSettings contains the build-time options of a single index.
// They are fixed when the index is built; changing them requires a rebuild.
//
// StopWords has three states:
//   - nil: the tokenizer's default English list is used
//   - empty: no stop-word filtering
//   - non-empty: exactly these words are filtered
type IndexSettings struct {
	Name          string   `json:"name" yaml:"name"`                     // Unique name for the index
	MinTermLength int      `json:"min_term_length" yaml:"minTermLength"` // Tokens shorter than this (in runes) are discarded
	TitleBonus    int      `json:"title_bonus" yaml:"titleBonus"`        // Score added per query term present in a document title
	StopWords     []string `json:"stop_words" yaml:"stopWords"`          // Words never indexed nor queried
	Stemming      bool     `json:"stemming" yaml:"stemming"`             // Reduce terms to their English stem before indexing
}

// Validate checks the settings and returns one message per problem found.
// An empty result means the settings are usable.
func (settings *IndexSettings) Validate() []string {
	var conflicts []string

	name := strings.TrimSpace(settings.Name)
	if name == "" {
		conflicts = append(conflicts, "Index name cannot be empty or whitespace-only")
	} else if strings.ContainsAny(settings.Name, `/\`) {
		conflicts = append(conflicts, "Index name '"+settings.Name+"' must not contain path separators")
	} else if strings.HasPrefix(name, ".") {
		conflicts = append(conflicts, "Index name '"+settings.Name+"' must not start with '.'")
	}

	if settings.MinTermLength < 0 {
		conflicts = append(conflicts, "min_term_length must not be negative, got "+strconv.Itoa(settings.MinTermLength))
	}
	if settings.TitleBonus < 0 {
		conflicts = append(conflicts, "title_bonus must not be negative, got "+strconv.Itoa(settings.TitleBonus))
	}

	conflicts = append(conflicts, checkDuplicates("stop_words", settings.StopWords)...)
	for _, word := range settings.StopWords {
		if strings.TrimSpace(word) == "" {
			conflicts = append(conflicts, "Stop word cannot be empty or whitespace-only")
		}
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate value '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

// ApplyDefaults applies default values to the index settings
func (settings *IndexSettings) ApplyDefaults() {
	if settings.MinTermLength == 0 {
		settings.MinTermLength = DefaultMinTermLength
	}
	if settings.TitleBonus == 0 {
		settings.TitleBonus = DefaultTitleBonus
	}
	// A nil StopWords is left alone; it selects the default list.
}
