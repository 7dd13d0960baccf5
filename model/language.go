package model

import "strings"

// LanguageTotals maps a language name to the bytes accumulated across repositories
type LanguageTotals map[string]int64

// Merge adds other into t key by key
func (t LanguageTotals) Merge(other LanguageTotals) {
	for name, bytes := range other {
		t[name] += bytes
	}
}

// Total is the sum of all bytes in the mapping
func (t LanguageTotals) Total() int64 {
	var total int64

	for _, bytes := range t {
		total += bytes
	}

	return total
}

type RankedLanguage struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes"`
	Percentage float64 `json:"percentage"`
}

// ExclusionSet holds the languages that never count toward totals (markup, styles)
// It is built once and never mutated afterwards
type ExclusionSet struct {
	names map[string]struct{}
}

func NewExclusionSet(names ...string) ExclusionSet {
	set := ExclusionSet{names: make(map[string]struct{}, len(names))}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" {
			set.names[name] = struct{}{}
		}
	}

	return set
}

func (s ExclusionSet) Contains(name string) bool {
	_, found := s.names[name]
	return found
}

func (s ExclusionSet) Len() int {
	return len(s.names)
}

// Report is the outcome of a full pipeline run
type Report struct {
	RepositoryCount int              `json:"repositoryCount"`
	Pages           int              `json:"-"`
	TotalBytes      int64            `json:"totalBytes"`
	Languages       []RankedLanguage `json:"languages"`
}
