package service

import (
	"cmp"
	"slices"

	"github.com/FlorianRuen/sclng-languages-card/model"
)

const DefaultRankingLimit = 10

// Rank computes the share of every language and keeps the limit biggest ones
// limit is clamped to [1, DefaultRankingLimit], the card never lists more than 10 languages
// when no bytes were counted at all the result is an empty list, never NaN percentages
func Rank(totals model.LanguageTotals, limit int) []model.RankedLanguage {
	if limit <= 0 || limit > DefaultRankingLimit {
		limit = DefaultRankingLimit
	}

	total := totals.Total()
	if total <= 0 {
		return []model.RankedLanguage{}
	}

	ranked := make([]model.RankedLanguage, 0, len(totals))

	for name, bytes := range totals {
		ranked = append(ranked, model.RankedLanguage{
			Name:       name,
			Bytes:      bytes,
			Percentage: 100 * float64(bytes) / float64(total),
		})
	}

	// map iteration order is random, name breaks ties so output stays stable
	slices.SortFunc(ranked, func(a, b model.RankedLanguage) int {
		if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
