package service

import (
	"github.com/FlorianRuen/sclng-languages-card/model"
	log "github.com/sirupsen/logrus"
)

// Aggregate reduces one page of repositories into language totals
// excluded languages and negative sizes never contribute, order of records does not matter
func Aggregate(records []model.RepositoryRecord, exclusions model.ExclusionSet) model.LanguageTotals {
	totals := make(model.LanguageTotals)

	for _, r := range records {
		for _, lang := range r.Languages {
			if exclusions.Contains(lang.Name) {
				continue
			}

			if lang.Bytes < 0 {
				log.WithFields(log.Fields{
					"repository": r.NameWithOwner,
					"language":   lang.Name,
					"bytes":      lang.Bytes,
				}).Debug("negative language size reported. skipped")

				continue
			}

			totals[lang.Name] += lang.Bytes
		}
	}

	return totals
}
