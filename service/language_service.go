package service

import (
	"context"
	"fmt"

	"github.com/FlorianRuen/sclng-languages-card/metrics"
	"github.com/FlorianRuen/sclng-languages-card/model"
	log "github.com/sirupsen/logrus"
)

// RepositorySource returns one page of repositories per call
// a nil cursor requests the first page
type RepositorySource interface {
	FetchPage(ctx context.Context, cursor *string) (model.RepositoryPage, error)
}

// LanguageCollection is the result of walking every page of a source
type LanguageCollection struct {
	Totals          model.LanguageTotals
	RepositoryCount int
	Pages           int
}

// CollectLanguageTotals walks the source page after page until it reports no next page
// pages are never requested in parallel: each cursor comes from the previous response
// any error aborts the walk and no partial totals are returned
func CollectLanguageTotals(ctx context.Context, source RepositorySource, exclusions model.ExclusionSet) (LanguageCollection, error) {
	collection := LanguageCollection{Totals: make(model.LanguageTotals)}

	var cursor *string
	hasNext := true

	for hasNext {
		page, err := source.FetchPage(ctx, cursor)

		if err != nil {
			return LanguageCollection{}, fmt.Errorf("page %d: %w", collection.Pages+1, err)
		}

		collection.Pages++
		collection.RepositoryCount += len(page.Repositories)
		collection.Totals.Merge(Aggregate(page.Repositories, exclusions))

		metrics.PagesFetched.Inc()
		metrics.RepositoriesProcessed.Add(float64(len(page.Repositories)))

		log.WithFields(log.Fields{
			"page":         collection.Pages,
			"repositories": len(page.Repositories),
			"hasNextPage":  page.PageInfo.HasNextPage,
		}).Debug("repositories page aggregated")

		hasNext = page.PageInfo.HasNextPage

		if hasNext && page.PageInfo.EndCursor == nil {
			return LanguageCollection{}, fmt.Errorf("%w: page %d announces a next page without cursor", model.ErrInvalidData, collection.Pages)
		}

		cursor = page.PageInfo.EndCursor
	}

	return collection, nil
}
