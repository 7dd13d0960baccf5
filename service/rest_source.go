package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/FlorianRuen/sclng-languages-card/model"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
)

const (
	restPageSize              = 100
	maxLanguagesPerRepository = 10
)

// restSource lists repositories through the REST api
// the page number is used as cursor, languages need one extra request per repository
type restSource struct {
	githubClient *github.Client
}

func NewRESTSource(githubClient *github.Client) RepositorySource {
	return restSource{githubClient: githubClient}
}

func (s restSource) FetchPage(ctx context.Context, cursor *string) (model.RepositoryPage, error) {
	page := 1

	if cursor != nil {
		parsed, err := strconv.Atoi(*cursor)
		if err != nil || parsed < 1 {
			return model.RepositoryPage{}, fmt.Errorf("%w: invalid page cursor %q", model.ErrInvalidData, *cursor)
		}
		page = parsed
	}

	log.WithField("page", page).Debug("fetch repositories page from github rest api")

	repos, resp, err := s.githubClient.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner",
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: restPageSize,
		},
	})

	if err != nil {
		return model.RepositoryPage{}, s.HandleRequestErrors(err)
	}

	result := model.RepositoryPage{
		Repositories: make([]model.RepositoryRecord, 0, len(repos)),
	}

	if resp != nil && resp.NextPage != 0 {
		next := strconv.Itoa(resp.NextPage)
		result.PageInfo = model.PageInfo{HasNextPage: true, EndCursor: &next}
	}

	for _, r := range repos {
		if r == nil || r.Owner == nil || r.Owner.Login == nil || r.Name == nil {
			return model.RepositoryPage{}, fmt.Errorf("%w: repository without owner or name", model.ErrInvalidData)
		}

		// graphql query filters forks server side, keep both sources consistent
		if r.GetFork() {
			continue
		}

		record := model.RepositoryRecord{
			NameWithOwner: r.GetFullName(),
			Languages:     []model.LanguageSize{},
		}

		// without a main language github has nothing to return, save the request
		if r.Language == nil {
			log.WithField("repository", record.NameWithOwner).Debug("repository without most used language. skipped from loading languages list")
			result.Repositories = append(result.Repositories, record)
			continue
		}

		languages, err := s.FetchLanguagesForSingleRepository(ctx, *r.Owner.Login, *r.Name)
		if err != nil {
			return model.RepositoryPage{}, err
		}

		record.Languages = languages
		result.Repositories = append(result.Repositories, record)
	}

	return result, nil
}

// FetchLanguagesForSingleRepository returns the biggest languages of a repository, largest first
func (s restSource) FetchLanguagesForSingleRepository(ctx context.Context, owner, repository string) ([]model.LanguageSize, error) {
	log.WithFields(log.Fields{
		"owner":      owner,
		"repository": repository,
	}).Debug("fetch languages for repository")

	res, _, err := s.githubClient.Repositories.ListLanguages(ctx, owner, repository)

	if err != nil {
		return nil, s.HandleRequestErrors(err)
	}

	languages := make([]model.LanguageSize, 0, len(res))
	for name, bytes := range res {
		languages = append(languages, model.LanguageSize{Name: name, Bytes: int64(bytes)})
	}

	slices.SortFunc(languages, func(a, b model.LanguageSize) int {
		if c := cmp.Compare(b.Bytes, a.Bytes); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(languages) > maxLanguagesPerRepository {
		languages = languages[:maxLanguagesPerRepository]
	}

	return languages, nil
}

// HandleRequestErrors manage github errors at the same location
func (s restSource) HandleRequestErrors(err error) error {
	var errResponse *github.ErrorResponse

	if errors.As(err, &errResponse) && errResponse.Response != nil && errResponse.Response.StatusCode == http.StatusUnauthorized {
		log.WithError(err).Error("github rejected the credential")
		return fmt.Errorf("%w: %v", model.ErrAuthentication, err)
	}

	log.WithError(err).Error("error catched when fetching data from github")
	return fmt.Errorf("%w: %v", model.ErrFetch, err)
}
