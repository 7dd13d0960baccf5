package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/FlorianRuen/sclng-languages-card/model"
	"github.com/shurcooL/githubv4"
	log "github.com/sirupsen/logrus"
)

// viewerRepositoriesQuery lists the repositories owned by the token owner
// 100 repositories per page and 10 languages per repository are the graphql maximums we rely on
type viewerRepositoriesQuery struct {
	Viewer struct {
		Repositories struct {
			Nodes []struct {
				NameWithOwner githubv4.String
				Languages     struct {
					Edges []struct {
						Size githubv4.Int
						Node struct {
							Name githubv4.String
						}
					}
				} `graphql:"languages(first: 10, orderBy: {field: SIZE, direction: DESC})"`
			}
			PageInfo struct {
				HasNextPage githubv4.Boolean
				EndCursor   githubv4.String
			}
		} `graphql:"repositories(first: 100, after: $cursor, ownerAffiliations: [OWNER], isFork: false)"`
	}
}

type graphqlSource struct {
	client *githubv4.Client
}

func NewGraphQLSource(client *githubv4.Client) RepositorySource {
	return graphqlSource{client: client}
}

func (s graphqlSource) FetchPage(ctx context.Context, cursor *string) (model.RepositoryPage, error) {
	var query viewerRepositoriesQuery

	variables := map[string]interface{}{
		"cursor": (*githubv4.String)(nil),
	}

	if cursor != nil {
		variables["cursor"] = githubv4.NewString(githubv4.String(*cursor))
	}

	log.WithField("cursor", cursor).Debug("fetch repositories page from github graphql api")

	if err := s.client.Query(ctx, &query, variables); err != nil {
		return model.RepositoryPage{}, classifyGraphQLError(err)
	}

	repositories := query.Viewer.Repositories
	page := model.RepositoryPage{
		Repositories: make([]model.RepositoryRecord, 0, len(repositories.Nodes)),
		PageInfo: model.PageInfo{
			HasNextPage: bool(repositories.PageInfo.HasNextPage),
		},
	}

	if repositories.PageInfo.EndCursor != "" {
		endCursor := string(repositories.PageInfo.EndCursor)
		page.PageInfo.EndCursor = &endCursor
	}

	for _, node := range repositories.Nodes {
		record := model.RepositoryRecord{
			NameWithOwner: string(node.NameWithOwner),
			Languages:     make([]model.LanguageSize, 0, len(node.Languages.Edges)),
		}

		for _, edge := range node.Languages.Edges {
			record.Languages = append(record.Languages, model.LanguageSize{
				Name:  string(edge.Node.Name),
				Bytes: int64(edge.Size),
			})
		}

		page.Repositories = append(page.Repositories, record)
	}

	return page, nil
}

// classifyGraphQLError maps transport errors to our sentinels
// the graphql client only exposes the http status inside the error message
func classifyGraphQLError(err error) error {
	if strings.Contains(err.Error(), "401 Unauthorized") {
		log.WithError(err).Error("github rejected the credential")
		return fmt.Errorf("%w: %v", model.ErrAuthentication, err)
	}

	log.WithError(err).Error("error catched when fetching data from github")
	return fmt.Errorf("%w: %v", model.ErrFetch, err)
}
