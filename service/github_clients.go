package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/google/go-github/v66/github"
	"github.com/shurcooL/githubv4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	APIGraphQL = "graphql"
	APIREST    = "rest"
)

// NewRepositorySource builds the github client for the configured api
// the token is not validated here, github answers 401 when it is missing or wrong
func NewRepositorySource(ctx context.Context, cfg config.GithubConfig, token string) (RepositorySource, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.API)) {
	case "", APIGraphQL:
		return NewGraphQLSource(newGraphQLClient(ctx, cfg.Endpoint, token)), nil

	case APIREST:
		githubClient := github.NewClient(nil)

		if token != "" {
			log.Debug("will setup github client with authorization token")
			githubClient = githubClient.WithAuthToken(token)
		}

		if cfg.Endpoint != "" {
			enterpriseClient, err := githubClient.WithEnterpriseURLs(cfg.Endpoint, cfg.Endpoint)
			if err != nil {
				return nil, err
			}
			githubClient = enterpriseClient
		}

		return NewRESTSource(githubClient), nil
	}

	return nil, fmt.Errorf("unknown github api %q, expected %s or %s", cfg.API, APIGraphQL, APIREST)
}

func newGraphQLClient(ctx context.Context, endpoint, token string) *githubv4.Client {
	httpClient := http.DefaultClient

	if token != "" {
		log.Debug("will setup github graphql client with authorization token")
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	if endpoint != "" {
		return githubv4.NewEnterpriseClient(endpoint, httpClient)
	}

	return githubv4.NewClient(httpClient)
}
