package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/FlorianRuen/sclng-languages-card/model"
	"github.com/google/go-github/v66/github"
	githubMock "github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRESTSourceFetchPage will test the REST pagination and language loading
func TestRESTSourceFetchPage(t *testing.T) {
	pages := map[string][]*github.Repository{
		"1": {
			{
				ID:       github.Int64(1),
				FullName: github.String("me/repo1"),
				Owner:    &github.User{Login: github.String("me")},
				Name:     github.String("repo1"),
				Language: github.String("JavaScript"),
			},
			{
				ID:       github.Int64(2),
				FullName: github.String("me/fork"),
				Owner:    &github.User{Login: github.String("me")},
				Name:     github.String("fork"),
				Language: github.String("C"),
				Fork:     github.Bool(true),
			},
			{
				ID:       github.Int64(3),
				FullName: github.String("me/docs"),
				Owner:    &github.User{Login: github.String("me")},
				Name:     github.String("docs"),
			},
		},
		"2": {
			{
				ID:       github.Int64(4),
				FullName: github.String("me/repo2"),
				Owner:    &github.User{Login: github.String("me")},
				Name:     github.String("repo2"),
				Language: github.String("JavaScript"),
			},
		},
	}

	languages := map[string]map[string]int{
		"repo1": {"JavaScript": 800, "HTML": 200},
		"repo2": {"JavaScript": 200, "Python": 100},
	}

	var languageCalls []string

	mockedHTTPClient := githubMock.NewMockedHTTPClient(
		githubMock.WithRequestMatchHandler(
			githubMock.GetUserRepos,
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				page := r.URL.Query().Get("page")
				if page == "" {
					page = "1"
				}

				assert.Equal(t, "owner", r.URL.Query().Get("affiliation"))
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))

				if page == "1" {
					w.Header().Set("Link", `<https://api.github.com/user/repos?affiliation=owner&page=2&per_page=100>; rel="next", <https://api.github.com/user/repos?affiliation=owner&page=2&per_page=100>; rel="last"`)
				}

				if _, err := w.Write(githubMock.MustMarshal(pages[page])); err != nil {
					t.Error("unable to configure mock http client")
				}
			}),
		),
		githubMock.WithRequestMatchHandler(
			githubMock.GetReposLanguagesByOwnerByRepo,
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// path is /repos/{owner}/{repo}/languages
				repository := strings.Split(strings.Trim(r.URL.Path, "/"), "/")[2]
				languageCalls = append(languageCalls, repository)

				if _, err := w.Write(githubMock.MustMarshal(languages[repository])); err != nil {
					t.Error("unable to configure mock http client")
				}
			}),
		),
	)

	source := NewRESTSource(github.NewClient(mockedHTTPClient))

	first, err := source.FetchPage(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []model.RepositoryRecord{
		{NameWithOwner: "me/repo1", Languages: []model.LanguageSize{{Name: "JavaScript", Bytes: 800}, {Name: "HTML", Bytes: 200}}},
		{NameWithOwner: "me/docs", Languages: []model.LanguageSize{}},
	}, first.Repositories)
	assert.True(t, first.PageInfo.HasNextPage)
	require.NotNil(t, first.PageInfo.EndCursor)
	assert.Equal(t, "2", *first.PageInfo.EndCursor)

	last, err := source.FetchPage(context.Background(), first.PageInfo.EndCursor)
	require.NoError(t, err)
	assert.False(t, last.PageInfo.HasNextPage)
	assert.Nil(t, last.PageInfo.EndCursor)

	// forks and repositories without main language never trigger a languages request
	assert.Equal(t, []string{"repo1", "repo2"}, languageCalls)

	collection, err := CollectLanguageTotals(context.Background(), source, markupExclusions())
	require.NoError(t, err)
	assert.Equal(t, model.LanguageTotals{"JavaScript": 1000, "Python": 100}, collection.Totals)
	assert.Equal(t, 3, collection.RepositoryCount)
}

// TestFetchLanguagesForSingleRepository test the function called FetchLanguagesForSingleRepository
func TestFetchLanguagesForSingleRepository(t *testing.T) {
	tests := []struct {
		name         string
		mockResponse map[string]int
		expected     []model.LanguageSize
	}{
		{
			name: "Fetch languages successfully",
			mockResponse: map[string]int{
				"Go":     10000,
				"Python": 5000,
			},
			expected: []model.LanguageSize{{Name: "Go", Bytes: 10000}, {Name: "Python", Bytes: 5000}},
		},
		{
			name: "More than ten languages",
			mockResponse: map[string]int{
				"A": 12, "B": 11, "C": 10, "D": 9, "E": 8, "F": 7,
				"G": 6, "H": 5, "I": 4, "J": 3, "K": 2, "L": 1,
			},
			expected: []model.LanguageSize{
				{Name: "A", Bytes: 12}, {Name: "B", Bytes: 11}, {Name: "C", Bytes: 10}, {Name: "D", Bytes: 9}, {Name: "E", Bytes: 8},
				{Name: "F", Bytes: 7}, {Name: "G", Bytes: 6}, {Name: "H", Bytes: 5}, {Name: "I", Bytes: 4}, {Name: "J", Bytes: 3},
			},
		},
		{
			name:         "No language",
			mockResponse: map[string]int{},
			expected:     []model.LanguageSize{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockedHTTPClient := githubMock.NewMockedHTTPClient(
				githubMock.WithRequestMatchHandler(
					githubMock.GetReposLanguagesByOwnerByRepo,
					http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
						_, err := w.Write(githubMock.MustMarshal(tt.mockResponse))

						if err != nil {
							t.Error("unable to configure mock http client")
						}
					}),
				),
			)

			svc := restSource{githubClient: github.NewClient(mockedHTTPClient)}

			languages, err := svc.FetchLanguagesForSingleRepository(context.Background(), "Owner1", "Repo1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, languages)
		})
	}
}

func TestRESTSourceErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		expectedErr error
	}{
		{name: "Bad credentials", status: http.StatusUnauthorized, expectedErr: model.ErrAuthentication},
		{name: "Server error", status: http.StatusInternalServerError, expectedErr: model.ErrFetch},
		{name: "Forbidden", status: http.StatusForbidden, expectedErr: model.ErrFetch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockedHTTPClient := githubMock.NewMockedHTTPClient(
				githubMock.WithRequestMatchHandler(
					githubMock.GetUserRepos,
					http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
						w.WriteHeader(tt.status)
						_, _ = w.Write([]byte(`{"message":"nope"}`))
					}),
				),
			)

			source := NewRESTSource(github.NewClient(mockedHTTPClient))

			_, err := source.FetchPage(context.Background(), nil)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expectedErr), "got %v", err)
		})
	}
}

func TestRESTSourceInvalidCursor(t *testing.T) {
	source := NewRESTSource(github.NewClient(githubMock.NewMockedHTTPClient()))

	for _, value := range []string{"abc", "0", "-3"} {
		_, err := source.FetchPage(context.Background(), cursor(value))
		assert.True(t, errors.Is(err, model.ErrInvalidData), "cursor %q", value)
	}
}

func TestRESTSourceInvalidRepository(t *testing.T) {
	mockedHTTPClient := githubMock.NewMockedHTTPClient(
		githubMock.WithRequestMatch(
			githubMock.GetUserRepos,
			[]*github.Repository{
				{ID: github.Int64(2), FullName: github.String("Owner2/repo2"), Name: github.String("repo2")},
			},
		),
	)

	source := NewRESTSource(github.NewClient(mockedHTTPClient))

	_, err := source.FetchPage(context.Background(), nil)

	assert.True(t, errors.Is(err, model.ErrInvalidData))
}
