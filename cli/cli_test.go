package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleGraphQLPage = `{"data":{"viewer":{"repositories":{
	"nodes":[
		{"nameWithOwner":"me/repo1","languages":{"edges":[{"size":800,"node":{"name":"JavaScript"}},{"size":200,"node":{"name":"HTML"}}]}},
		{"nameWithOwner":"me/repo2","languages":{"edges":[{"size":200,"node":{"name":"JavaScript"}},{"size":100,"node":{"name":"Python"}}]}}
	],
	"pageInfo":{"hasNextPage":false,"endCursor":null}
}}}}`

func TestRenderCommand(t *testing.T) {
	authorization := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case authorization <- r.Header.Get("Authorization"):
		default:
		}
		_, _ = w.Write([]byte(singleGraphQLPage))
	}))
	defer server.Close()

	t.Setenv(tokenEnv, "ghp_test")

	tmp := t.TempDir()
	output := filepath.Join(tmp, "dist")

	root := NewRootCmd()
	root.SetArgs([]string{
		"render",
		"--config", filepath.Join(tmp, "missing.toml"),
		"--output", output,
		"--endpoint", server.URL,
		"--top", "5",
	})

	require.NoError(t, root.ExecuteContext(context.Background()))

	content, err := os.ReadFile(filepath.Join(output, "languages.svg"))
	require.NoError(t, err)

	svg := string(content)
	assert.Equal(t, "Bearer ghp_test", <-authorization)
	assert.Contains(t, svg, `height="250"`)
	assert.Contains(t, svg, "langstat --repos 2 --top 2")
	assert.Contains(t, svg, ">90.9%<")
	assert.Contains(t, svg, ">9.1%<")
}

func TestRenderCommandFailureWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	t.Setenv(tokenEnv, "")

	tmp := t.TempDir()
	output := filepath.Join(tmp, "dist")

	root := NewRootCmd()
	root.SetArgs([]string{
		"--config", filepath.Join(tmp, "missing.toml"),
		"--output", output,
		"--endpoint", server.URL,
	})

	err := root.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTHENTICATION_ERROR")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderCommandUnknownAPI(t *testing.T) {
	tmp := t.TempDir()

	root := NewRootCmd()
	root.SetArgs([]string{"render", "--config", filepath.Join(tmp, "missing.toml"), "--api", "soap"})

	err := root.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown github api"))
}

func TestRenderOptionsApply(t *testing.T) {
	cmd := newRenderCmd(&globalOptions{})
	require.NoError(t, cmd.ParseFlags([]string{"--top", "3", "--theme", "light"}))

	cfg := config.GetDefault()
	opts := renderOptions{top: 3, theme: "light", output: "elsewhere"}
	opts.apply(cmd, cfg)

	assert.Equal(t, 3, cfg.Ranking.Limit)
	assert.Equal(t, "light", cfg.Output.Theme)
	// flags left untouched keep the configuration values
	assert.Equal(t, "dist", cfg.Output.Directory)
	assert.Equal(t, "graphql", cfg.Github.API)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "render")
	assert.Contains(t, names, "serve")
	assert.NotNil(t, root.Flags().Lookup("output"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}

	done := make(chan error, 1)
	go func() { done <- run(ctx, server) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}
