// Package cli wires configuration, logging and the github client behind the langstat commands.
//
// Commands:
//   - render: fetch, rank and write the languages card (default)
//   - serve: expose the card and the ranking over http
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/FlorianRuen/sclng-languages-card/logger"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const tokenEnv = "GITHUB_TOKEN"

// globalOptions are shared by every command
type globalOptions struct {
	configFile string
	verbose    bool
}

// Execute runs the langstat command tree
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	render := newRenderCmd(opts)

	root := &cobra.Command{
		Use:           "langstat",
		Short:         "Render the most used languages of your GitHub repositories as a terminal card",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          render.RunE,
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", config.DefaultConfigFile, "path of the TOML configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logs")
	root.Flags().AddFlagSet(render.Flags())

	root.AddCommand(render)
	root.AddCommand(newServeCmd(opts))

	return root
}

// setup loads the configuration, configures logrus and reads the github token
// a .env file in the working directory is loaded first when present
func setup(opts *globalOptions) (*config.Config, string, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, "", fmt.Errorf("load configuration: %w", err)
	}

	if opts.verbose {
		cfg.Logs.Level = "debug"
	}

	// configure logger
	logger.Setup(*cfg, os.Stderr)

	token := strings.TrimSpace(os.Getenv(tokenEnv))
	if token == "" {
		token = cfg.Github.Token
	}

	if token == "" {
		log.Warning("no github token found in " + tokenEnv + " nor in configuration. github will reject the requests")
	}

	return cfg, token, nil
}
