package cli

import (
	"fmt"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/FlorianRuen/sclng-languages-card/service"
	"github.com/FlorianRuen/sclng-languages-card/storage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	output   string
	api      string
	endpoint string
	theme    string
	top      int
}

// apply overrides the loaded configuration with the flags explicitly set
func (o renderOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output") {
		cfg.Output.Directory = o.output
	}
	if cmd.Flags().Changed("api") {
		cfg.Github.API = o.api
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Github.Endpoint = o.endpoint
	}
	if cmd.Flags().Changed("theme") {
		cfg.Output.Theme = o.theme
	}
	if cmd.Flags().Changed("top") {
		cfg.Ranking.Limit = o.top
	}
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch every repository, rank the languages and write the SVG card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, token, err := setup(global)
			if err != nil {
				return err
			}

			opts.apply(cmd, cfg)

			source, err := service.NewRepositorySource(cmd.Context(), cfg.Github, token)
			if err != nil {
				return fmt.Errorf("setup github client: %w", err)
			}

			writer := storage.NewDocumentWriter(afero.NewOsFs())
			reportService := service.NewReportService(*cfg, source, writer)

			path, err := reportService.Generate(cmd.Context())
			if err != nil {
				return fmt.Errorf("generate languages card: %w", err)
			}

			log.WithField("path", path).Info("languages card written")
			return nil
		},
	}

	defaults := config.GetDefault()
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaults.Output.Directory, "directory receiving the card")
	cmd.Flags().StringVar(&opts.api, "api", defaults.Github.API, "github api to query: graphql or rest")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "github enterprise api url, github.com when empty")
	cmd.Flags().StringVar(&opts.theme, "theme", defaults.Output.Theme, "card theme: dark or light")
	cmd.Flags().IntVar(&opts.top, "top", defaults.Ranking.Limit, "number of languages on the card, at most 10")

	return cmd
}
