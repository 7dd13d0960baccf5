package service

import (
	"context"
	"fmt"
	"time"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/FlorianRuen/sclng-languages-card/metrics"
	"github.com/FlorianRuen/sclng-languages-card/model"
	"github.com/FlorianRuen/sclng-languages-card/render"
	"github.com/FlorianRuen/sclng-languages-card/storage"
	log "github.com/sirupsen/logrus"
)

type ReportService interface {
	Build(ctx context.Context) (model.Report, []byte, error)
	Generate(ctx context.Context) (string, error)
}

type reportService struct {
	source     RepositorySource
	writer     storage.DocumentWriter
	exclusions model.ExclusionSet
	config     config.Config
}

// NewReportService wires the pipeline, writer may be nil when the card is only built (http api)
func NewReportService(cfg config.Config, source RepositorySource, writer storage.DocumentWriter) ReportService {
	return reportService{
		source:     source,
		writer:     writer,
		exclusions: model.NewExclusionSet(cfg.Ranking.ExcludedLanguages...),
		config:     cfg,
	}
}

// Build fetches every page, ranks the languages and renders the card
func (s reportService) Build(ctx context.Context) (model.Report, []byte, error) {
	start := time.Now()

	collection, err := CollectLanguageTotals(ctx, s.source, s.exclusions)
	if err != nil {
		metrics.ReportsTotal.WithLabelValues("error").Inc()
		return model.Report{}, nil, err
	}

	report := model.Report{
		RepositoryCount: collection.RepositoryCount,
		Pages:           collection.Pages,
		TotalBytes:      collection.Totals.Total(),
		Languages:       Rank(collection.Totals, s.config.Ranking.Limit),
	}

	if report.TotalBytes == 0 {
		log.WithField("repositories", report.RepositoryCount).Warning("no language bytes counted. the card will not list any language")
	}

	log.WithFields(log.Fields{
		"pages":        report.Pages,
		"repositories": report.RepositoryCount,
		"languages":    len(collection.Totals),
		"ranked":       len(report.Languages),
	}).Info("languages aggregated and ranked")

	svg := render.RenderSVG(report.Languages, report.RepositoryCount,
		render.WithTitle(s.config.Output.Title),
		render.WithTheme(render.ThemeByName(s.config.Output.Theme)),
	)

	metrics.ReportsTotal.WithLabelValues("success").Inc()
	metrics.ReportDuration.Observe(time.Since(start).Seconds())

	return report, svg, nil
}

// Generate builds the card and writes it, nothing is written when any step fails
func (s reportService) Generate(ctx context.Context) (string, error) {
	if s.writer == nil {
		return "", fmt.Errorf("%w: no document writer configured", model.ErrWrite)
	}

	_, svg, err := s.Build(ctx)
	if err != nil {
		return "", err
	}

	return s.writer.Write(s.config.OutputPath(), svg)
}
