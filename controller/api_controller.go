package controller

import (
	"net/http"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/FlorianRuen/sclng-languages-card/model"
	"github.com/FlorianRuen/sclng-languages-card/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type APIController interface {
	GetLanguagesCard(ctx *gin.Context)
	GetLanguages(ctx *gin.Context)
}

type apiController struct {
	reportService service.ReportService
	renderLimiter *rate.Limiter
	config        config.Config
}

// NewAPIController serves the card on demand
// the limiter only throttles incoming requests so http clients cannot hammer github through us
func NewAPIController(config config.Config, reportService service.ReportService, renderLimiter *rate.Limiter) APIController {
	return apiController{
		reportService: reportService,
		renderLimiter: renderLimiter,
		config:        config,
	}
}

func (s apiController) GetLanguagesCard(c *gin.Context) {
	_, svg, ok := s.build(c)
	if !ok {
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", svg)
}

func (s apiController) GetLanguages(c *gin.Context) {
	report, _, ok := s.build(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s apiController) build(c *gin.Context) (model.Report, []byte, bool) {
	if !s.renderLimiter.Allow() {
		log.Warning("render requested too soon after the previous one")
		s.abort(c, model.ErrRateLimit)
		return model.Report{}, nil, false
	}

	// execute the request
	report, svg, err := s.reportService.Build(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("unable to build languages report")
		s.abort(c, err)
		return model.Report{}, nil, false
	}

	return report, svg, true
}

func (s apiController) abort(c *gin.Context, err error) {
	apiErr := model.NewAPIError(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
