package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edushetra/edushetra-api/internal/handlers"
	"github.com/edushetra/edushetra-api/internal/middleware"
	"github.com/edushetra/edushetra-api/pkg/metrics"
)

const (
	formBodyLimit   = 64 * 1024
	logsBodyLimit   = 1024 * 1024
	resumeBodyLimit = 6 * 1024 * 1024
)

type routeHandlers struct {
	health    *handlers.HealthHandler
	forms     *handlers.FormsHandler
	levelTest *handlers.LevelTestHandler
	catalog   *handlers.CatalogHandler
	logs      *handlers.LogsHandler
	// nil when resume storage is not configured
	upload *handlers.UploadHandler
}

type rateLimiters struct {
	general *middleware.RateLimiter
	forms   *middleware.RateLimiter
	uploads *middleware.RateLimiter
}

func (r rateLimiters) stop() {
	r.general.Stop()
	r.forms.Stop()
	r.uploads.Stop()
}

func registerRoutes(router *gin.Engine, h routeHandlers, limits rateLimiters) {
	api := router.Group("/api")
	api.GET("/healthcheck", limits.general.Middleware(), h.health.Healthcheck)
	api.GET("/metrics", limits.general.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")

	// Lead forms
	v1.GET("/forms/:form", limits.general.Middleware(), h.forms.InitForm)
	v1.GET("/forms/:form/schema.json", limits.general.Middleware(), h.forms.Schema)
	formRate := limits.forms.Middleware()
	formBody := middleware.BodySizeLimitMiddleware(formBodyLimit)
	v1.POST("/forms/book-demo", formRate, formBody, h.forms.SubmitDemoBooking)
	v1.POST("/forms/enquire", formRate, formBody, h.forms.SubmitEnquiry)
	v1.POST("/forms/for-corporates", formRate, formBody, h.forms.SubmitCorporateInquiry)
	v1.POST("/forms/tutor-application", formRate, formBody, h.forms.SubmitTutorApplication)

	// Level test
	v1.GET("/level-test", limits.general.Middleware(), h.levelTest.Start)
	v1.POST("/level-test", formRate, formBody, h.levelTest.Submit)

	// Catalog
	v1.GET("/programs", limits.general.Middleware(), h.catalog.Programs)
	v1.GET("/pricing", limits.general.Middleware(), h.catalog.Pricing)
	v1.GET("/courses", limits.general.Middleware(), h.catalog.Courses)
	v1.GET("/courses/:slug", limits.general.Middleware(), h.catalog.Course)
	v1.GET("/corporate-training", limits.general.Middleware(), h.catalog.CorporateTraining)
	v1.GET("/contact", limits.general.Middleware(), h.catalog.Contact)
	v1.GET("/careers", limits.general.Middleware(), h.catalog.Careers)
	v1.GET("/testimonials", limits.general.Middleware(), h.catalog.Testimonials)

	v1.POST("/logs", limits.general.Middleware(), middleware.BodySizeLimitMiddleware(logsBodyLimit), h.logs.ReceiveFrontendLogs)

	if h.upload != nil {
		v1.POST("/tutor-applications/resume", limits.uploads.Middleware(), middleware.BodySizeLimitMiddleware(resumeBodyLimit), h.upload.UploadResume)
	}
}
