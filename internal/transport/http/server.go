package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appsvc "paper-summary-api/internal/app"
	"paper-summary-api/internal/bootstrap"
	"paper-summary-api/internal/repository"
	"paper-summary-api/internal/summary"
	"paper-summary-api/internal/transport/http/handler"
	"paper-summary-api/internal/transport/http/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *handler.HealthHandler
	Paper    *handler.PaperHandler
	Search   *handler.SearchHandler
	Question *handler.QuestionHandler
}

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)

	db := app.DB
	paperRepo := repository.NewPaperRepository(db)
	searchRepo := repository.NewSearchRepository(db)
	qaRepo := repository.NewQARepository(db)
	tx := repository.NewTransactor(db)

	lang := app.Config.LLM.ResponseLanguage
	paperService := appsvc.NewPaperService(
		paperRepo,
		tx,
		summary.NewSummarizer(app.LLM, lang),
		app.Publisher,
		app.Metrics,
		app.Logger,
		appsvc.PaperServiceOptions{
			MaxUploadBytes:     app.Config.MaxUploadBytes(),
			PrecheckDuplicates: app.Config.Upload.PrecheckDuplicates,
		},
	)
	searchService := appsvc.NewSearchService(paperRepo, searchRepo, tx, app.Publisher, app.Metrics, app.Logger)
	qaService := appsvc.NewQAService(paperRepo, qaRepo, tx, summary.NewAnswerer(app.LLM, lang), app.Publisher, app.Metrics, app.Logger)

	checks := make(map[string]handler.HealthCheck)
	for name, check := range app.HealthChecks() {
		checks[name] = check
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(app.Logger),
		cors.New(cors.Config{
			AllowOrigins:     app.Config.App.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Metrics.Registry, promhttp.HandlerOpts{})))

	RegisterRoutes(router, Handlers{
		Health:   handler.NewHealthHandler(app.Config.App.Name, app.Config.App.Env, app.Config.App.Version, app.StartedAt, checks),
		Paper:    handler.NewPaperHandler(paperService, app.Config.MaxUploadBytes()),
		Search:   handler.NewSearchHandler(searchService),
		Question: handler.NewQuestionHandler(qaService),
	})
	return router
}

// RegisterRoutes mounts the public API on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Check)

	r.POST("/upload-paper", h.Paper.Upload)
	r.GET("/papers", h.Paper.List)
	r.GET("/papers/:id", h.Paper.Get)
	r.GET("/papers/:id/questions", h.Question.History)

	r.POST("/search-papers", h.Search.Search)
	r.GET("/search-history", h.Search.History)

	r.POST("/ask-question", h.Question.Ask)
}
