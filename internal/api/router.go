// Package api wires the HTTP surface: middleware chain, route groups and
// service construction.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	healthHandler "tariften-backend/internal/api/handlers/health"
	menuHandler "tariften-backend/internal/api/handlers/menu"
	recipeHandler "tariften-backend/internal/api/handlers/recipe"
	termsHandler "tariften-backend/internal/api/handlers/terms"
	"tariften-backend/internal/api/middleware"
	"tariften-backend/internal/core/ai/openai"
	"tariften-backend/internal/core/catalog"
	"tariften-backend/internal/core/generation"
	"tariften-backend/internal/core/imagesearch"
	"tariften-backend/internal/core/intent"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/infrastructure/config"
	"tariften-backend/internal/pkg/common"
)

// Request body size limit (1MB). Generation payloads are small text.
const maxBodySize = 1 << 20

// SetupRouter builds the engine with all middleware, services and routes.
func SetupRouter(cfg *config.Config, llm openai.LLM, contentStore store.ContentStore) (*gin.Engine, error) {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// Services. Image providers are tried in priority order.
	images := imagesearch.NewService(
		imagesearch.NewUnsplashProvider(cfg.Unsplash.AccessKey),
		imagesearch.NewPexelsProvider(cfg.Pexels.APIKey),
	)
	cat := catalog.New(contentStore)
	classifier := intent.New(contentStore)
	recipeSvc := generation.NewRecipeService(llm, cat, classifier, images)
	menuSvc := generation.NewMenuService(llm, contentStore, recipeSvc, images, cfg.Generation.FuzzyThreshold)

	// Health routes, outside the API group and the auth chain.
	hh := healthHandler.NewHandler(cfg, contentStore)
	router.GET("/health", hh.HealthCheck)
	router.GET("/ready", hh.ReadinessCheck)
	router.GET("/live", hh.LivenessCheck)

	// The recipe timeout is applied per sub-group rather than on the API
	// group itself: context.WithTimeout can only shorten a deadline, and a
	// group-wide bound would cap the longer menu timeout below.
	apiGroup := router.Group("/api/v1")

	rh := recipeHandler.NewHandler(contentStore)
	gh := recipeHandler.NewGenerateHandler(recipeSvc)
	mh := menuHandler.NewHandler(menuSvc, contentStore)
	th := termsHandler.NewHandler(contentStore, cat)

	recipes := apiGroup.Group("/recipes")
	recipes.Use(timeoutMiddleware(cfg.Generation.RecipeTimeout))
	{
		recipes.GET("", rh.Search)
		recipes.GET("/:id", rh.Get)
		recipes.POST("", middleware.Auth(cfg.Auth.Secret, true), rh.Create)
		recipes.PUT("/:id", middleware.Auth(cfg.Auth.Secret, true), rh.Update)
	}

	ai := apiGroup.Group("/ai")
	ai.Use(middleware.Auth(cfg.Auth.Secret, false))
	{
		ai.POST("/recipe", timeoutMiddleware(cfg.Generation.RecipeTimeout), gh.Generate)
		// Menu composition issues several sequential model calls and
		// generates recipes per section, so it gets the longer timeout.
		ai.POST("/menu", timeoutMiddleware(cfg.Generation.MenuTimeout), mh.Compose)
	}

	menus := apiGroup.Group("/menus")
	menus.Use(timeoutMiddleware(cfg.Generation.RecipeTimeout))
	{
		menus.GET("/:id", mh.Get)
		menus.PUT("/:id", middleware.Auth(cfg.Auth.Secret, true), mh.Update)
	}

	termsGroup := apiGroup.Group("/terms")
	termsGroup.Use(timeoutMiddleware(cfg.Generation.RecipeTimeout))
	{
		termsGroup.GET("/:taxonomy", th.List)
		termsGroup.GET("/:taxonomy/allowed", th.Allowed)
	}

	common.LogInfo("router setup completed")
	return router, nil
}

// timeoutMiddleware bounds the request context and reports 504 when the
// deadline is the reason the handler gave up.
func timeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
		}
	}
}
