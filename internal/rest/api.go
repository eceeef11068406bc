package rest

import (
	"github.com/dfryer1193/blogify/blog/application"
	"github.com/dfryer1193/blogify/blog/render"
	"github.com/dfryer1193/blogify/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services behind the REST API.
type Dependencies struct {
	Posts      *application.PostService
	Generation *application.GenerationService
	Pipeline   *render.Pipeline
	// Store names the configured post store in health reports.
	Store    string
	Features map[string]bool
}

type handlers struct {
	deps Dependencies
}

// NewRouter builds a gin engine with logging, panic recovery and the API routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.CustomRecovery(middleware.HandlePanics()))
	NewApi(router, deps)
	return router
}

func NewApi(router gin.IRouter, deps Dependencies) {
	h := &handlers{deps: deps}

	blogs := router.Group("api/blogs")
	{
		blogs.GET("", h.ListPosts)
		blogs.POST("", h.CreatePost)
		blogs.GET("/:id", h.GetPost)
		blogs.PUT("/:id", h.UpdatePost)
		blogs.DELETE("/:id", h.DeletePost)
	}

	apiGroup := router.Group("api")
	{
		apiGroup.POST("/render", h.Render)
		apiGroup.POST("/generate-description", h.GenerateDescription)
		apiGroup.POST("/generate-content", h.GenerateContent)
		apiGroup.GET("/health", h.Health)
	}
}
