package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wb-go/wbf/ginext"

	"confbackend/cmd/middleware"
	"confbackend/internal/dto"
	"confbackend/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())

	apiGroup := app.Group("/api")
	apiGroup.POST("/contact", r.Service.SubmitContact)
	// Older frontend builds still post to the nested path.
	apiGroup.POST("/contact/contacts", r.Service.SubmitContact)
	apiGroup.POST("/register", r.Service.Register)

	app.POST("/submit/papersubmit", r.Service.SubmitPaper)
	app.GET("/papers/:id", r.Service.GetPaper)

	app.GET("/", r.Service.Health)
	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	app.NoRoute(func(c *ginext.Context) {
		c.JSON(404, dto.ErrorResponse{Success: false, Error: dto.ErrEndpointNotFound})
	})

	return app
}
