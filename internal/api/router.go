package api

import (
	"log/slog"

	"github.com/2or5/football-manager/internal/api/handlers"
	"github.com/2or5/football-manager/internal/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *handlers.Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(cors.Default())

	handler.RegisterRoutes(r)

	return r
}
