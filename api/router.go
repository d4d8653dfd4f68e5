package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/lexisearch/api/handlers"
	"github.com/meghashyamc/lexisearch/db/searchdb"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/services/lexical"
	"github.com/meghashyamc/lexisearch/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, searchDB searchdb.DB, annotator *lexical.Annotator, validator *validation.Validator) {
	router.GET("/health", health())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.SetupSearch(router, logger, annotator, searchDB, validator)
	handlers.SetupDocuments(router, logger, searchDB)

}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.UseRawPath = true
	router.Use(_CORSMiddleware())
	router.Use(gin.Recovery())

	return router
}
