package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/lexisearch/db/searchdb"
	"github.com/meghashyamc/lexisearch/logger"
)

type DocumentsResponse struct {
	Documents []searchdb.Document `json:"documents"`
}

func SetupDocuments(router *gin.Engine, logger logger.Logger, catalog searchdb.DB) {
	router.GET("/documents", handleListDocuments(catalog, logger))
}

func handleListDocuments(catalog searchdb.DB, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		documents, err := catalog.Documents()
		if err != nil {
			logger.Error("could not list documents", "err", err.Error())
			writeError(c, http.StatusInternalServerError, errMsgInternal)
			return
		}

		writeResponse(c, DocumentsResponse{Documents: documents}, http.StatusOK)
	}
}
