package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/services/lexical"
	"github.com/meghashyamc/lexisearch/services/search"
	"github.com/meghashyamc/lexisearch/validation"
)

const (
	errMsgMissingQuery       = "Missing query parameter q"
	errMsgQueryTooLong       = "Query parameter q is too long"
	errMsgLexicalUnavailable = "lexical service unavailable"
	errMsgInternal           = "internal server error"
)

type SearchRequest struct {
	Query string `form:"q" json:"q" validate:"required,valid_query,max=1000"`
}

type SearchResponse struct {
	Query    string                 `json:"query"`
	Analysis []lexical.WordAnalysis `json:"analysis"`
	Results  []search.Result        `json:"results"`
	Failures []lexical.WordFailure  `json:"failures,omitempty"`
}

func SetupSearch(router *gin.Engine, logger logger.Logger, annotator search.Annotator, catalog search.Catalog, validator *validation.Validator) {
	service := search.New(logger, annotator, catalog)
	router.GET("/search", handleSearch(service, logger, validator))

}

func handleSearch(service *search.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			writeError(c, http.StatusBadRequest, errMsgMissingQuery)
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			if errors.Is(err, validation.ErrOutOfRange) {
				writeError(c, http.StatusBadRequest, errMsgQueryTooLong)
				return
			}
			writeError(c, http.StatusBadRequest, errMsgMissingQuery)
			return
		}

		response, err := service.Search(c.Request.Context(), request.Query)
		if err != nil {
			switch {
			case errors.Is(err, search.ErrEmptyQuery):
				writeError(c, http.StatusBadRequest, errMsgMissingQuery)
			case errors.Is(err, search.ErrLexicalServiceUnavailable):
				logger.Error("search failed", "err", err.Error())
				writeError(c, http.StatusBadGateway, errMsgLexicalUnavailable)
			default:
				logger.Error("search failed", "err", err.Error())
				writeError(c, http.StatusInternalServerError, errMsgInternal)
			}
			return
		}

		writeResponse(c, SearchResponse{
			Query:    response.Query,
			Analysis: response.Analysis,
			Results:  response.Results,
			Failures: response.Failures,
		}, http.StatusOK)
	}
}
