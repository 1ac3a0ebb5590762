package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/trivia-api/internal/dto"
	"github.com/lshigami/trivia-api/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
	msgNotProcessable   = "Not processable"
	msgServerError      = "There was a server error"
)

// respondError maps a service error to its status. Only ErrNotFound becomes
// a 404; every other failure is reported as 422 and the cause stays in the log.
func respondError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		NotFound(ctx)
		return
	}
	if !errors.Is(err, service.ErrNotProcessable) {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unclassified service error")
	}
	NotProcessable(ctx)
}

func NotFound(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Success: false, Message: msgNotFound})
}

func MethodNotAllowed(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusMethodNotAllowed, dto.ErrorResponse{Success: false, Message: msgMethodNotAllowed})
}

func NotProcessable(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Success: false, Message: msgNotProcessable})
}

// ServerError is the recovery handler for panics.
func ServerError(ctx *gin.Context, recovered any) {
	log.Error().Interface("panic", recovered).Str("method", ctx.Request.Method).Str("path", ctx.Request.URL.Path).Msg("Recovered from panic")
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Message: msgServerError})
}
