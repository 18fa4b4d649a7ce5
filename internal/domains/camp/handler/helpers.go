package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/internal/shared/response"
	"codecamp-backend/pkg/logger"
)

// respondError maps a service error to the response envelope.
// Persistence and unexpected errors never leak their cause to the client.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := model.ToHTTPStatus(err)
	code := model.ToErrorCode(err)

	if errors.Is(err, model.ErrPersistence) {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("database failure")
		response.ErrorResponse(c, status, code, "Database failure")
		return
	}
	if status == http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("unexpected error")
		response.ErrorResponse(c, status, code, "Internal server error")
		return
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, status, code, "Validation failed", verrs)
		return
	}
	response.ErrorResponse(c, status, code, err.Error())
}

// boolQuery đọc query param kiểu bool; thiếu = false.
func boolQuery(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(c, name+" must be true or false")
		return false, false
	}
	return v, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}
