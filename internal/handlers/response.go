package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/services"
	"github.com/studybridge/crm-backend/pkg/logger"
	"go.uber.org/zap"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, models.Response{Success: true, Data: data, Message: message})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message})
}

func respondDataMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, models.Response{Success: true, Data: data, Message: message})
}

func respondPage(c *gin.Context, data interface{}, pagination *models.Pagination) {
	c.JSON(http.StatusOK, models.Response{Success: true, Data: data, Pagination: pagination})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, models.Response{Success: false, Error: msg})
}

// handleServiceError maps a service error onto the response taxonomy:
// validation and duplicate failures are 400 with the service's message,
// missing documents are 404, anything else is logged and answered with the
// generic fallback so store internals never leak to the client.
func handleServiceError(c *gin.Context, err error, notFoundMsg, fallback string) {
	var validationErr *services.ValidationError
	var duplicateErr *services.DuplicateFieldError
	var existsErr *services.CategoryExistsError

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &duplicateErr),
		errors.As(err, &existsErr):
		respondError(c, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		respondError(c, http.StatusNotFound, notFoundMsg)
	default:
		logger.Error(fallback, zap.Error(err), zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
