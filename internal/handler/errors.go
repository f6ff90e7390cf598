package handler

import (
	"errors"
	"net/http"

	"primefire/internal/middleware"
	"primefire/internal/model"
	"primefire/internal/service"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps a service error onto an HTTP status. Services wrap
// gorm.ErrRecordNotFound on missing records, service.ErrForbidden on
// authorization failures and service.ErrDirectoryUnavailable on Graph
// outages; anything else is a domain violation.
func respondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrDirectoryUnavailable):
		status = http.StatusInternalServerError
	}
	c.JSON(status, response.Error(status, err.Error()))
}

// respondBindingError reports a payload that failed binding validation.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, "Invalid request payload: "+err.Error()))
}

// respondInternalError reports a failure the client cannot fix.
func respondInternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
}

// currentEmployee pulls the employee loaded by RequireAuth, answering 401
// when it is missing from the context.
func currentEmployee(c *gin.Context) (*model.Employee, bool) {
	employee, ok := middleware.CurrentEmployee(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authentication required"))
	}
	return employee, ok
}
