package handler

import (
	"net/http"

	"primefire/internal/service"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
)

type CountryHandler struct {
	countryService service.CountryService
}

func NewCountryHandler(countryService service.CountryService) *CountryHandler {
	return &CountryHandler{countryService: countryService}
}

// Countries are reference data for address forms, so any authenticated
// employee may list them.
func (h *CountryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/countries", h.ListCountries)
}

// ListCountries returns all stored countries
func (h *CountryHandler) ListCountries(c *gin.Context) {
	countries, err := h.countryService.GetCountries(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, countries))
}
