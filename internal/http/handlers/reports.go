package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/revenue?from&to (admin)
func (a *API) RevenueReport(c *gin.Context) {
	report, err := a.reports(c).Revenue(c.Query("from"), c.Query("to"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/reports/routes/popular?limit (admin)
func (a *API) PopularRoutesReport(c *gin.Context) {
	routes, err := a.reports(c).PopularRoutes(queryInt(c, "limit", 10))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/reports/bookings/export?from&to&format (admin)
func (a *API) ExportBookings(c *gin.Context) {
	blob, name, contentType, err := a.reports(c).ExportBookings(c.Query("from"), c.Query("to"), c.Query("format"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, blob)
}
