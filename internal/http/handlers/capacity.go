package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/vessels/:id/capacity?route_id&date&time&passengers
//
// The booking form re-queries this on every input change; results are cached
// per exact query tuple for the freshness window, so rapid changes cannot
// display a stale result under a new key.
func (a *API) CheckCapacity(c *gin.Context) {
	vesselID, ok := paramID(c)
	if !ok {
		return
	}
	routeID := queryInt64(c, "route_id")
	if routeID <= 0 {
		RespondError(c, http.StatusBadRequest, "route_id is required", nil)
		return
	}
	date := c.Query("date")
	if date == "" {
		RespondError(c, http.StatusBadRequest, "date is required", nil)
		return
	}
	departure := c.Query("time")
	if departure == "" {
		RespondError(c, http.StatusBadRequest, "time is required", nil)
		return
	}
	passengers := queryInt(c, "passengers", 1)

	result, err := a.capacity().Check(c.Request.Context(), vesselID, routeID, date, departure, passengers)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
