package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/domain/models"
)

// GET /api/routes
func (a *API) ListRoutes(c *gin.Context) {
	filter := models.RouteFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	p := pagination(c)
	routes, err := a.routes().List(filter, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes, "pagination": p})
}

// GET /api/routes/:id
func (a *API) GetRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rt, err := a.routes().Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": rt})
}

// POST /api/routes (admin)
func (a *API) CreateRoute(c *gin.Context) {
	var rt models.Route
	if !BindJSONOrError(c, &rt) {
		return
	}
	created, err := a.routes().Create(rt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": created})
}

// PUT /api/routes/:id (admin)
func (a *API) UpdateRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var rt models.Route
	if !BindJSONOrError(c, &rt) {
		return
	}
	rt.ID = id
	updated, err := a.routes().Update(rt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": updated})
}

// DELETE /api/routes/:id (admin)
func (a *API) DeleteRoute(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := a.routes().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
