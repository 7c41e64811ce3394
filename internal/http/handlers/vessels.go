package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
)

func (a *API) vessels() repositories.VesselRepository {
	return repositories.VesselRepository{DB: a.DB}
}

// GET /api/vessels
func (a *API) ListVessels(c *gin.Context) {
	vessels, err := a.vessels().List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list vessels", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vessels": vessels})
}

// POST /api/vessels (admin)
func (a *API) CreateVessel(c *gin.Context) {
	var v models.Vessel
	if !BindJSONOrError(c, &v) {
		return
	}
	if v.Name == "" || v.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "name and positive capacity are required", nil)
		return
	}
	id, err := a.vessels().Create(v)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create vessel", err)
		return
	}
	v.ID = id
	c.JSON(http.StatusCreated, gin.H{"vessel": v})
}

// PUT /api/vessels/:id (admin)
func (a *API) UpdateVessel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var v models.Vessel
	if !BindJSONOrError(c, &v) {
		return
	}
	if v.Name == "" || v.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "name and positive capacity are required", nil)
		return
	}
	v.ID = id
	if err := a.vessels().Update(v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "vessel not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to update vessel", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vessel": v})
}

// DELETE /api/vessels/:id (admin)
func (a *API) DeleteVessel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := a.vessels().Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "vessel not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to delete vessel", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
