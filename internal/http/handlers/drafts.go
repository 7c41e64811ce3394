package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/domain/models"
)

// PUT /api/bookings/draft
//
// Saves the caller's in-progress booking form so it survives the redirect
// through login/registration. One slot per user; saving overwrites.
func (a *API) SaveDraft(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var draft models.PendingBookingDraft
	if !BindJSONOrError(c, &draft) {
		return
	}
	if err := a.drafts().Save(c.Request.Context(), int64(rc.UserID), draft); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// GET /api/bookings/draft?route_id=N
//
// Returns the draft for pre-fill when it matches the requested route;
// a draft for another route is withheld but kept.
func (a *API) GetDraft(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	routeID := queryInt64(c, "route_id")

	draft, restored, err := a.drafts().GetForRoute(c.Request.Context(), int64(rc.UserID), routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	exists, err := a.drafts().Exists(c.Request.Context(), int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := gin.H{"restored": restored, "exists": exists}
	if restored {
		resp["draft"] = draft
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/bookings/draft
func (a *API) ClearDraft(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	if err := a.drafts().Clear(c.Request.Context(), int64(rc.UserID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
