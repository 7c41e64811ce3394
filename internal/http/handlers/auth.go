package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (a *API) Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	user, token, err := a.auth(c).Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, token, err := a.auth(c).Login(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// POST /api/auth/password/forgot
func (a *API) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := a.auth(c).ForgotPassword(req.Email); err != nil {
		RespondDomainError(c, err)
		return
	}
	// Always 200 so the endpoint cannot be used to probe for accounts.
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset link has been sent"})
}

// GET /api/auth/password/validate?token=...
func (a *API) ValidateResetToken(c *gin.Context) {
	if err := a.auth(c).ValidateResetToken(c.Query("token")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// POST /api/auth/password/reset
func (a *API) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		RespondError(c, http.StatusBadRequest, "passwords do not match", nil)
		return
	}
	if err := a.auth(c).ResetPassword(req.Token, req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
