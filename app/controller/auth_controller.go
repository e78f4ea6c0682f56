package controller

import (
	"log"
	"net/http"

	"frame-storefront/models"
	"frame-storefront/service"
)

// AuthController handles HTTP requests for accounts
type AuthController struct {
	auth service.AuthServiceInterface
}

// NewAuthController creates a new AuthController
func NewAuthController(auth service.AuthServiceInterface) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Register: Received %s request to %s", r.Method, r.URL.Path)

	var req models.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := c.auth.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "Register", "registering user", err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := c.auth.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "Login", "signing in", err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Me handles GET /me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := c.auth.Me(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, "Me", "loading account", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
