package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/cosmestock/auth"
	"github.com/diewo77/cosmestock/httpx"
	"github.com/diewo77/cosmestock/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/login", h.login)
	mux.HandleFunc("POST /api/logout", h.logout)
}

// login verifies the shared credential against the stored bcrypt hash and
// opens a session. Wrong credentials get the same response as an unknown
// username.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var username, password string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
			return
		}
		username, password = body.Username, body.Password
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
			return
		}
		username, password = r.FormValue("username"), r.FormValue("password")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_credentials", nil)
		return
	}
	var user models.User
	if err := h.DB.Where("username = ?", username).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": user.ID, "username": user.Username}})
}

func (h *AuthHandler) logout(w http.ResponseWriter, _ *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"logged_out": true})
}
