package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"growthlog/internal/auth"
	"growthlog/internal/models"
)

type AuthHandler struct {
	db           *sqlx.DB
	jwtSecret    []byte
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthHandler(db *sqlx.DB, jwtSecret []byte, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup godoc
// @Summary Register a new user
// @Description Creates a user, sets the session cookie and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} tokenResponse
// @Failure 409 {string} string "Email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if c.Email == "" || c.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	// Duplicate check happens before any write.
	var exists bool
	if err := h.db.QueryRowxContext(r.Context(), `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, c.Email).Scan(&exists); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}

	hashed, err := auth.HashPassword(c.Password)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}

	_, err = h.db.ExecContext(r.Context(),
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		uuid.NewString(), c.Email, hashed)
	if err != nil {
		// Concurrent signups can slip past the exists check; the loser hits
		// the unique constraint and is still a Conflict, not a server error.
		if isUniqueViolation(err) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	h.respondWithToken(w, c.Email)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if c.Email == "" || c.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	var user models.User
	err := h.db.GetContext(r.Context(), &user,
		`SELECT id, email, password_hash, priority_virtues, custom_virtues, created_at FROM users WHERE email=$1`, c.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if !auth.CheckPassword(c.Password, user.PasswordHash) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	h.respondWithToken(w, user.Email)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookie)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	var user models.User
	err := h.db.GetContext(r.Context(), &user,
		`SELECT id, email, priority_virtues, custom_virtues, created_at FROM users WHERE id=$1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, auth.ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"id": user.ID, "email": user.Email})
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, email string) {
	token, err := auth.IssueToken(email, h.jwtSecret, h.tokenTTL)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, token, h.tokenTTL, h.secureCookie)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{AccessToken: token, TokenType: "bearer"})
}
