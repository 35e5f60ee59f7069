package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"soundlift/core/auth"
	"soundlift/logger"
	"soundlift/model"
	"soundlift/repository"
)

type contextKey string

const (
	ctxUserID   contextKey = "userID"
	ctxUsername contextKey = "username"
)

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	ArtistName string `json:"artistName"`
}

// LoginRequest is the login request body. Username may be a username or an
// email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterHandler creates a new artist account and returns a token for it.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Username, password and email are required")
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	user, err := h.userRepo.CreateUser(&model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		ArtistName:   req.ArtistName,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			logger.Warn("registration rejected, duplicate user",
				logger.String("username", req.Username),
				logger.String("email", req.Email))
			respondError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		logger.Error("failed to create user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		logger.Error("failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	logger.Info("user registered", logger.String("username", user.Username))
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// LoginHandler authenticates by username or email plus password.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username/email and password are required")
		return
	}

	var user *model.User
	var err error
	if strings.Contains(req.Username, "@") {
		user, err = h.userRepo.GetUserByEmail(req.Username)
	} else {
		user, err = h.userRepo.GetUserByUsername(req.Username)
	}
	if err != nil {
		logger.Error("failed to look up user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.Warn("login rejected", logger.String("username", req.Username))
		respondError(w, http.StatusUnauthorized, "Invalid username/email or password")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		logger.Error("failed to generate token", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("user logged in", logger.String("username", user.Username))
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// CurrentUserHandler returns the authenticated user's account.
func (h *APIHandler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Error("failed to load user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// AuthMiddleware checks for a valid bearer token and stores the caller's
// identity in the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := h.tokens.ParseToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxUsername, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(ctxUserID).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// GetUsernameFromContext extracts the username from the request context.
func GetUsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(ctxUsername).(string)
	if !ok || username == "" {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}
