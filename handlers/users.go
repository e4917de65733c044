// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/tribedates/auth"
	"github.com/danielhkuo/tribedates/cliparse"
	"github.com/danielhkuo/tribedates/middleware"
	"github.com/danielhkuo/tribedates/models"
	"github.com/danielhkuo/tribedates/store"
)

type UserHandler struct {
	st  store.Store
	cfg cliparse.Config
}

func NewUserHandler(st store.Store, cfg cliparse.Config) *UserHandler {
	return &UserHandler{st: st, cfg: cfg}
}

// Register handles POST /users/register
// Creates a user namespace and returns the id plus its HMAC key. The key
// is re-derivable from the salt, so nothing secret is persisted.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is required")
		return
	}

	userID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate user ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}
	userKey := auth.GenerateUserKey(userID, h.cfg.UserKeySalt)

	profile := models.Profile{
		DisplayName: req.DisplayName,
		Created:     time.Now().UTC(),
	}
	if err := h.st.Write(r.Context(), store.ProfilePath(userID), profile); err != nil {
		slog.Error("failed to write profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterUserResponse{
		UserID:  userID,
		UserKey: userKey,
	})
}
