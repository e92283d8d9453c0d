package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/soundstage/soundstage/internal/gateway/middleware"
	"github.com/soundstage/soundstage/internal/modules/account/application"
	"github.com/soundstage/soundstage/internal/modules/account/domain"
)

// AccountService defines the interface for account operations
type AccountService interface {
	Register(ctx context.Context, req application.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, req application.LoginRequest) (*domain.User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetPublicProfile(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, callerID, targetID uuid.UUID, req application.UpdateProfileRequest) (*application.UpdateProfileResult, error)
	SetAvatar(ctx context.Context, id uuid.UUID, url string) error
	GoogleLogin(ctx context.Context, googleClientID string, req application.GoogleLoginRequest) (string, error)
}

// FileService defines the interface for avatar uploads
type FileService interface {
	UploadImage(ctx context.Context, r *http.Request, formKey, folder string, maxDim int) (string, error)
}

type AccountHandler struct {
	service        AccountService
	fileService    FileService
	googleClientID string
}

func NewAccountHandler(service AccountService, fileService FileService, googleClientID string) *AccountHandler {
	return &AccountHandler{
		service:        service,
		fileService:    fileService,
		googleClientID: googleClientID,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		log.Printf("Register: encode response failed: %v", err)
	}
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, token, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AccountHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req application.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	token, err := h.service.GoogleLogin(r.Context(), h.googleClientID, req)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error": "user not authenticated"}`, http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error": "user not authenticated"}`, http.StatusUnauthorized)
		return
	}

	var req application.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), userID, userID, req)
	if err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *AccountHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		http.Error(w, `{"error":"username is required"}`, http.StatusBadRequest)
		return
	}

	user, err := h.service.GetPublicProfile(r.Context(), username)
	if err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		http.Error(w, `{"error": "user not authenticated"}`, http.StatusUnauthorized)
		return
	}

	url, err := h.fileService.UploadImage(r.Context(), r, "avatar", "avatars", 512)
	if err != nil {
		log.Printf("UploadAvatar: %v", err)
		http.Error(w, `{"error":"avatar upload failed"}`, http.StatusBadRequest)
		return
	}

	if err := h.service.SetAvatar(r.Context(), userID, url); err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"avatar_url": url})
}

func writeAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, `{"error": "missing or invalid required field"}`, http.StatusBadRequest)
	case errors.Is(err, domain.ErrUserAlreadyExists):
		http.Error(w, `{"error": "user already exists"}`, http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidCredentials):
		http.Error(w, `{"error": "invalid credentials"}`, http.StatusUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
	case errors.Is(err, domain.ErrUserNotFound):
		http.Error(w, `{"error": "user not found"}`, http.StatusNotFound)
	case errors.Is(err, domain.ErrStoreUnavailable):
		http.Error(w, `{"error": "service temporarily unavailable"}`, http.StatusServiceUnavailable)
	default:
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}
