package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resourceEditorAPI/internal/auth"
	"resourceEditorAPI/internal/k8s"
	"resourceEditorAPI/internal/models"
)

// hashPassword is a package var so tests can force a hashing failure.
var hashPassword = func(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// OperatorHandler handles operator registration and login
type OperatorHandler struct {
	Tokens auth.TokenIssuer
	Store  k8s.OperatorStore
	Logger *zap.Logger
}

// NewOperatorHandler creates a new OperatorHandler
func NewOperatorHandler(store k8s.OperatorStore, tokens auth.TokenIssuer, logger *zap.Logger) *OperatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperatorHandler{
		Tokens: tokens,
		Store:  store,
		Logger: logger,
	}
}

// Register stores a bcrypt hash for a new operator
func (h *OperatorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.OperatorRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Password == "" {
		http.Error(w, "Name and password are required", http.StatusBadRequest)
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	if err := h.Store.CreateOperator(req.Name, string(hash)); err != nil {
		if errors.Is(err, k8s.ErrOperatorExists) {
			http.Error(w, "Operator already exists", http.StatusConflict)
			return
		}
		h.Logger.Error("failed to store operator", zap.String("operator", req.Name), zap.Error(err))
		http.Error(w, "Failed to store credentials", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("operator registered", zap.String("operator", req.Name))
	writeJSON(w, h.Logger, http.StatusCreated, models.OperatorResponse{
		Message: "Operator registered successfully",
	})
}

// Login validates operator credentials and returns a JWT token
func (h *OperatorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.OperatorRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	storedHash, err := h.Store.OperatorPasswordHash(req.Name)
	if err != nil {
		if !errors.Is(err, k8s.ErrOperatorNotFound) {
			h.Logger.Error("failed to read operator", zap.String("operator", req.Name), zap.Error(err))
		}
		http.Error(w, "Invalid name or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid name or password", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Generate(req.Name)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, models.OperatorResponse{
		Token:   token,
		Message: "Login successful",
	})
}

// ChangePassword replaces the password of the authenticated operator
func (h *OperatorHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	operator, ok := auth.OperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.PasswordChangeRequest
	if err := decodeJSON(r, &req); err != nil || req.NewPassword == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		http.Error(w, "Failed to hash new password", http.StatusInternalServerError)
		return
	}

	if err := h.Store.UpdateOperatorPassword(operator, string(hash)); err != nil {
		if errors.Is(err, k8s.ErrOperatorNotFound) {
			http.Error(w, "Operator not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to update operator", zap.String("operator", operator), zap.Error(err))
		http.Error(w, "Failed to update credentials", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, models.OperatorResponse{
		Message: "Password updated successfully",
	})
}

// Delete removes the authenticated operator account
func (h *OperatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	operator, ok := auth.OperatorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Store.DeleteOperator(operator); err != nil {
		if errors.Is(err, k8s.ErrOperatorNotFound) {
			http.Error(w, "Operator not found", http.StatusNotFound)
			return
		}
		h.Logger.Error("failed to delete operator", zap.String("operator", operator), zap.Error(err))
		http.Error(w, "Failed to delete operator", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("operator deleted", zap.String("operator", operator))
	writeJSON(w, h.Logger, http.StatusOK, models.OperatorResponse{
		Message: "Operator deleted successfully",
	})
}
