package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	profile, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "registration failed")
		return
	}

	utils.WriteJSON(w, profile, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "login failed")
		return
	}

	w.Header().Set("Authorization", "Bearer "+resp.Token)
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	profile, err := h.services.AuthService.Profile(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err, "error getting profile")
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) storageUsage(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	usage, err := h.services.FileService.Usage(r.Context(), *claims)
	if err != nil {
		writeServiceError(w, r, err, "error calculating storage usage")
		return
	}

	utils.WriteJSON(w, usage, http.StatusOK)
}

// claims returns the verified claims put into the context by the auth
// middleware. It answers 401 itself when they are missing.
func (h *Handler) claims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Err(ErrNoClaimsInContext).Send()
		utils.WriteError(w, app.MsgUnauthorized, http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}
