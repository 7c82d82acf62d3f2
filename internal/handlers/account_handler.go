package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Roland778ad/devops-capstone-project/internal/repositories"
	"github.com/Roland778ad/devops-capstone-project/internal/services"
)

// AccountHandler maps HTTP verbs and paths onto AccountService operations
// and translates service errors into status codes.
type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"name":    "Account REST API Service",
		"version": "1.0",
		"url":     "/accounts",
	})
}

func (h *AccountHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.Create(r.Context(), req)
	if errors.Is(err, services.ErrValidation) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/accounts/%d", account.ID))
	respondJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		accountNotFound(w, chi.URLParam(r, "id"))
		return
	}

	account, err := h.accounts.Get(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		accountNotFound(w, chi.URLParam(r, "id"))
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		accountNotFound(w, chi.URLParam(r, "id"))
		return
	}

	req, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.Update(r.Context(), id, req)
	if errors.Is(err, repositories.ErrNotFound) {
		accountNotFound(w, chi.URLParam(r, "id"))
		return
	}
	if errors.Is(err, services.ErrValidation) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// Delete returns 204 whether or not the account existed. The end state is
// the same either way, so absence before the call is not an error.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodePayload enforces the application/json content type and parses the
// request body. It writes the 415 or 400 response itself and reports
// success through the bool.
func (h *AccountHandler) decodePayload(w http.ResponseWriter, r *http.Request) (services.AccountRequest, bool) {
	var req services.AccountRequest

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return req, false
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return req, false
	}

	return req, true
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func accountNotFound(w http.ResponseWriter, id string) {
	respondError(w, http.StatusNotFound, fmt.Sprintf("Account with id [%s] could not be found", id))
}

func internalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("request failed")
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

type errorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}
