package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/raffle/internal/core/domain"
	"github.com/vncsmyrnk/raffle/internal/core/ports"
	"github.com/vncsmyrnk/raffle/internal/core/services"
)

const maxBodyBytes = 4 << 10

type ParticipantHandler struct {
	service ports.ParticipantService
}

func NewParticipantHandler(service ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		service: service,
	}
}

type addedResponse struct {
	Added int64 `json:"added"`
}

type errorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

func (h *ParticipantHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(body) > maxBodyBytes {
		writeError(w, domain.ErrMalformedInput)
		return
	}

	input, err := services.ParseRegisterInput(body)
	if err != nil {
		writeError(w, err)
		return
	}

	participant, err := h.service.Register(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, addedResponse{Added: participant.Added})
}

func writeError(w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	writeJSON(w, status, errorResponse{ErrorMessage: message})
}

// errorStatus maps a registration failure to its response. Store details
// never reach the caller.
func errorStatus(err error) (int, string) {
	var validationErr *domain.ValidationError
	var duplicateErr *domain.DuplicateParticipantError

	switch {
	case errors.Is(err, domain.ErrNoBody):
		return http.StatusBadRequest, "No request body!"
	case errors.Is(err, domain.ErrMalformedInput):
		return http.StatusBadRequest, "Bad request body!"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationMessage(validationErr)
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusBadRequest, "No more participants in this poll!"
	case errors.As(err, &duplicateErr):
		return http.StatusBadRequest, "Participant " + duplicateErr.Person + " exists in the current poll!"
	default:
		return http.StatusInternalServerError, "Database error!"
	}
}

func validationMessage(err *domain.ValidationError) string {
	switch {
	case err.Reason == domain.ReasonMissing:
		return err.Field + " parameter doesn't exist in the API call!"
	case err.Field == "person" && err.Reason == domain.ReasonTooShort:
		return "Person name should contain at least 3 letters!"
	case err.Field == "person" && err.Reason == domain.ReasonTooLong:
		return "Too long person name!"
	case err.Field == "friend" && err.Reason == domain.ReasonTooShort:
		return "Friend name should contain at least 1 letter!"
	case err.Field == "friend" && err.Reason == domain.ReasonTooLong:
		return "Too long friend name!"
	default:
		return err.Field + " value contains not allowed characters!"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
