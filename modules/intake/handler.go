package intake

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/oddlzenie/intake/pkg/clientip"
	"github.com/oddlzenie/intake/pkg/logger"
)

// maxBodyBytes caps the submission payload. Forms are small; anything
// bigger is abuse or a broken client.
const maxBodyBytes = 5 << 20

const (
	msgSubmitted       = "Žiadosť úspešne odoslaná"
	msgMissingFields   = "Chýbajúce povinné údaje (meno, priezvisko, email)"
	msgProcessingError = "Chyba pri spracovaní žiadosti. Skúste to znova."
)

// Handler serves the form submission endpoint, orchestrating the
// render-then-notify pipeline.
type Handler struct {
	renderer DocumentRenderer
	notifier *Notifier
	log      *slog.Logger
}

// NewHandler wires a Handler from its dependencies.
func NewHandler(renderer DocumentRenderer, notifier *Notifier, log *slog.Logger) *Handler {
	return &Handler{renderer: renderer, notifier: notifier, log: log}
}

// SubmitForm accepts a JSON form submission, renders the application
// documents, and sends the operator and applicant notifications in that
// order. Failures after validation all map to the same generic 500 so the
// frontend never needs to distinguish them.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var sub FormSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.log.WarnContext(r.Context(), "malformed submission body", logger.Error(err))
		respondError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	if err := sub.Validate(); err != nil {
		h.log.WarnContext(r.Context(), "submission rejected", logger.Error(err),
			logger.ClientIP(clientip.GetIP(r)))
		respondError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	// Once the submission is accepted, processing must not die with the
	// client connection: the applicant may close the tab right after
	// hitting submit.
	ctx := context.WithoutCancel(r.Context())

	docs, err := h.renderer.Render(ctx, sub)
	if err != nil {
		h.log.ErrorContext(ctx, "document rendering failed", logger.Error(err),
			slog.String("applicant", sub.FullName()))
		respondError(w, http.StatusInternalServerError, msgProcessingError)
		return
	}
	defer func() {
		if err := docs.Close(); err != nil {
			h.log.WarnContext(ctx, "working area cleanup failed", logger.Error(err))
		}
	}()

	if err := h.notifier.NotifyOperator(ctx, sub, docs); err != nil {
		h.log.ErrorContext(ctx, "operator notification failed", logger.Error(err),
			slog.String("applicant", sub.FullName()))
		respondError(w, http.StatusInternalServerError, msgProcessingError)
		return
	}

	if err := h.notifier.NotifyApplicant(ctx, sub); err != nil {
		h.log.ErrorContext(ctx, "applicant confirmation failed", logger.Error(err),
			slog.String("applicant", sub.FullName()))
		respondError(w, http.StatusInternalServerError, msgProcessingError)
		return
	}

	h.log.InfoContext(ctx, "submission processed",
		slog.String("applicant", sub.FullName()),
		slog.Int("documents", len(docs.Documents)))

	respondJSON(w, http.StatusOK, submitResponse{Success: true, Message: msgSubmitted})
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}
