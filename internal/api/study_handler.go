package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/generation"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/logger"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service"
)

// StudyRequest is the body of the summary and quiz endpoints. Both fields
// stay raw so that their shape is judged by the domain validators.
type StudyRequest struct {
	Note    json.RawMessage `json:"note"`
	Options json.RawMessage `json:"options"`
}

// SummaryResponse is the success body of POST /summary.
type SummaryResponse struct {
	shared.Envelope
	NoteID  json.RawMessage       `json:"noteId"`
	Type    string                `json:"type"`
	Summary *domain.SummaryResult `json:"summary"`
}

// QuizResponse is the success body of POST /quiz.
type QuizResponse struct {
	shared.Envelope
	NoteID json.RawMessage    `json:"noteId"`
	Type   string             `json:"type"`
	Quiz   *domain.QuizResult `json:"quiz"`
}

// StudyHandler serves the summary, quiz and health endpoints.
type StudyHandler struct {
	studyService service.StudyService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService service.StudyService, logger *slog.Logger) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With("component", "study_handler"),
	}
}

// Health answers the liveness probe.
func (h *StudyHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.Succeeded(r, "RAG API is healthy"))
}

// Summary handles POST /summary.
func (h *StudyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, _ := shared.EnsureRequestID(r.Context())
	r = r.WithContext(ctx)
	log := logger.FromContextOrDefault(ctx, h.logger)

	note, options, ok := h.readNote(w, r)
	if !ok {
		return
	}

	opts := domain.ParseSummaryOptions(options)

	summary, err := h.studyService.Summarize(ctx, note.Text, opts)
	if err != nil {
		h.respondGenerationError(w, r, err, "Failed to generate summary", "LLM returned invalid JSON")
		return
	}

	log.Debug("summary generated", "bullets", len(summary.Bullets))
	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{
		Envelope: shared.Succeeded(r, "Summary generated successfully"),
		NoteID:   note.ID,
		Type:     string(generation.KindSummary),
		Summary:  summary,
	})
}

// Quiz handles POST /quiz.
func (h *StudyHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	ctx, _ := shared.EnsureRequestID(r.Context())
	r = r.WithContext(ctx)
	log := logger.FromContextOrDefault(ctx, h.logger)

	note, options, ok := h.readNote(w, r)
	if !ok {
		return
	}

	opts, err := domain.ValidateQuizOptions(options)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			CodeInvalidOptions, "Invalid quiz options", err)
		return
	}

	quiz, err := h.studyService.GenerateQuiz(ctx, note.Text, opts)
	if err != nil {
		h.respondGenerationError(w, r, err, "Failed to generate quiz", "LLM returned invalid quiz JSON")
		return
	}

	log.Debug("quiz generated", "questions", len(quiz.Questions))
	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{
		Envelope: shared.Succeeded(r, "Quiz generated successfully"),
		NoteID:   note.ID,
		Type:     string(generation.KindQuiz),
		Quiz:     quiz,
	})
}

// readNote decodes the body and validates the note, answering the request
// itself when either fails. A body over the size cap is a 413; any other
// unreadable body counts as a missing note.
func (h *StudyHandler) readNote(w http.ResponseWriter, r *http.Request) (*domain.Note, json.RawMessage, bool) {
	var req StudyRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		if bodyTooLarge(err) {
			status, code, message := MapErrorToCode(err)
			shared.RespondWithErrorAndLog(w, r, status, code, message, err)
			return nil, nil, false
		}
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("unreadable study request body", "error", err)
		req = StudyRequest{}
	}

	note, err := domain.ValidateNote(req.Note)
	if err != nil {
		status, code, message := MapErrorToCode(err)
		shared.RespondWithErrorAndLog(w, r, status, code, message, err)
		return nil, nil, false
	}
	return note, req.Options, true
}

// respondGenerationError answers a failed model call. Shape mismatches are
// invalid-llm-json; every other failure is llm-failed with its diagnostic text.
func (h *StudyHandler) respondGenerationError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	failedMessage string,
	invalidJSONMessage string,
) {
	status, code, _ := MapErrorToCode(err)
	if code == CodeInvalidLLMJSON {
		shared.RespondWithErrorAndLog(w, r, status, code, invalidJSONMessage, err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, CodeLLMFailed, failedMessage, err,
		shared.WithDetails(err.Error()))
}
