package handler

import (
	"log/slog"
	"net/http"

	"github.com/sathira/codewizard/internal/service"
)

// ProblemHandler owns the problem-board CRUD endpoints.
type ProblemHandler struct {
	problems *service.ProblemService
	logger   *slog.Logger
}

func NewProblemHandler(problems *service.ProblemService, logger *slog.Logger) *ProblemHandler {
	return &ProblemHandler{problems: problems, logger: logger}
}

type createProblemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

// HandleCreate posts a new problem.
//
// HTTP: POST /api/problems (guarded)
// The owner email comes from the request body, not the token — the form has
// always sent it explicitly and nothing cross-checks it against the claim.
func (h *ProblemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProblemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	problem, err := h.problems.Create(r.Context(), req.Title, req.Description, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, problem)
}

// HandleList returns every problem.
//
// HTTP: GET /api/problems (public)
func (h *ProblemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	problems, err := h.problems.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, problems)
}

// HandleListByEmail returns the problems posted under an email.
//
// HTTP: GET /api/problems/email/{email} (guarded)
// 404 when the email has no problems.
func (h *ProblemHandler) HandleListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	problems, err := h.problems.ListByOwner(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, problems)
}

type updateProblemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HandleUpdate replaces a problem's title and description.
//
// HTTP: PUT /api/problems/{id} (guarded)
func (h *ProblemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateProblemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	problem, err := h.problems.Update(r.Context(), id, req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, problem)
}

// HandleDelete removes a problem.
//
// HTTP: DELETE /api/problems/{id} (guarded)
// Returns 200 with a confirmation body rather than 204, matching what the
// frontend expects.
func (h *ProblemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.problems.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Problem deleted successfully"})
}
