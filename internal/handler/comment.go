package handler

import (
	"log/slog"
	"net/http"

	"github.com/sathira/codewizard/internal/service"
)

// CommentHandler owns the comment-thread endpoints.
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

type commentTextRequest struct {
	Text string `json:"text"`
}

// HandleAddComment attaches a comment to a problem.
//
// HTTP: POST /api/problems/{id}/comments (guarded)
// The problem id is not checked for existence; see the service docs.
func (h *CommentHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	problemID := r.PathValue("id")

	var req commentTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.comments.AddComment(r.Context(), problemID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// HandleListForProblem returns a problem's comment thread.
//
// HTTP: GET /api/problems/{id}/comments (public)
// An empty thread is 200 with [], never 404.
func (h *CommentHandler) HandleListForProblem(w http.ResponseWriter, r *http.Request) {
	problemID := r.PathValue("id")

	comments, err := h.comments.ListForProblem(r.Context(), problemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// HandleAddReply appends a reply to a comment and returns the updated
// comment.
//
// HTTP: POST /api/comments/{commentId}/replies (public — the reply route
// has never required a token, unlike comment creation; kept as-is)
func (h *CommentHandler) HandleAddReply(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("commentId")

	var req commentTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.comments.AddReply(r.Context(), commentID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}
