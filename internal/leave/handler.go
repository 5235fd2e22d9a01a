package leave

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/leave-management/internal"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var dto CreateLeaveDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateLeave: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.Create(r.Context(), actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, l.ToResponse())
}

func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l.ToResponse())
}

// GetMyLeaves lists the caller's own requests.
func (h *Handler) GetMyLeaves(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	requests, err := h.Service.ListFor(r.Context(), actor, actor.Username)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(requests))
}

func (h *Handler) GetPendingLeaves(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	requests, err := h.Service.ListPending(r.Context(), actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(requests))
}

func (h *Handler) GetAllLeaves(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	requests, err := h.Service.ListAll(r.Context(), actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponses(requests))
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, OutcomeApprove)
}

func (h *Handler) DenyLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, OutcomeDeny)
}

func (h *Handler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.Cancel(r.Context(), actor, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l.ToResponse())
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, outcome Outcome) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.leaveID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.Decide(r.Context(), actor, id, outcome)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l.ToResponse())
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (coreuser.Actor, bool) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.Logger.Error("leave handler: actor not found in context", "path", r.URL.Path)
		h.HandleServiceError(w, internal.ErrInvalidToken)
		return coreuser.Actor{}, false
	}
	return actor, true
}

func (h *Handler) leaveID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.Logger.Warn("leave handler: invalid leave ID", "id", raw)
		h.WriteAppError(w, internal.NewValidationFieldError("id", "id must be a positive integer", internal.ErrCodeInvalidInput))
		return 0, false
	}
	return id, true
}
