// Package handler exposes the event service over HTTP. Handlers decode and
// validate request DTOs, call exactly one service operation, and write
// responses through the shared httputil writers.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lankaconnect/internal/events/service"
	id "lankaconnect/pkg/domain"
	"lankaconnect/pkg/platform/httputil"
	"lankaconnect/pkg/requestcontext"
)

// Handler wires event endpoints to the event service.
type Handler struct {
	service *service.EventService
	logger  *slog.Logger
}

// New constructs an event handler with its dependencies.
func New(svc *service.EventService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{service: svc, logger: logger}
}

// Register mounts event endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", h.HandleGet)

			r.Post("/submit-review", h.HandleSubmitForReview)
			r.Post("/approve", h.HandleApprove)
			r.Post("/reject", h.HandleReject)
			r.Post("/publish", h.HandlePublish)
			r.Post("/unpublish", h.HandleUnpublish)
			r.Post("/activate", h.HandleActivate)
			r.Post("/cancel", h.HandleCancel)
			r.Post("/postpone", h.HandlePostpone)
			r.Post("/complete", h.HandleComplete)
			r.Post("/archive", h.HandleArchive)

			r.Put("/capacity", h.HandleUpdateCapacity)

			r.Post("/registrations", h.HandleRegister)
			r.Put("/registrations/{userID}", h.HandleUpdateRegistration)
			r.Delete("/registrations/{userID}", h.HandleCancelRegistration)

			r.Post("/waitlist", h.HandleJoinWaitlist)
			r.Delete("/waitlist/{userID}", h.HandleLeaveWaitlist)
			r.Post("/waitlist/{userID}/promote", h.HandlePromote)

			r.Post("/passes", h.HandleAddPass)
			r.Delete("/passes/{passID}", h.HandleRemovePass)
			r.Post("/passes/{passID}/reserve", h.HandleReservePass)
			r.Post("/passes/{passID}/release", h.HandleReleasePass)

			r.Post("/signup-lists", h.HandleAddSignUpList)
			r.Delete("/signup-lists/{listID}", h.HandleRemoveSignUpList)
			r.Post("/signup-lists/{listID}/commitments", h.HandleCommit)
			r.Delete("/signup-lists/{listID}/commitments/{userID}", h.HandleCancelCommitment)

			r.Post("/badges", h.HandleAssignBadge)
			r.Delete("/badges/{badgeID}", h.HandleRemoveBadge)
		})
	})
}

// eventID parses the {eventID} URL parameter. On failure it writes the error
// response and reports false.
func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (id.EventID, bool) {
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.EventID{}, false
	}
	return eventID, true
}

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return userID, true
}

// validatable is the contract request DTOs implement.
type validatable interface {
	Validate() error
}

// decode reads and validates a request body of type T.
func decode[T validatable](h *Handler, w http.ResponseWriter, r *http.Request) (T, bool) {
	req, ok := httputil.DecodeJSON[T](w, r, h.logger)
	if !ok {
		return req, false
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return req, false
	}
	return req, true
}

// respond converts a service result into the uniform success/error response.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, err error) {
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "event operation succeeded",
		"operation", op,
		"request_id", requestcontext.RequestID(r.Context()),
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreate handles POST /events.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[*CreateEventRequest](h, w, r)
	if !ok {
		return
	}

	event, err := h.service.CreateEvent(r.Context(), service.CreateEventParams{
		OrganizerID: req.ParsedOrganizerID(),
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Capacity:    req.Capacity,
		TicketPrice: req.ParsedPrice(),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromEvent(event))
}

// HandleGet handles GET /events/{eventID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvent(event))
}

func (h *Handler) HandleSubmitForReview(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "submit_for_review", h.service.SubmitForReview(r.Context(), eventID))
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*ReviewRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "approve", h.service.Approve(r.Context(), eventID, req.ParsedAdminID()))
}

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*ReviewRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "reject", h.service.Reject(r.Context(), eventID, req.ParsedAdminID(), req.Reason))
}

func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "publish", h.service.Publish(r.Context(), eventID))
}

func (h *Handler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "unpublish", h.service.Unpublish(r.Context(), eventID))
}

func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "activate", h.service.Activate(r.Context(), eventID))
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*ReasonRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "cancel", h.service.Cancel(r.Context(), eventID, req.Reason))
}

func (h *Handler) HandlePostpone(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*ReasonRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "postpone", h.service.Postpone(r.Context(), eventID, req.Reason))
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "complete", h.service.Complete(r.Context(), eventID))
}

func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "archive", h.service.Archive(r.Context(), eventID))
}

func (h *Handler) HandleUpdateCapacity(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*CapacityRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "update_capacity", h.service.UpdateCapacity(r.Context(), eventID, req.Capacity))
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*RegisterRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "register",
		h.service.Register(r.Context(), eventID, req.ParsedUserID(), req.Quantity))
}

func (h *Handler) HandleUpdateRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	req, ok := decode[*QuantityRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "update_registration",
		h.service.UpdateRegistration(r.Context(), eventID, userID, req.Quantity))
}

func (h *Handler) HandleCancelRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "cancel_registration",
		h.service.CancelRegistration(r.Context(), eventID, userID))
}

func (h *Handler) HandleJoinWaitlist(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*WaitlistRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "join_waitlist",
		h.service.AddToWaitingList(r.Context(), eventID, req.ParsedUserID()))
}

func (h *Handler) HandleLeaveWaitlist(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "leave_waitlist",
		h.service.RemoveFromWaitingList(r.Context(), eventID, userID))
}

func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "promote_from_waitlist",
		h.service.PromoteFromWaitingList(r.Context(), eventID, userID))
}

func (h *Handler) HandleAddPass(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*AddPassRequest](h, w, r)
	if !ok {
		return
	}
	passID, err := h.service.AddPass(r.Context(), eventID, service.AddPassParams{
		Name:  req.Name,
		Price: req.ParsedPrice(),
		Total: req.Total,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: passID.String()})
}

func (h *Handler) HandleRemovePass(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	passID, err := id.ParsePassID(chi.URLParam(r, "passID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, r, "remove_pass", h.service.RemovePass(r.Context(), eventID, passID))
}

func (h *Handler) HandleReservePass(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	passID, err := id.ParsePassID(chi.URLParam(r, "passID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := decode[*PassQuantityRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "reserve_pass",
		h.service.ReservePass(r.Context(), eventID, passID, req.Quantity))
}

func (h *Handler) HandleReleasePass(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	passID, err := id.ParsePassID(chi.URLParam(r, "passID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := decode[*PassQuantityRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "release_pass",
		h.service.ReleasePass(r.Context(), eventID, passID, req.Quantity))
}

func (h *Handler) HandleAddSignUpList(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*AddSignUpListRequest](h, w, r)
	if !ok {
		return
	}
	listID, err := h.service.AddSignUpList(r.Context(), eventID, service.AddSignUpListParams{
		Category:    req.Category,
		Description: req.Description,
		Items:       req.Items,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, CreatedResponse{ID: listID.String()})
}

func (h *Handler) HandleRemoveSignUpList(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	listID, err := id.ParseSignUpListID(chi.URLParam(r, "listID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, r, "remove_signup_list", h.service.RemoveSignUpList(r.Context(), eventID, listID))
}

func (h *Handler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	listID, err := id.ParseSignUpListID(chi.URLParam(r, "listID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := decode[*CommitRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "add_signup_commitment",
		h.service.CommitToSignUpList(r.Context(), eventID, listID, req.ParsedUserID(), req.Item, req.Quantity))
}

func (h *Handler) HandleCancelCommitment(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	listID, err := id.ParseSignUpListID(chi.URLParam(r, "listID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, ok := h.userIDParam(w, r)
	if !ok {
		return
	}
	h.respond(w, r, "cancel_signup_commitment",
		h.service.CancelSignUpCommitment(r.Context(), eventID, listID, userID))
}

func (h *Handler) HandleAssignBadge(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	req, ok := decode[*AssignBadgeRequest](h, w, r)
	if !ok {
		return
	}
	h.respond(w, r, "assign_badge",
		h.service.AssignBadge(r.Context(), eventID, req.ParsedBadgeID(), req.DurationDays))
}

func (h *Handler) HandleRemoveBadge(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	badgeID, err := id.ParseBadgeID(chi.URLParam(r, "badgeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.respond(w, r, "remove_badge", h.service.RemoveBadge(r.Context(), eventID, badgeID))
}
