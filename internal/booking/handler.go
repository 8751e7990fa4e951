package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=booking_test

type bookingService interface {
	SaveSection(ctx context.Context, section Section) error
	ListSections(ctx context.Context) ([]Section, error)
	AssignSection(ctx context.Context, userID, sectionID string, validUntil time.Time) (*AssignResult, error)
	DeassignSection(ctx context.Context, userID string) (*AssignResult, error)
	Upcoming(ctx context.Context, userID string) ([]Row, error)
	Preview(userID, sectionID string, start, end time.Time, rawSlots map[string][]string) ([]Row, error)
	RenewAll(ctx context.Context) (*RenewalReport, error)
}

// AssignRequest assigns the section, or removes it when SectionID is null.
type AssignRequest struct {
	SectionID  *string `json:"sectionId"`
	ValidUntil string  `json:"validUntil,omitempty"`
}

type ExpandRequest struct {
	UserID    string              `json:"userId"`
	SectionID string              `json:"sectionId"`
	Start     string              `json:"start"`
	End       string              `json:"end"`
	Slots     map[string][]string `json:"slots"`
}

type Handler struct {
	service bookingService
}

func NewHandler(service bookingService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/booking/sections", h.HandleListSections).Methods("GET", "OPTIONS").Name("booking-list-sections")
	r.HandleFunc("/booking/sections/{id}", h.HandleSaveSection).Methods("PUT", "OPTIONS").Name("booking-save-section")
	r.HandleFunc("/booking/users/{userId}/section", h.HandleAssign).Methods("PUT", "OPTIONS").Name("booking-assign")
	r.HandleFunc("/booking/users/{userId}", h.HandleUpcoming).Methods("GET", "OPTIONS").Name("booking-upcoming")
	r.HandleFunc("/booking/expand", h.HandleExpand).Methods("POST", "OPTIONS").Name("booking-expand")
	r.HandleFunc("/booking/renew", h.HandleRenew).Methods("POST", "OPTIONS").Name("booking-renew")
}

func (h *Handler) HandleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.ListSections(r.Context())
	if err != nil {
		writeError(w, "list sections", err)
		return
	}
	if sections == nil {
		sections = []Section{}
	}
	pkg.WriteJSON(w, sections, http.StatusOK)
}

func (h *Handler) HandleSaveSection(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.booking.section.save")
	defer span.End()

	var section Section
	if !decodeJSON(w, r, &section) {
		return
	}
	section.ID = mux.Vars(r)["id"]

	if err := h.service.SaveSection(ctx, section); err != nil {
		writeError(w, "save section", err)
		return
	}
	pkg.WriteJSON(w, section, http.StatusOK)
}

func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.booking.assign")
	defer span.End()

	var req AssignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID := mux.Vars(r)["userId"]

	if req.SectionID == nil {
		result, err := h.service.DeassignSection(ctx, userID)
		if err != nil {
			writeError(w, "deassign section", err)
			return
		}
		pkg.WriteJSON(w, result, http.StatusOK)
		return
	}

	var validUntil time.Time
	if req.ValidUntil != "" {
		var err error
		if validUntil, err = time.Parse(time.DateOnly, req.ValidUntil); err != nil {
			http.Error(w, "invalid validUntil date", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.AssignSection(ctx, userID, *req.SectionID, validUntil)
	if err != nil {
		writeError(w, "assign section", err)
		return
	}
	pkg.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.booking.upcoming")
	defer span.End()

	rows, err := h.service.Upcoming(ctx, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, "upcoming bookings", err)
		return
	}
	if rows == nil {
		rows = []Row{}
	}
	pkg.WriteJSON(w, rows, http.StatusOK)
}

func (h *Handler) HandleExpand(w http.ResponseWriter, r *http.Request) {
	var req ExpandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, err := time.Parse(time.DateOnly, req.Start)
	if err != nil {
		http.Error(w, "invalid start date", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.DateOnly, req.End)
	if err != nil {
		http.Error(w, "invalid end date", http.StatusBadRequest)
		return
	}

	rows, err := h.service.Preview(req.UserID, req.SectionID, start, end, req.Slots)
	if err != nil {
		writeError(w, "expand bookings", err)
		return
	}
	pkg.WriteJSON(w, rows, http.StatusOK)
}

func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.RenewAll(r.Context())
	if err != nil {
		writeError(w, "renew bookings", err)
		return
	}
	pkg.WriteJSON(w, report, http.StatusOK)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Tracef("booking, unmarshal json params: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrSectionNotFound), errors.Is(err, ErrAssignmentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidSlotMap), errors.Is(err, ErrInvalidAssignment), errors.Is(err, ErrPreviewWindowTooLarge):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
