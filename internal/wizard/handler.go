package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/coachdesk/internal/edge"
	"github.com/2beens/coachdesk/internal/nutrition"
	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=wizard_test

type wizardService interface {
	Open(ctx context.Context, kind Kind, athleteID string) (*View, error)
	Get(ctx context.Context, id string) (*View, error)
	Next(ctx context.Context, id string) (*View, error)
	Back(ctx context.Context, id string) (*View, error)
	GoTo(ctx context.Context, id string, step int) (*View, error)
	EditFields(ctx context.Context, id string, patch json.RawMessage) (*View, error)
	AddFood(ctx context.Context, id string, day int, slot nutrition.MealSlot, food nutrition.FoodItem) (*View, error)
	RemoveFood(ctx context.Context, id string, day int, slot nutrition.MealSlot, index int) (*View, error)
	Submit(ctx context.Context, id string) (*View, error)
	Close(ctx context.Context, id string) error
}

type OpenRequest struct {
	AthleteID string `json:"athleteId"`
}

type AddFoodRequest struct {
	Slot nutrition.MealSlot `json:"slot"`
	Food nutrition.FoodItem `json:"food"`
}

type Handler struct {
	service wizardService
}

func NewHandler(service wizardService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/wizards/{kind}", h.HandleOpen).Methods("POST", "OPTIONS").Name("wizard-open")
	r.HandleFunc("/wizards/session/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("wizard-get")
	r.HandleFunc("/wizards/session/{id}", h.HandleClose).Methods("DELETE", "OPTIONS").Name("wizard-close")
	r.HandleFunc("/wizards/session/{id}/fields", h.HandleEditFields).Methods("PATCH", "OPTIONS").Name("wizard-edit")
	r.HandleFunc("/wizards/session/{id}/next", h.HandleNext).Methods("POST", "OPTIONS").Name("wizard-next")
	r.HandleFunc("/wizards/session/{id}/back", h.HandleBack).Methods("POST", "OPTIONS").Name("wizard-back")
	r.HandleFunc("/wizards/session/{id}/goto/{step:[0-9]+}", h.HandleGoTo).Methods("POST", "OPTIONS").Name("wizard-goto")
	r.HandleFunc("/wizards/session/{id}/submit", h.HandleSubmit).Methods("POST", "OPTIONS").Name("wizard-submit")
	r.HandleFunc("/wizards/session/{id}/days/{day:[0-9]+}/foods", h.HandleAddFood).Methods("POST", "OPTIONS").Name("wizard-add-food")
	r.HandleFunc("/wizards/session/{id}/days/{day:[0-9]+}/foods/{slot}/{index:[0-9]+}", h.HandleRemoveFood).Methods("DELETE", "OPTIONS").Name("wizard-remove-food")
}

func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.open")
	defer span.End()

	kind := Kind(mux.Vars(r)["kind"])
	if !kind.IsValid() {
		http.Error(w, "unknown wizard kind", http.StatusNotFound)
		return
	}

	var req OpenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AthleteID == "" {
		http.Error(w, "error, athlete id empty", http.StatusBadRequest)
		return
	}

	view, err := h.service.Open(ctx, kind, req.AthleteID)
	if err != nil {
		writeError(w, "open wizard", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get wizard", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Close(r.Context(), id); err != nil {
		writeError(w, "close wizard", err)
		return
	}
	pkg.WriteJSON(w, map[string]string{"closedId": id}, http.StatusOK)
}

func (h *Handler) HandleEditFields(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.edit")
	defer span.End()

	var patch json.RawMessage
	if !decodeJSON(w, r, &patch) {
		return
	}

	view, err := h.service.EditFields(ctx, mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, "edit wizard", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Next(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "wizard next", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Back(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "wizard back", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleGoTo(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(mux.Vars(r)["step"])
	if err != nil {
		http.Error(w, "error, step NaN", http.StatusBadRequest)
		return
	}

	view, err := h.service.GoTo(r.Context(), mux.Vars(r)["id"], step)
	if err != nil {
		writeError(w, "wizard goto", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.wizard.submit")
	defer span.End()

	view, err := h.service.Submit(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "wizard submit", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleAddFood(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}

	var req AddFoodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.AddFood(r.Context(), mux.Vars(r)["id"], day, req.Slot, req.Food)
	if err != nil {
		writeError(w, "wizard add food", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleRemoveFood(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	view, err := h.service.RemoveFood(r.Context(), vars["id"], day, nutrition.MealSlot(vars["slot"]), index)
	if err != nil {
		writeError(w, "wizard remove food", err)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Tracef("wizard, unmarshal json params: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, op string, err error) {
	var fnErr *edge.FunctionError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "wizard session not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidPatch),
		errors.Is(err, ErrInvalidLineItem),
		errors.Is(err, ErrWrongKind),
		errors.Is(err, ErrUnknownKind),
		errors.Is(err, nutrition.ErrInvalidPlan):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotLastStep), errors.Is(err, ErrClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrStepInvalid):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &fnErr), errors.Is(err, edge.ErrNotConfigured):
		log.Errorf("%s: %s", op, err)
		http.Error(w, "plan generation unavailable", http.StatusBadGateway)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
