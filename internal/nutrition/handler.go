package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"
	"github.com/2beens/coachdesk/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=nutrition_test

type planService interface {
	ComputeTargets(ctx context.Context, in AnthropometricInput) MacroTargets
	WeekTemplate(ctx context.Context, in AnthropometricInput) (MacroTargets, []DayTemplate)
	CreateFromTemplate(ctx context.Context, athleteID, name string, in AnthropometricInput) (*Plan, error)
	SavePlan(ctx context.Context, plan Plan) (*Plan, error)
	GetPlan(ctx context.Context, id int) (*Plan, error)
	ListPlans(ctx context.Context, athleteID string) ([]Plan, error)
	DeletePlan(ctx context.Context, id int) error
}

type WeekTemplateResponse struct {
	Targets MacroTargets  `json:"targets"`
	Days    []DayTemplate `json:"days"`
}

type CreateFromTemplateRequest struct {
	AthleteID string              `json:"athleteId"`
	Name      string              `json:"name"`
	Input     AnthropometricInput `json:"input"`
}

type Handler struct {
	service planService
}

func NewHandler(service planService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/nutrition/targets", h.HandleTargets).Methods("POST", "OPTIONS").Name("nutrition-targets")
	r.HandleFunc("/nutrition/week-template", h.HandleWeekTemplate).Methods("POST", "OPTIONS").Name("nutrition-week-template")
	r.HandleFunc("/nutrition/plans", h.HandleSavePlan).Methods("POST", "OPTIONS").Name("nutrition-save-plan")
	r.HandleFunc("/nutrition/plans/template", h.HandleCreateFromTemplate).Methods("POST", "OPTIONS").Name("nutrition-plan-from-template")
	r.HandleFunc("/nutrition/plans/{id:[0-9]+}", h.HandleGetPlan).Methods("GET", "OPTIONS").Name("nutrition-get-plan")
	r.HandleFunc("/nutrition/plans/{id:[0-9]+}", h.HandleDeletePlan).Methods("DELETE", "OPTIONS").Name("nutrition-delete-plan")
	r.HandleFunc("/nutrition/athletes/{athleteId}/plans", h.HandleListPlans).Methods("GET", "OPTIONS").Name("nutrition-list-plans")
}

func (h *Handler) HandleTargets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.targets")
	defer span.End()

	var in AnthropometricInput
	if !decodeJSON(w, r, &in) {
		return
	}
	pkg.WriteJSON(w, h.service.ComputeTargets(ctx, in), http.StatusOK)
}

func (h *Handler) HandleWeekTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.weektemplate")
	defer span.End()

	var in AnthropometricInput
	if !decodeJSON(w, r, &in) {
		return
	}
	targets, days := h.service.WeekTemplate(ctx, in)
	pkg.WriteJSON(w, WeekTemplateResponse{Targets: targets, Days: days}, http.StatusOK)
}

func (h *Handler) HandleCreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.plan.fromtemplate")
	defer span.End()

	var req CreateFromTemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AthleteID == "" {
		http.Error(w, "error, athlete id empty", http.StatusBadRequest)
		return
	}

	plan, err := h.service.CreateFromTemplate(ctx, req.AthleteID, req.Name, req.Input)
	if err != nil {
		writePlanError(w, "create plan from template", err)
		return
	}
	pkg.WriteJSON(w, plan, http.StatusCreated)
}

func (h *Handler) HandleSavePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.plan.save")
	defer span.End()

	var plan Plan
	if !decodeJSON(w, r, &plan) {
		return
	}
	if plan.Source == "" {
		plan.Source = PlanSourceManual
	}

	saved, err := h.service.SavePlan(ctx, plan)
	if err != nil {
		writePlanError(w, "save plan", err)
		return
	}
	pkg.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.plan.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	plan, err := h.service.GetPlan(ctx, id)
	if err != nil {
		writePlanError(w, "get plan", err)
		return
	}
	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (h *Handler) HandleDeletePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.plan.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := h.service.DeletePlan(ctx, id); err != nil {
		writePlanError(w, "delete plan", err)
		return
	}
	pkg.WriteJSON(w, map[string]int{"deletedId": id}, http.StatusOK)
}

func (h *Handler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.plan.list")
	defer span.End()

	athleteID := mux.Vars(r)["athleteId"]
	if athleteID == "" {
		http.Error(w, "error, athlete id empty", http.StatusBadRequest)
		return
	}

	plans, err := h.service.ListPlans(ctx, athleteID)
	if err != nil {
		writePlanError(w, "list plans", err)
		return
	}
	pkg.WriteJSON(w, plans, http.StatusOK)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Tracef("nutrition, unmarshal json params: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func writePlanError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound):
		http.Error(w, "plan not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidPlan):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
