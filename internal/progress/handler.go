package progress

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	AddMeasurement(ctx context.Context, m Measurement) (*Measurement, error)
	GetMeasurement(ctx context.Context, id int) (*Measurement, error)
	ListMeasurements(ctx context.Context, athleteID string) ([]Measurement, error)
	DeleteMeasurement(ctx context.Context, id int) error
	MetricChange(ctx context.Context, athleteID string, metric Metric) (*DashboardEntry, error)
	Dashboard(ctx context.Context, athleteID string) (*Dashboard, error)
}

type DeleteMeasurementResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service progressService
}

func NewHandler(service progressService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/progress/metrics", h.HandleMetrics).Methods("GET", "OPTIONS").Name("progress-metrics")
	r.HandleFunc("/progress/measurements", h.HandleAdd).Methods("POST", "OPTIONS").Name("progress-add-measurement")
	r.HandleFunc("/progress/measurements/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("progress-get-measurement")
	r.HandleFunc("/progress/measurements/{id:[0-9]+}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("progress-delete-measurement")
	r.HandleFunc("/progress/athletes/{athleteId}/measurements", h.HandleList).Methods("GET", "OPTIONS").Name("progress-list-measurements")
	r.HandleFunc("/progress/athletes/{athleteId}/dashboard", h.HandleDashboard).Methods("GET", "OPTIONS").Name("progress-dashboard")
	r.HandleFunc("/progress/athletes/{athleteId}/change/{metric}", h.HandleMetricChange).Methods("GET", "OPTIONS").Name("progress-metric-change")
}

func (h *Handler) HandleMetrics(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, Metrics(), http.StatusOK)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var m Measurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		log.Tracef("new measurement, unmarshal json params: %s", err)
		http.Error(w, "add measurement failed", http.StatusBadRequest)
		return
	}

	added, err := h.service.AddMeasurement(ctx, m)
	if err != nil {
		writeError(w, "add measurement", err)
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	m, err := h.service.GetMeasurement(ctx, id)
	if err != nil {
		writeError(w, "get measurement", err)
		return
	}
	pkg.WriteJSON(w, m, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteMeasurement(ctx, id); err != nil {
		writeError(w, "delete measurement", err)
		return
	}
	pkg.WriteJSON(w, DeleteMeasurementResponse{DeletedID: id}, http.StatusOK)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
	defer span.End()

	series, err := h.service.ListMeasurements(ctx, mux.Vars(r)["athleteId"])
	if err != nil {
		writeError(w, "list measurements", err)
		return
	}
	if series == nil {
		series = []Measurement{}
	}
	pkg.WriteJSON(w, series, http.StatusOK)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.dashboard")
	defer span.End()

	dashboard, err := h.service.Dashboard(ctx, mux.Vars(r)["athleteId"])
	if err != nil {
		writeError(w, "dashboard", err)
		return
	}
	pkg.WriteJSON(w, dashboard, http.StatusOK)
}

func (h *Handler) HandleMetricChange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.change")
	defer span.End()

	vars := mux.Vars(r)
	metric, ok := ResolveMetric(vars["metric"])
	if !ok {
		http.Error(w, "unknown metric", http.StatusBadRequest)
		return
	}

	entry, err := h.service.MetricChange(ctx, vars["athleteId"], metric)
	if err != nil {
		writeError(w, "metric change", err)
		return
	}
	pkg.WriteJSON(w, entry, http.StatusOK)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrMeasurementNotFound):
		http.Error(w, "measurement not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidMeasurement):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
