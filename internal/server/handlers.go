package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"OptionAnalyzer/internal/analyzer"
	"OptionAnalyzer/internal/model"
	"OptionAnalyzer/internal/pricing"
	"OptionAnalyzer/internal/report"

	"github.com/gorilla/mux"
)

var errBadRequest = errors.New("bad request")

const maxBodyBytes = 1 << 20

// Handler serves the pricing API. It holds no per-request state.
type Handler struct {
	Service  *analyzer.Service
	Defaults model.Scenario
}

// NewHandler creates a Handler.
func NewHandler(svc *analyzer.Service, defaults model.Scenario) *Handler {
	return &Handler{Service: svc, Defaults: defaults}
}

type priceRequest struct {
	Kind *model.OptionKind `json:"kind"`
	model.PricingInputs
}

type priceResponse struct {
	Kind   model.OptionKind    `json:"kind"`
	Price  float64             `json:"price"`
	Inputs model.PricingInputs `json:"inputs"`
}

type analysisResponse struct {
	*analyzer.Result
	Parameters  string              `json:"parameters"`
	CallHeatmap *report.HeatmapView `json:"call_heatmap"`
	PutHeatmap  *report.HeatmapView `json:"put_heatmap"`
}

type saveResponse struct {
	CalculationID int64             `json:"calculation_id,omitempty"`
	OutputCount   int               `json:"output_count"`
	Message       string            `json:"message"`
	Error         string            `json:"error,omitempty"`
	Analysis      *analysisResponse `json:"analysis"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return nil
}

// decodeScenario overlays the request body on the configured defaults.
func (h *Handler) decodeScenario(w http.ResponseWriter, r *http.Request) (model.Scenario, error) {
	sc := h.Defaults
	if r.ContentLength == 0 {
		return sc, nil
	}
	if err := decode(w, r, &sc); err != nil {
		return model.Scenario{}, err
	}
	return sc, nil
}

func buildAnalysis(res *analyzer.Result) (*analysisResponse, error) {
	callView, err := report.BuildHeatmapView(res, model.Call)
	if err != nil {
		return nil, err
	}
	putView, err := report.BuildHeatmapView(res, model.Put)
	if err != nil {
		return nil, err
	}
	return &analysisResponse{
		Result:      res,
		Parameters:  report.FormatParameters(res.Scenario),
		CallHeatmap: callView,
		PutHeatmap:  putView,
	}, nil
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDefaults returns the scenario the input form starts from.
func (h *Handler) GetDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Defaults)
}

// Price evaluates a single option.
func (h *Handler) Price(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Kind == nil {
		writeError(w, fmt.Errorf("%w: kind is required", model.ErrInvalidInput))
		return
	}
	if err := req.PricingInputs.Validate(); err != nil {
		writeError(w, err)
		return
	}
	in := req.PricingInputs
	price, err := pricing.Price(*req.Kind, in.Spot, in.Strike, in.TimeYears, in.Rate, in.Volatility)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{Kind: *req.Kind, Price: price, Inputs: in})
}

// Analyze computes point prices, both heatmaps and their colour scales.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	sc, err := h.decodeScenario(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := analyzer.Analyze(sc)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := buildAnalysis(res)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SaveCalculation analyzes the scenario and persists it. When the save fails the
// computed analysis is still returned alongside the error.
func (h *Handler) SaveCalculation(w http.ResponseWriter, r *http.Request) {
	sc, err := h.decodeScenario(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := analyzer.Analyze(sc)
	if err != nil {
		writeError(w, err)
		return
	}
	analysis, err := buildAnalysis(res)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.Service.Save(r.Context(), res)
	if err != nil {
		log.Printf("[ERROR] save calculation: %v", err)
		writeJSON(w, statusFor(err), saveResponse{
			Message:  report.FormatSaveError(err),
			Error:    err.Error(),
			Analysis: analysis,
		})
		return
	}
	writeJSON(w, http.StatusCreated, saveResponse{
		CalculationID: rec.ID,
		OutputCount:   len(rec.Outputs),
		Message:       report.FormatSaveConfirmation(rec),
		Analysis:      analysis,
	})
}

// ListCalculations returns recent saves, newest first.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		limit = n
	}
	list, err := h.Service.Recorder.ListCalculations(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []model.CalculationSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetCalculation returns one saved calculation with all of its outputs.
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid id", errBadRequest))
		return
	}
	rec, err := h.Service.Recorder.LoadCalculation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
