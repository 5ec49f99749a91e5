package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"OptionAnalyzer/internal/colormap"
	"OptionAnalyzer/internal/grid"
	"OptionAnalyzer/internal/model"
	"OptionAnalyzer/internal/pricing"
	"OptionAnalyzer/internal/recorder"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint of h.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/defaults", h.GetDefaults).Methods("GET")
	api.HandleFunc("/price", h.Price).Methods("POST")
	api.HandleFunc("/analyze", h.Analyze).Methods("POST")
	api.HandleFunc("/calculations", h.SaveCalculation).Methods("POST")
	api.HandleFunc("/calculations", h.ListCalculations).Methods("GET")
	api.HandleFunc("/calculations/{id:[0-9]+}", h.GetCalculation).Methods("GET")
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, grid.ErrInvalidSize),
		errors.Is(err, grid.ErrInvertedRange),
		errors.Is(err, grid.ErrEmptyAxis),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, pricing.ErrComputation), errors.Is(err, colormap.ErrEmptyGrid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, recorder.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, recorder.ErrDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		log.Printf("[INFO] %s %s %d %s", r.Method, r.URL.Path, sr.status, time.Since(start).Round(time.Microsecond))
	})
}
