package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/iwvelando/loan-calc/internal/calculator"
	"github.com/iwvelando/loan-calc/internal/storage"
	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/format"
	"github.com/iwvelando/loan-calc/pkg/loans"
	"github.com/iwvelando/loan-calc/pkg/output"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	store       storage.Store
	formatter   *format.Formatter
	generator   *loans.AmortizationScheduleGenerator
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// calculator API. A nil store keeps state in memory; a nil formatter uses
// format.DefaultFormatter.
func NewHandler(logger *zap.Logger, store storage.Store, formatter *format.Formatter, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if formatter == nil {
		formatter = format.DefaultFormatter()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		store:       store,
		formatter:   formatter,
		generator:   loans.NewAmortizationScheduleGenerator(logger),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	// Calculation for query parameters or a JSON body
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Month-by-month schedule as JSON or CSV
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Persisted slider values
	mux.HandleFunc("/api/state", h.handleState)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type calculateResponse struct {
	Inputs   calculator.Inputs  `json:"inputs"`
	Result   loans.Result       `json:"result"`
	Display  calculator.Display `json:"display"`
	Warnings []string           `json:"warnings,omitempty"`
}

type scheduleResponse struct {
	Inputs   calculator.Inputs `json:"inputs"`
	Result   loans.Result      `json:"result"`
	Payments []loans.Payment   `json:"payments"`
	Warnings []string          `json:"warnings,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	var (
		in  calculator.Inputs
		err error
	)
	switch r.Method {
	case http.MethodGet:
		in, err = inputsFromQuery(r.URL.Query())
	case http.MethodPost:
		in, err = h.inputsFromBody(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		h.respondInputError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, h.calculate(in))
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"

	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	outputFormat := strings.ToLower(strings.TrimSpace(query.Get("format")))
	if outputFormat == "" {
		outputFormat = "json"
	}
	if outputFormat != "json" && outputFormat != constants.OutputFormatCSV {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("expected format of json or csv, got %s", outputFormat), op)
		return
	}

	raw, err := inputsFromQuery(query)
	if err != nil {
		h.respondInputError(w, err, op)
		return
	}
	in := raw.Normalize()

	payments, err := h.generator.GenerateSchedule(in.LoanConfig())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to generate schedule: %v", err), op)
		return
	}

	if outputFormat == constants.OutputFormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
		w.WriteHeader(http.StatusOK)
		if err := output.CsvFormat(w, payments); err != nil {
			h.logger.Error("failed to write CSV response",
				zap.String("op", op),
				zap.Error(err),
			)
		}
		return
	}

	if payments == nil {
		payments = []loans.Payment{}
	}
	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Inputs:   in,
		Result:   in.Result(),
		Payments: payments,
		Warnings: raw.Warnings(),
	})
}

func (h *handler) handleState(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleState"

	switch r.Method {
	case http.MethodGet:
		in := calculator.Load(r.Context(), h.store, constants.AppKey, h.logger)
		h.writeJSON(w, http.StatusOK, h.calculate(in))
	case http.MethodPut:
		raw, err := h.inputsFromBody(w, r)
		if err != nil {
			h.respondInputError(w, err, op)
			return
		}
		resp := h.calculate(raw)
		if err := calculator.Save(r.Context(), h.store, constants.AppKey, resp.Inputs); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		h.logger.Debug("state saved",
			zap.String("op", op),
			zap.Float64("loanAmount", resp.Inputs.LoanAmount),
			zap.Float64("interestRate", resp.Inputs.InterestRate),
			zap.Float64("loanPeriodYears", resp.Inputs.LoanPeriodYears),
			zap.Float64("termPrice", resp.Inputs.TermPrice),
		)
		h.writeJSON(w, http.StatusOK, resp)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// calculate normalizes raw inputs and renders their result.
func (h *handler) calculate(raw calculator.Inputs) calculateResponse {
	in := raw.Normalize()
	result := in.Result()
	return calculateResponse{
		Inputs:   in,
		Result:   result,
		Display:  calculator.FormatResult(result, h.formatter),
		Warnings: raw.Warnings(),
	}
}

// errBodyTooLarge marks requests rejected by the body size limit.
var errBodyTooLarge = errors.New("request body too large")

// inputsFromBody decodes a JSON Inputs object onto the defaults, so absent
// fields keep their default values.
func (h *handler) inputsFromBody(w http.ResponseWriter, r *http.Request) (calculator.Inputs, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	in := calculator.DefaultInputs()
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return in, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, h.maxBodySize)
		}
		if errors.Is(err, io.EOF) {
			return in, errors.New("empty request body")
		}
		return in, fmt.Errorf("failed to decode inputs: %w", err)
	}
	return in, nil
}

// inputsFromQuery reads the four inputs from query parameters. Missing
// parameters keep their defaults.
func inputsFromQuery(query url.Values) (calculator.Inputs, error) {
	in := calculator.DefaultInputs()
	fields := []struct {
		name  string
		value *float64
	}{
		{"loanAmount", &in.LoanAmount},
		{"interestRate", &in.InterestRate},
		{"loanPeriodYears", &in.LoanPeriodYears},
		{"termPrice", &in.TermPrice},
	}
	for _, field := range fields {
		raw := strings.TrimSpace(query.Get(field.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("invalid %s %q: expected a number", field.name, raw)
		}
		*field.value = v
	}
	return in, nil
}

func (h *handler) respondInputError(w http.ResponseWriter, err error, op string) {
	status := http.StatusBadRequest
	if errors.Is(err, errBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	h.respondErrorWithOp(w, status, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
