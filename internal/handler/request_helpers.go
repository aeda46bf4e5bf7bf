package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// URL parameter names
const (
	ParamPlayer = "player"
	ParamPlotID = "plotID"
	ParamCell   = "cell"
	QueryLimit  = "limit"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written.
//
// Example usage:
//
//	var req ClickRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Click"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(LogMsgInvalidRequest, "action", actionName, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// playerParam reads and checksums the {player} path parameter.
// On failure the response has already been written.
func playerParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	player, err := chain.NormalizeAddress(chi.URLParam(r, ParamPlayer))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlayerParam)
		return "", false
	}
	return player, true
}

// plotIDParam reads the {plotID} path parameter
func plotIDParam(w http.ResponseWriter, r *http.Request) (uint16, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, ParamPlotID), 10, 16)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlotParam)
		return 0, false
	}
	return uint16(id), true
}

// cellParam reads the {cell} path parameter
func cellParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	cell, err := strconv.Atoi(chi.URLParam(r, ParamCell))
	if err != nil || cell < 0 || cell >= domain.CellsPerPlot {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCellParam)
		return 0, false
	}
	return cell, true
}

// GetOptionalQueryParam retrieves an optional query parameter, falling back
// to defaultValue when it is absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// intQueryParam parses an optional non-negative integer query parameter
func intQueryParam(r *http.Request, paramName string, defaultValue int) (int, error) {
	raw := GetOptionalQueryParam(r, paramName, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s=%q", domain.ErrInvalidInput, paramName, raw)
	}
	return v, nil
}
