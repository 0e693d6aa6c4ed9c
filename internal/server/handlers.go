package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inferloop/tabsynth/internal/export"
	"github.com/inferloop/tabsynth/internal/templates"
	"github.com/inferloop/tabsynth/pkg/errors"
	"github.com/inferloop/tabsynth/pkg/models"
)

type generateRequest struct {
	Schema              *models.Schema      `json:"schema"`
	Template            string              `json:"template"`
	Rows                int                 `json:"rows"`
	Seed                int64               `json:"seed"`
	PrivacyLevel        models.PrivacyLevel `json:"privacy_level"`
	MissingPercentage   float64             `json:"missing_percentage"`
	OutlierPercentage   float64             `json:"outlier_percentage"`
	DuplicatePercentage float64             `json:"duplicate_percentage"`
}

type exportRequest struct {
	Dataset *models.Dataset `json:"dataset"`
	Format  string          `json:"format"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.NewValidationError(errors.CodeInvalidInput, "invalid request body").WithContext("cause", err.Error()))
		return
	}

	schema := req.Schema
	if schema == nil && req.Template != "" {
		schema = templates.Lookup(req.Template)
		if schema == nil {
			s.writeError(w, errors.NewValidationError(errors.CodeInvalidInput, "unknown template: "+req.Template))
			return
		}
	}
	if schema == nil {
		s.writeError(w, errors.NewValidationError(errors.CodeInvalidInput, "schema or template is required"))
		return
	}
	if s.config.MaxRows > 0 && req.Rows > s.config.MaxRows {
		s.writeError(w, errors.NewValidationError(errors.CodeInvalidRowCount, "row count exceeds server limit"))
		return
	}

	if result := s.schemaValidator.ValidateSchema(schema); !result.Valid {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "schema validation failed",
			"issues": result.Errors,
		})
		return
	}

	start := time.Now()
	dataset, err := s.engine.Generate(&models.GenerationRequest{
		Schema:              schema,
		Rows:                req.Rows,
		Seed:                req.Seed,
		PrivacyLevel:        req.PrivacyLevel,
		MissingPercentage:   req.MissingPercentage,
		OutlierPercentage:   req.OutlierPercentage,
		DuplicatePercentage: req.DuplicatePercentage,
	})
	if err != nil {
		s.metrics.GenerationRuns.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}

	s.metrics.GenerationRuns.WithLabelValues("success").Inc()
	s.metrics.RecordsGenerated.Add(float64(len(dataset.Records)))
	s.metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	s.writeJSON(w, http.StatusOK, dataset)
}

func (s *Server) handleValidateSchema(w http.ResponseWriter, r *http.Request) {
	var schema models.Schema
	if err := json.NewDecoder(r.Body).Decode(&schema); err != nil {
		s.writeError(w, errors.NewValidationError(errors.CodeInvalidInput, "invalid request body").WithContext("cause", err.Error()))
		return
	}

	result := s.schemaValidator.ValidateSchema(&schema)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.NewValidationError(errors.CodeInvalidInput, "invalid request body").WithContext("cause", err.Error()))
		return
	}
	if req.Dataset == nil || len(req.Dataset.Records) == 0 {
		s.writeError(w, errors.NewValidationError(errors.CodeEmptyDataset, "dataset with records is required"))
		return
	}
	if req.Format == "" {
		req.Format = export.FormatCSV
	}
	supported := false
	for _, format := range s.exporter.Formats() {
		if format == req.Format {
			supported = true
			break
		}
	}
	if !supported {
		s.writeError(w, errors.NewValidationError(errors.CodeUnsupportedFormat,
			"unsupported export format: "+req.Format))
		return
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(&buf, req.Dataset, req.Format); err != nil {
		s.writeError(w, err)
		return
	}

	switch req.Format {
	case export.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case export.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates.Names(),
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	schema := templates.Lookup(name)
	if schema == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "template not found: " + name})
		return
	}
	s.writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}
	if appErr, ok := err.(*errors.AppError); ok {
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
		resp.Code = appErr.Code
	}
	s.writeJSON(w, status, resp)
}
