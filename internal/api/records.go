package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moodmap/moodmap/internal/app/aggregator"
	"github.com/moodmap/moodmap/internal/domain"
)

// ─── Journal API ────────────────────────────────────────────────────────────
// GET    /api/records       — all records, insertion order
// POST   /api/records       — classify a note and record it at a coordinate
// DELETE /api/records/{id}  — delete one record
// GET    /api/summary       — counts, breakdown, most frequent, recent
// POST   /api/analyze       — classify text without recording it
// GET    /api/location      — current location permission
// POST   /api/location      — move the permission to a new state

// maxBodyBytes caps request bodies. Notes are short.
const maxBodyBytes = 64 << 10

// decodeBody decodes a size-capped JSON body into v, writing the error
// response itself when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "invalid_request",
				fmt.Sprintf("request body exceeds %d bytes", maxBodyBytes))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

type createRecordRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Note      string   `json:"note"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type locationRequest struct {
	State string `json:"state"`
}

type summaryResponse struct {
	Total         int                `json:"total"`
	Counts        map[string]int     `json:"counts"`
	Breakdown     []aggregator.Share `json:"breakdown"`
	MostFrequent  domain.Category    `json:"most_frequent"`
	Recent        []domain.Record    `json:"recent"`
	HasEnoughData bool               `json:"has_enough_data"`
}

func newSummaryResponse(s aggregator.Summary) summaryResponse {
	counts := make(map[string]int, len(s.Counts))
	for c, n := range s.Counts {
		counts[c.Label()] = n
	}
	resp := summaryResponse{
		Total:         s.Total,
		Counts:        counts,
		Breakdown:     s.Breakdown(),
		MostFrequent:  s.MostFrequent,
		Recent:        s.Recent,
		HasEnoughData: s.HasEnoughData(),
	}
	if resp.Breakdown == nil {
		resp.Breakdown = []aggregator.Share{}
	}
	if resp.Recent == nil {
		resp.Recent = []domain.Record{}
	}
	return resp
}

// handleListRecords returns every record.
// GET /api/records
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records := s.journal.Records()
	if records == nil {
		records = []domain.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// handleCreateRecord classifies the note and stores a new record.
// POST /api/records
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		s.writeDomainError(w, r, fmt.Errorf("%w: latitude and longitude are required", domain.ErrInvalidCoordinate))
		return
	}

	at := domain.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	rec, err := s.journal.AddRecord(r.Context(), at, req.Note)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleDeleteRecord removes a record by id.
// DELETE /api/records/{id}
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.journal.DeleteRecord(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSummary returns the current mood summary.
// GET /api/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newSummaryResponse(s.journal.Summary()))
}

// handleAnalyze classifies text without recording it.
// POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a := s.journal.Analyze(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"label":     a.Category,
		"intensity": a.Intensity,
		"scored":    a.Scored,
	})
}

// handleGetLocation returns the location permission state.
// GET /api/location
func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"state": string(s.journal.Permission()),
	})
}

// handleSetLocation applies one permission transition.
// POST /api/location
func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	next, err := domain.ParsePermissionState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	state, err := s.journal.SetPermission(r.Context(), next)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"state": string(state),
	})
}
