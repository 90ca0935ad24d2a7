package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/stats"
)

const maxBodyBytes = 64 << 10

type createMoodRequest struct {
	Comment string      `json:"comment"`
	Mood    models.Mood `json:"mood"`
	Date    string      `json:"date,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	Persist string `json:"persist_error,omitempty"`
}

type dailyResponse struct {
	Reference  models.Date             `json:"reference"`
	WindowDays int                     `json:"window_days"`
	Daily      []models.DailyAggregate `json:"daily"`
}

type bucketsResponse struct {
	Reference    models.Date         `json:"reference"`
	WindowDays   int                 `json:"window_days"`
	BucketWindow models.WindowStart  `json:"bucket_window"`
	Buckets      models.BucketCounts `json:"buckets"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Entries: s.journal.Len()}
	if s.persister != nil {
		if err := s.persister.Err(); err != nil {
			resp.Status = "degraded"
			resp.Persist = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.journal.Snapshot())
}

func (s *Server) handleCreateMood(w http.ResponseWriter, r *http.Request) {
	var req createMoodRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		writeError(w, http.StatusBadRequest, "comment is required")
		return
	}
	if !req.Mood.Valid() {
		writeError(w, http.StatusBadRequest, "mood must be bad, normal or good")
		return
	}
	date := s.today()
	if req.Date != "" {
		d, err := models.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}

	entry := s.journal.Add(req.Comment, date, req.Mood)
	logger.Info("Mood recorded", "id", entry.ID, "mood", entry.Mood, "date", entry.Date)
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteMood(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	if !s.journal.Delete(id) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("entry %d not found", id))
		return
	}
	logger.Info("Mood deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// windowParams reads ref, window and bucket from the query string, falling
// back to today and the stored settings.
func (s *Server) windowParams(r *http.Request) (stats.Window, error) {
	q := r.URL.Query()
	w := stats.Window{
		Reference: s.today(),
		Days:      s.settings.DefaultWindowDays,
		Start:     s.settings.BucketWindow,
	}
	if v := q.Get("ref"); v != "" {
		ref, err := models.ParseDate(v)
		if err != nil {
			return w, err
		}
		w.Reference = ref
	}
	if v := q.Get("window"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return w, fmt.Errorf("window must be an integer: %q", v)
		}
		w.Days = days
	}
	if err := stats.CheckRequestedWindow(w.Days); err != nil {
		return w, err
	}
	if v := q.Get("bucket"); v != "" {
		start, err := models.ParseWindowStart(v)
		if err != nil {
			return w, err
		}
		w.Start = start
	}
	if w.Start == "" {
		w.Start = stats.StartInclusive
	}
	return w, nil
}

func (s *Server) windowOrError(w http.ResponseWriter, r *http.Request) (stats.Window, bool) {
	win, err := s.windowParams(r)
	if err != nil {
		logger.Debug("Rejected stats query", "query", r.URL.RawQuery, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return win, false
	}
	return win, true
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	win, ok := s.windowOrError(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dailyResponse{
		Reference:  win.Reference,
		WindowDays: win.Days,
		Daily:      stats.AggregateDaily(s.journal.Snapshot(), win.Reference, win.Days),
	})
}

func (s *Server) handleBuckets(w http.ResponseWriter, r *http.Request) {
	win, ok := s.windowOrError(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, bucketsResponse{
		Reference:    win.Reference,
		WindowDays:   win.Days,
		BucketWindow: win.Start,
		Buckets:      stats.BucketCountsIn(s.journal.Snapshot(), win),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	win, ok := s.windowOrError(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(s.journal.Snapshot(), win.Reference, win.Days, win.Start))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Encode(s.journal.Snapshot()))
}
