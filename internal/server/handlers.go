package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LumenBytes/vidlens-cli/internal/analysis"
	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type summaryResponse struct {
	Dataset    string               `json:"dataset"`
	Rows       int                  `json:"rows"`
	Clean      dataset.CleanSummary `json:"clean"`
	Engagement analysis.Engagement  `json:"engagement"`
}

type groupsResponse struct {
	Dimension analysis.Dimension         `json:"dimension"`
	Field     analysis.Field             `json:"field"`
	Results   []analysis.AggregateResult `json:"results"`
}

type correlationResponse struct {
	X analysis.Field `json:"x"`
	Y analysis.Field `json:"y"`
	R float64        `json:"r"`
}

type videoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Channel     string  `json:"channel"`
	Category    string  `json:"category"`
	PublishedAt string  `json:"publishedAt"`
	Views       int64   `json:"views"`
	Likes       int64   `json:"likes"`
	Dislikes    int64   `json:"dislikes"`
	Comments    int64   `json:"comments"`
	DurationMin float64 `json:"durationMin,omitempty"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	resp := summaryResponse{
		Dataset:    s.dataset,
		Rows:       s.rows,
		Clean:      s.clean,
		Engagement: analysis.Engage(s.records),
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dim, err := analysis.ParseDimension(valueOr(query.Get("by"), string(analysis.DimCategory)))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	field, err := analysis.ParseField(valueOr(query.Get("metric"), string(analysis.FieldViews)))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	results, err := analysis.GroupBy(s.records, dim, field)
	if err != nil {
		s.logger.Printf("group by error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to aggregate")
		return
	}
	s.respondJSON(w, http.StatusOK, groupsResponse{Dimension: dim, Field: field, Results: results})
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	x, err := analysis.ParseField(valueOr(query.Get("x"), string(analysis.FieldViews)))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	y, err := analysis.ParseField(valueOr(query.Get("y"), string(analysis.FieldLikes)))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	coeff, err := analysis.Correlate(s.records, x, y)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientData) {
			s.respondError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err.Error())
			return
		}
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, correlationResponse{X: x, Y: y, R: coeff})
}

func (s *Server) handleTopVideos(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	field, err := analysis.ParseField(valueOr(query.Get("metric"), string(analysis.FieldViews)))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	n := s.cfg.TopN
	if raw := strings.TrimSpace(query.Get("n")); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "n must be a positive integer")
			return
		}
	}

	top := analysis.TopVideos(s.records, field, n)
	items := make([]videoResponse, 0, len(top))
	for _, v := range top {
		items = append(items, videoResponse{
			ID:          v.ID,
			Title:       v.Title,
			Channel:     v.Channel,
			Category:    v.Category,
			PublishedAt: v.PublishedAt.Format(time.RFC3339),
			Views:       v.Views,
			Likes:       v.Likes,
			Dislikes:    v.Dislikes,
			Comments:    v.Comments,
			DurationMin: v.DurationMin,
		})
	}
	s.respondJSON(w, http.StatusOK, items)
}

// handleIndex serves a minimal page that pulls the JSON endpoints. All chart
// rendering and layout live client-side, outside this service's concern.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Code: code, Message: message})
}

func valueOr(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>vidlens dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; max-width: 60rem; }
pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>vidlens dashboard</h1>
<h2>Summary</h2>
<pre id="summary">loading…</pre>
<h2>Groups (category ~ views)</h2>
<pre id="groups">loading…</pre>
<h2>Correlation (views ~ likes)</h2>
<pre id="corr">loading…</pre>
<script>
const show = (id, p) => fetch(p)
  .then(r => r.json())
  .then(d => document.getElementById(id).textContent = JSON.stringify(d, null, 2))
  .catch(e => document.getElementById(id).textContent = String(e));
show('summary', '/api/summary');
show('groups', '/api/groups?by=category&metric=views');
show('corr', '/api/correlation?x=views&y=likes');
</script>
</body>
</html>
`
