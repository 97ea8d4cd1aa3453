package api

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/ukaji3/datasc-go/internal/session"
	"github.com/ukaji3/datasc-go/pkg/datasc"
	"github.com/ukaji3/datasc-go/pkg/datasc/charts"
	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"github.com/ukaji3/datasc-go/pkg/datasc/summary"
)

// UploadFailedMessage is the error shown for any unreadable upload.
const UploadFailedMessage = "Could not read Excel / CSV file. Please check the file format."

// Session transport.
const (
	SessionCookie = "datasc_session"
	SessionHeader = "X-Session-ID"
)

// Server serves uploads, summaries and charts over HTTP.
type Server struct {
	store     *session.Store
	opts      datasc.Options
	maxUpload int64
}

// NewServer creates a server backed by store. Uploads larger than
// maxUploadBytes are rejected.
func NewServer(store *session.Store, opts datasc.Options, maxUploadBytes int64) *Server {
	return &Server{
		store:     store,
		opts:      opts,
		maxUpload: maxUploadBytes,
	}
}

// Handler returns the routed handler with the default middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/upload", s.handleUpload)
	mux.HandleFunc("GET /v1/summary", s.handleSummary)
	mux.HandleFunc("GET /v1/preview", s.handlePreview)
	mux.HandleFunc("GET /v1/columns", s.handleColumns)
	mux.HandleFunc("GET /v1/chart", s.handleChart)
	mux.HandleFunc("GET /healthz", handleHealth)
	return DefaultMiddleware()(mux)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "datasc"})
}

// sessionID reads the session id from the cookie or the header.
func sessionID(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(SessionHeader)
}

// handleUpload loads the multipart "file" field and replaces the session's
// table. A failed upload leaves the previous table in place.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large", err.Error(), requestID)
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required", err.Error(), requestID)
		return
	}
	defer file.Close()

	t, err := datasc.Load(header.Filename, file, s.opts)
	if err != nil {
		log.Printf("api: upload %q failed (request_id=%s): %v", header.Filename, requestID, err)
		if errors.Is(err, datasc.ErrUnparseableUpload) {
			writeError(w, http.StatusUnprocessableEntity, UploadFailedMessage, errors.Unwrap(err).Error(), requestID)
			return
		}
		writeError(w, http.StatusInternalServerError, "upload failed", err.Error(), requestID)
		return
	}

	report, err := datasc.Explore(t, selection(r.Form["columns"]), s.opts)
	if err != nil {
		writeError(w, statusFor(err), err.Error(), "", requestID)
		return
	}

	id := sessionID(r)
	if _, err := s.store.Get(id); err != nil {
		id = session.NewID()
	}
	s.store.Put(id, t)

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	w.Header().Set(SessionHeader, id)
	writeJSON(w, http.StatusOK, report)
}

// table returns the session's table, writing a 404 when there is none.
func (s *Server) table(w http.ResponseWriter, r *http.Request) (*models.Table, bool) {
	sess, err := s.store.Get(sessionID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, "no table loaded; upload a file first", "", GetRequestID(r.Context()))
		return nil, false
	}
	return sess.Table, true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary.Summarize(t))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}

	p, err := datasc.PreviewColumns(t, selection(r.URL.Query()["columns"]), s.opts)
	if err != nil {
		writeError(w, statusFor(err), err.Error(), "", GetRequestID(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary.Structure(t))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())
	t, ok := s.table(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	kind, err := models.ParseChartKind(q.Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "", requestID)
		return
	}
	req := models.ChartRequest{Kind: kind, Axes: models.AxisChoice{X: q.Get("x"), Y: q.Get("y")}}

	var buf bytes.Buffer
	fig, err := datasc.Chart(t, req, &buf, s.opts)
	if err != nil {
		log.Printf("api: %s chart failed (request_id=%s): %v", kind, requestID, err)
		writeError(w, statusFor(err), "chart failed", err.Error(), requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Chart-Title", fig.Labels.Title)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// selection collects repeated column parameters, ignoring blank ones.
func selection(values []string) models.ColumnSelection {
	var sel models.ColumnSelection
	for _, name := range values {
		if strings.TrimSpace(name) != "" {
			sel = append(sel, name)
		}
	}
	return sel
}

// statusFor maps caller mistakes to 400 and everything else to 500.
func statusFor(err error) int {
	if errors.Is(err, datasc.ErrColumnNotFound) || errors.Is(err, charts.ErrNotNumeric) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
