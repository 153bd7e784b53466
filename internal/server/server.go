package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bstardust/geophoto/internal/config"
	"github.com/bstardust/geophoto/internal/logger"
	"github.com/bstardust/geophoto/pkg/common"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server hosts the upload page and the coordinate-update API.
type Server struct {
	cfg  *config.Config
	tmpl *template.Template
}

// New creates a server from the given configuration.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:  cfg,
		tmpl: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.Methods(http.MethodGet).Path("/").Handler(pageHandler{s, s.index})
	r.Methods(http.MethodPost).Path("/").Handler(pageHandler{s, s.upload})
	r.Methods(http.MethodPost).Path("/update-gps").Handler(apiHandler(s.updateGPS))
	r.Methods(http.MethodGet).Path("/health").Handler(apiHandler(s.health))

	return r
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Handler:      s.Router(),
		Addr:         s.cfg.Server.Addr,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening on %s", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

// requestLogger tags every request with an ID and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("%s %s request_id=%s duration=%s", r.Method, r.URL.Path, id, time.Since(start).Round(time.Millisecond))
	})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	var verr *common.ValidationError
	var derr *common.DecodeError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &derr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// userMessage strips the error-kind prefix for user-facing output.
func userMessage(err error) string {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var derr *common.DecodeError
	if errors.As(err, &derr) {
		return derr.Message
	}
	var eerr *common.EncodeError
	if errors.As(err, &eerr) {
		return eerr.Message
	}
	return "An unexpected error occurred. Please try again."
}

// apiHandler adapts an error-returning handler to JSON error responses.
type apiHandler func(http.ResponseWriter, *http.Request) error

func (fn apiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := fn(w, r); err != nil {
		logger.Error("request failed: %s %s: %v", r.Method, r.URL.Path, err)
		respond(w, statusFor(err), map[string]string{"error": userMessage(err)})
	}
}

// pageHandler adapts an error-returning handler to the HTML error panel.
type pageHandler struct {
	s  *Server
	fn func(http.ResponseWriter, *http.Request) error
}

func (h pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.fn(w, r); err != nil {
		logger.Error("request failed: %s %s: %v", r.Method, r.URL.Path, err)
		if rerr := h.s.render(w, statusFor(err), &pageData{Error: userMessage(err)}); rerr != nil {
			http.Error(w, userMessage(err), statusFor(err))
		}
	}
}
