package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/api"
	"github.com/unikiosk/displays/pkg/config"
	"github.com/unikiosk/displays/pkg/display"
	"github.com/unikiosk/displays/pkg/store"
)

var _ Interface = &Service{}

type Interface interface {
	Run(ctx context.Context) error
}

// Displays is the part of display.Client served over HTTP.
type Displays interface {
	Monitors() ([]display.Monitor, error)
	Describe(h display.Handle) (display.Monitor, error)
	QuerySize(h display.Handle) (display.Size, error)
}

type Service struct {
	log      *zap.Logger
	server   *http.Server
	router   *mux.Router
	displays Displays
	store    store.Store
	config   *config.Config
}

func New(
	log *zap.Logger,
	config *config.Config,
	displays Displays,
	store store.Store,
) (*Service, error) {

	s := &Service{
		log:      log,
		displays: displays,
		store:    store,
		config:   config,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr: config.WebServerAddr,
		Handler: handlers.CORS(
			handlers.AllowedHeaders([]string{"Content-Type"}),
			handlers.AllowedMethods([]string{http.MethodGet}),
		)(s.router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server will now listen", zap.String("addr", s.config.WebServerAddr))
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) setupRouter() *mux.Router {
	r := mux.NewRouter()

	sub := r.PathPrefix("/api").Subrouter()
	sub.HandleFunc("/monitors", s.listMonitors).Methods(http.MethodGet)
	sub.HandleFunc("/monitors/{id}", s.getMonitor).Methods(http.MethodGet)
	sub.HandleFunc("/monitors/{id}/size", s.getSize).Methods(http.MethodGet)
	sub.HandleFunc("/snapshot", s.getSnapshot).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, errors.New("not found"))
	})

	return r
}

func (s *Service) listMonitors(w http.ResponseWriter, r *http.Request) {
	monitors, err := s.displays.Monitors()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.MonitorsFromDisplay(monitors))
}

func (s *Service) getMonitor(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handle(w, r)
	if !ok {
		return
	}
	m, err := s.displays.Describe(h)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.MonitorFromDisplay(m))
}

func (s *Service) getSize(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handle(w, r)
	if !ok {
		return
	}
	size, err := s.displays.QuerySize(h)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.SizeResponse{Width: size.Width, Height: size.Height})
}

func (s *Service) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.store.Get()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Service) handle(w http.ResponseWriter, r *http.Request) (display.Handle, bool) {
	h, err := display.ParseHandle(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return h, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, display.ErrQueryFailed):
		return http.StatusNotFound
	case errors.Is(err, display.ErrInvalidRect):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", api.ContentTypeApplicationJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Service) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, api.ErrorResponse{Error: err.Error()})
}
