package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/giantswarm/microerror"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giantswarm/auth-settings/pkg/authsettings"
	"github.com/giantswarm/auth-settings/pkg/deployment"
	"github.com/giantswarm/auth-settings/pkg/key"
	"github.com/giantswarm/auth-settings/pkg/settings"
)

const (
	AuthPagePath         = "/deployment/auth"
	DeploymentConfigPath = "/api/v2/config/deployment"

	authPageName         = "auth"
	deploymentConfigName = "deployment_config"
)

type Config struct {
	Log    logr.Logger
	Source deployment.Source

	// Renderer defaults to a new settings renderer.
	Renderer *settings.Renderer
	// Registry defaults to a new registry.
	Registry *prometheus.Registry

	Address           string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type Server struct {
	log               logr.Logger
	source            deployment.Source
	renderer          *settings.Renderer
	registry          *prometheus.Registry
	metrics           *metrics
	address           string
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
	handler           http.Handler
}

func New(c Config) (*Server, error) {
	if (logr.Logger{}) == c.Log {
		return nil, microerror.Maskf(invalidConfigError, "log cannot be nil")
	}
	if c.Source == nil {
		return nil, microerror.Maskf(invalidConfigError, "source cannot be nil")
	}
	if c.Address == "" {
		return nil, microerror.Maskf(invalidConfigError, "no address given")
	}
	renderer := c.Renderer
	if renderer == nil {
		var err error
		renderer, err = settings.NewRenderer()
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}
	registry := c.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m, err := newMetrics(registry)
	if err != nil {
		return nil, microerror.Mask(err)
	}
	shutdownTimeout := c.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 5 * time.Second
	}

	s := &Server{
		log:               c.Log,
		source:            c.Source,
		renderer:          renderer,
		registry:          registry,
		metrics:           m,
		address:           c.Address,
		readHeaderTimeout: c.ReadHeaderTimeout,
		shutdownTimeout:   shutdownTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, AuthPagePath, http.StatusFound)
	})
	mux.HandleFunc("GET "+AuthPagePath, s.authPage)
	mux.HandleFunc("GET "+AuthPagePath+"/{group}", s.authGroup)
	mux.HandleFunc("GET "+DeploymentConfigPath, s.deploymentConfig)
	mux.Handle("GET /static/", noCache(http.StripPrefix("/static/", http.FileServer(http.FS(renderer.Static())))))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	s.handler = s.withRequestID(mux)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled. ready is called with the listening
// address once connections are accepted.
func (s *Server) Run(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return microerror.Mask(err)
	}

	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()
	s.log.Info(fmt.Sprintf("Serving auth settings on http://%s%s.", ln.Addr(), AuthPagePath))
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return microerror.Mask(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return microerror.Mask(err)
	}
	s.log.Info("Stopped serving auth settings.")
	return nil
}

func (s *Server) authPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.getAuthPage(r)
	if err != nil {
		s.fail(w, r, authPageName, err)
		return
	}
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		s.fail(w, r, authPageName, err)
		return
	}
	s.writeHTML(w, r, buf.Bytes())
	s.metrics.renders.WithLabelValues(authPageName, statusSuccess).Inc()
}

func (s *Server) authGroup(w http.ResponseWriter, r *http.Request) {
	name := authPageName + "/" + r.PathValue("group")
	page, err := s.getAuthPage(r)
	if err != nil {
		s.fail(w, r, name, err)
		return
	}
	group, ok := page.Group(r.PathValue("group"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := s.renderer.RenderGroup(&buf, group); err != nil {
		s.fail(w, r, name, err)
		return
	}
	s.writeHTML(w, r, buf.Bytes())
	s.metrics.renders.WithLabelValues(name, statusSuccess).Inc()
}

func (s *Server) deploymentConfig(w http.ResponseWriter, r *http.Request) {
	config, err := s.source.DeploymentConfig(r.Context())
	if err != nil {
		s.fail(w, r, deploymentConfigName, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(config.Redacted()); err != nil {
		s.logger(r).Error(err, "Failed to encode deployment config.")
	}
}

func (s *Server) getAuthPage(r *http.Request) (settings.Page, error) {
	config, err := s.source.DeploymentConfig(r.Context())
	if err != nil {
		return settings.Page{}, microerror.Mask(err)
	}
	page := authsettings.Page(config.Redacted())
	for _, g := range page.Groups {
		enabled := 0.0
		if g.Enabled {
			enabled = 1
		}
		s.metrics.providerEnabled.WithLabelValues(g.ID).Set(enabled)
	}
	return page, nil
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		s.logger(r).Error(err, "Failed to write response.")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	s.logger(r).Error(err, fmt.Sprintf("Failed to serve %s.", name))
	s.metrics.renders.WithLabelValues(name, statusError).Inc()
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) withRequestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(key.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(key.RequestIDHeader, id)
		log := s.log.WithValues("request", id, "method", r.Method, "path", r.URL.Path)
		log.V(1).Info("Handling request.")
		h.ServeHTTP(w, r.WithContext(logr.NewContext(r.Context(), log)))
	})
}

func (s *Server) logger(r *http.Request) logr.Logger {
	if log, err := logr.FromContext(r.Context()); err == nil {
		return log
	}
	return s.log
}

func noCache(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, private, max-age=0")
		h.ServeHTTP(w, r)
	})
}
