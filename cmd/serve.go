package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/playbook-cli/internal/config"
	"github.com/sells-group/playbook-cli/internal/export"
	"github.com/sells-group/playbook-cli/internal/model"
	"github.com/sells-group/playbook-cli/internal/playbook"
	"github.com/sells-group/playbook-cli/internal/store"
)

var servePort int

// maxRequestBytes bounds a single POST /playbooks body.
const maxRequestBytes = 1 << 20

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local HTTP server for the browser popup",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate(config.ModeServe); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		log := commandLogger(cmd)

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
		srv := &http.Server{
			Addr:              addr,
			Handler:           newRouter(st, playbook.New(), cfg.Cache.TTL(), cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("server shutdown", zap.Error(err))
			}
		}()

		log.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// playbookServer holds the dependencies of the HTTP handlers.
type playbookServer struct {
	store store.Store
	gen   *playbook.Generator
	ttl   time.Duration
}

// newRouter builds the HTTP routes. A nil store disables the cache routes'
// backing storage and they answer 503.
func newRouter(st store.Store, gen *playbook.Generator, ttl time.Duration, origins []string) http.Handler {
	if gen == nil {
		gen = playbook.New()
	}
	if ttl <= 0 {
		ttl = store.DefaultTTL
	}
	s := &playbookServer{store: st, gen: gen, ttl: ttl}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/scenarios", s.handleScenarios)
	r.Route("/playbooks", func(r chi.Router) {
		r.Post("/", s.handleGenerate)
		r.Get("/last", s.handleLast)
		r.Get("/last/sections/{section}", s.handleLastSection)
	})
	return r
}

type scenarioInfo struct {
	Key   model.Scenario `json:"key"`
	Label string         `json:"label"`
	Tone  model.Tone     `json:"tone"`
}

func (s *playbookServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			zap.L().Warn("health: store ping failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *playbookServer) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	all := model.AllScenarios()
	out := make([]scenarioInfo, len(all))
	for i, sc := range all {
		out[i] = scenarioInfo{Key: sc, Label: sc.Label(), Tone: playbook.Lookup(sc).CommunicationTone}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *playbookServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var cc model.CustomerContext
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&cc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cc.ApplyDefaults()

	pb, err := s.gen.GenerateStrict(cc)
	if err != nil {
		if eris.Is(err, playbook.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	if s.store != nil {
		if _, err := s.store.SaveLast(r.Context(), pb); err != nil {
			zap.L().Warn("could not cache playbook",
				zap.String("customer", pb.CustomerName),
				zap.Error(err),
			)
		}
	}
	writeJSON(w, http.StatusOK, pb)
}

func (s *playbookServer) handleLast(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loadLast(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *playbookServer) handleLastSection(w http.ResponseWriter, r *http.Request) {
	section, err := export.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	entry, ok := s.loadLast(w, r)
	if !ok {
		return
	}
	text, err := export.RenderSection(entry.Playbook, section)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, text) //nolint:errcheck
}

// loadLast writes the error response itself and reports false when nothing
// can be served.
func (s *playbookServer) loadLast(w http.ResponseWriter, r *http.Request) (*store.CachedPlaybook, bool) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "cache unavailable")
		return nil, false
	}
	entry, err := s.store.LoadLast(r.Context(), s.ttl)
	if err != nil {
		if eris.Is(err, store.ErrNoPlaybook) {
			writeError(w, http.StatusNotFound, "no recent playbook")
			return nil, false
		}
		zap.L().Error("load last playbook", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cache read failed")
		return nil, false
	}
	return entry, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
