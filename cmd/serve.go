package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openlead/leadgen-cli/internal/config"
	"github.com/openlead/leadgen-cli/internal/export"
	"github.com/openlead/leadgen-cli/internal/pipeline"
)

var servePort int

// runState tracks the most recent pipeline run for the status endpoint.
type runState struct {
	mu      sync.Mutex
	orch    *pipeline.Orchestrator
	lastRun *pipeline.RunResult
	running bool
}

func (s *runState) snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]any{"running": s.running}
	if s.orch != nil {
		out["stage"] = s.orch.Stage().String()
	}
	if s.lastRun != nil {
		out["last_run"] = map[string]any{
			"run_id":   s.lastRun.RunID,
			"scraped":  s.lastRun.TotalScraped,
			"exported": len(s.lastRun.Companies),
			"warnings": len(s.lastRun.Warnings),
		}
	}
	return out
}

// newServeMux wires the status-server routes. Split out of the command so
// handler behavior is testable without binding a port.
func newServeMux(ctx context.Context, cfg *config.Config, state *runState) *http.ServeMux {
	mux := http.NewServeMux()

	// Method guards stand in for Go 1.22 "METHOD /path" mux patterns, which
	// the Go 1.21 ServeMux does not support.
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(state.snapshot())
	})

	mux.HandleFunc("/runs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		state.mu.Lock()
		if state.running {
			state.mu.Unlock()
			http.Error(w, `{"error":"a run is already in progress"}`, http.StatusConflict)
			return
		}

		reg, err := loadSources(cfg, "")
		if err != nil {
			state.mu.Unlock()
			http.Error(w, `{"error":"source catalog failed to load"}`, http.StatusInternalServerError)
			zap.L().Error("serve: catalog load failed", zap.Error(err))
			return
		}
		sc, err := buildScorer(cfg)
		if err != nil {
			state.mu.Unlock()
			http.Error(w, `{"error":"scorer configuration invalid"}`, http.StatusInternalServerError)
			return
		}
		orch, err := buildOrchestrator(cfg, cfg.Scoring.MinScore)
		if err != nil {
			state.mu.Unlock()
			http.Error(w, `{"error":"pipeline configuration invalid"}`, http.StatusInternalServerError)
			return
		}
		state.orch = orch
		state.running = true
		state.mu.Unlock()

		// The run outlives the request; progress is visible on /status.
		go func() {
			result, err := orch.Run(ctx, reg.List(), defaultEnrichers(), sc)

			state.mu.Lock()
			state.running = false
			if result != nil {
				state.lastRun = result
			}
			state.mu.Unlock()

			if err != nil {
				zap.L().Error("serve: pipeline run failed", zap.Error(err))
				return
			}
			exp, expErr := export.ForFormat(cfg.Export.Format)
			if expErr == nil {
				expErr = export.ToFile(cfg.Export.Path, exp, result.Companies)
			}
			if expErr != nil {
				zap.L().Error("serve: export failed", zap.Error(expErr))
				return
			}
			zap.L().Info("serve: run complete",
				zap.String("run_id", result.RunID),
				zap.Int("exported", len(result.Companies)),
			)
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
	})

	return mux
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the status server for triggering and observing runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		state := &runState{}
		mux := newServeMux(ctx, cfg, state)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
