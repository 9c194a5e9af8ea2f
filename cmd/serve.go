package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AshokDevireddy/persistency/internal/analysis"
	"github.com/AshokDevireddy/persistency/internal/carrier"
	"github.com/AshokDevireddy/persistency/internal/config"
	"github.com/AshokDevireddy/persistency/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		overrides, err := carrier.LoadOverrides(cfg.Analysis.OverridesPath)
		if err != nil {
			return err
		}
		engine, err := analysis.NewEngine(
			analysis.WithOverrides(overrides),
			analysis.WithConcurrency(cfg.Analysis.Concurrency),
		)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(engine, cfg),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the HTTP API. Split out so tests can exercise it
// without binding a port.
func newRouter(engine *analysis.Engine, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/carriers", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"carriers": carrier.Keys()})
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, req *http.Request) {
		maxBytes := int64(cfg.Server.MaxUploadMB) << 20
		req.Body = http.MaxBytesReader(w, req.Body, maxBytes)
		if err := req.ParseMultipartForm(maxBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}

		var files []model.CarrierFile
		for key, headers := range req.MultipartForm.File {
			if _, err := carrier.Get(key); err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown carrier %q", key))
				return
			}
			for _, fh := range headers {
				f, err := fh.Open()
				if err != nil {
					writeError(w, http.StatusBadRequest, fmt.Sprintf("open upload %s", fh.Filename))
					return
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload %s", fh.Filename))
					return
				}
				files = append(files, model.CarrierFile{
					CarrierKey: key,
					Name:       fh.Filename,
					Data:       data,
				})
			}
		}

		agentScope := model.AgentScope{Mode: model.ScopeUnrestricted}
		if agents := req.FormValue("agents"); agents != "" {
			agentScope = model.AgentScope{
				Mode:                model.ScopeScoped,
				AllowedAgentNumbers: strings.Split(agents, ","),
			}
		}

		resp, err := engine.Analyze(req.Context(), files, agentScope)
		if err != nil {
			if eris.Is(err, analysis.ErrNoInput) {
				writeError(w, http.StatusBadRequest, "no carrier files supplied")
				return
			}
			zap.L().Error("analyze request failed", zap.Error(err))
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
