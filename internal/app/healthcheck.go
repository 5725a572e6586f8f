package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/specialistvlad/rampcon/internal/ctxlog"
	"github.com/specialistvlad/rampcon/internal/report"
)

// healthHandler reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// modelsHandler lists the registered color models and their inputs.
func (a *App) modelsHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Models endpoint hit.", "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteModels(w, report.FormatJSON, a.registry.Models()); err != nil {
		a.logger.Error("Failed to write models", "error", err)
	}
}

// palettesHandler lists the names of the prepared palettes.
func (a *App) palettesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.PaletteNames()); err != nil {
		a.logger.Error("Failed to write palette names", "error", err)
	}
}

// paletteHandler renders one palette, with an optional count override.
func (a *App) paletteHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	logger := a.logger.With("palette", name, "remote_addr", r.RemoteAddr)
	logger.Debug("Palette endpoint hit.")

	e, ok := a.byName[name]
	if !ok {
		http.Error(w, fmt.Sprintf("palette '%s' not found", name), http.StatusNotFound)
		return
	}

	count := e.def.Count
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid count '%s': must be a non-negative integer", raw), http.StatusBadRequest)
			return
		}
		if limit := a.config.maxHTTPCount(); n > uint64(limit) {
			http.Error(w, fmt.Sprintf("count %d exceeds the maximum of %d", n, limit), http.StatusBadRequest)
			return
		}
		count = uint32(n)
	}

	res, err := a.render(ctxlog.WithLogger(r.Context(), a.logger), e, count)
	if err != nil {
		logger.Error("Palette render failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := report.Write(w, report.FormatJSON, name, res); err != nil {
		logger.Error("Failed to write palette", "error", err)
	}
}

// Handler returns the HTTP surface of the app.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /models", a.modelsHandler)
	mux.HandleFunc("GET /palettes", a.palettesHandler)
	mux.HandleFunc("GET /palettes/{name}", a.paletteHandler)
	return mux
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.HTTPPort)
	a.httpServer = &http.Server{
		Addr:        addr,
		Handler:     a.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", "address", fmt.Sprintf("http://localhost%s", addr))
		// ListenAndServe will return an error on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return a.shutdown()
}

func (a *App) shutdown() error {
	a.logger.Debug("Closing HTTP server...")
	if a.httpServer == nil {
		a.logger.Debug("HTTP server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("HTTP server shut down gracefully.")
	return nil
}
