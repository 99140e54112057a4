// Package export serves the chart to browsers.
//
// The preview server hosts a page that measures its own container and asks
// for a re-rendered SVG whenever the width settles. Chart endpoints are
// stateless: the page passes the previous tier and width back so hysteresis
// still applies across requests.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// PreviewServer serves the live chart locally.
type PreviewServer struct {
	port    int
	server  *http.Server
	logger  *slog.Logger
	started time.Time

	mu       sync.RWMutex
	projects []model.Project
	dataset  string
	reloads  int
}

// NewPreviewServer creates a preview server for projects on port.
func NewPreviewServer(projects []model.Project, port int) *PreviewServer {
	return &PreviewServer{
		port:     port,
		projects: append([]model.Project(nil), projects...),
		logger:   slog.Default(),
		started:  time.Now(),
	}
}

// SetLogger replaces the server's logger.
func (p *PreviewServer) SetLogger(l *slog.Logger) {
	if l != nil {
		p.logger = l
	}
}

// SetDataset records the dataset path reported by the status endpoint.
func (p *PreviewServer) SetDataset(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dataset = path
}

// SetProjects swaps the served portfolio. Later requests see the new data.
func (p *PreviewServer) SetProjects(projects []model.Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.projects = append([]model.Project(nil), projects...)
	p.reloads++
}

// Projects returns the served portfolio.
func (p *PreviewServer) Projects() []model.Project {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]model.Project(nil), p.projects...)
}

// Handler returns the server's routes wrapped in the no-cache middleware.
func (p *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", p.indexHandler)
	mux.HandleFunc("/chart.svg", p.svgHandler)
	mux.HandleFunc("/chart.png", p.pngHandler)
	mux.HandleFunc("/api/scene", p.sceneHandler)
	mux.HandleFunc("/__preview__/status", p.statusHandler)
	return noCacheMiddleware(mux)
}

// Start starts the preview server and blocks until stopped.
func (p *PreviewServer) Start() error {
	p.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", p.port),
		Handler:           p.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return p.server.ListenAndServe()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (p *PreviewServer) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := p.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		p.logger.Info("shutting down preview server")
		return p.Stop()
	case err := <-errChan:
		return err
	}
}

// StartWithGracefulShutdown starts the server with signal handling for clean shutdown.
func (p *PreviewServer) StartWithGracefulShutdown() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return p.Run(ctx)
}

// Stop gracefully stops the preview server.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

// Port returns the port the server is running on.
func (p *PreviewServer) Port() int {
	return p.port
}

// URL returns the full URL of the preview server.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

type previewStatus struct {
	Status        string  `json:"status"`
	Port          int     `json:"port"`
	Dataset       string  `json:"dataset,omitempty"`
	Projects      int     `json:"projects"`
	Reloads       int     `json:"reloads"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// statusHandler returns the preview server status as JSON.
func (p *PreviewServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	p.mu.RLock()
	st := previewStatus{
		Status:        "running",
		Port:          p.port,
		Dataset:       p.dataset,
		Projects:      len(p.projects),
		Reloads:       p.reloads,
		UptimeSeconds: time.Since(p.started).Round(time.Second).Seconds(),
	}
	p.mu.RUnlock()

	if err := json.NewEncoder(w).Encode(st); err != nil {
		p.logger.Warn("write status", "error", err)
	}
}

// noCacheMiddleware adds headers to prevent browser caching.
func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		// CORS for embedding the chart from a dev page.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", headerTier+", "+headerWidth)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}

// DefaultPreviewPort is the default port for the preview server.
const DefaultPreviewPort = 9000

// PreviewPortRange defines the range of ports to try if default is unavailable.
const (
	PreviewPortRangeStart = 9000
	PreviewPortRangeEnd   = 9100
)

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	// Dataset is the path shown by the status endpoint
	Dataset string

	// Port is the port to serve on (0 for auto-select)
	Port int

	// OpenBrowser determines whether to auto-open a browser
	OpenBrowser bool

	// Quiet suppresses status messages
	Quiet bool
}

// DefaultPreviewConfig returns sensible defaults for preview configuration.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Port:        0, // Auto-select
		OpenBrowser: true,
		Quiet:       false,
	}
}

// NewPreviewServerWithConfig resolves the port and prepares a server. The
// caller runs it with Run.
func NewPreviewServerWithConfig(config PreviewConfig, projects []model.Project) (*PreviewServer, error) {
	port := config.Port
	if port == 0 {
		var err error
		port, err = FindAvailablePort(PreviewPortRangeStart, PreviewPortRangeEnd)
		if err != nil {
			return nil, fmt.Errorf("could not find available port: %w", err)
		}
	}
	server := NewPreviewServer(projects, port)
	server.SetDataset(config.Dataset)
	return server, nil
}

// RunPreview serves until ctx is cancelled, optionally opening a browser.
func RunPreview(ctx context.Context, server *PreviewServer, config PreviewConfig) error {
	if config.OpenBrowser {
		go func() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
			}
			url := server.URL()
			if err := OpenInBrowser(url); err != nil && !config.Quiet {
				fmt.Printf("Could not open browser: %v\n", err)
				fmt.Printf("Open %s in your browser\n", url)
			}
		}()
	}

	if !config.Quiet {
		fmt.Printf("\nPreview server running at %s\n", server.URL())
		if config.Dataset != "" {
			fmt.Printf("Serving: %s\n", config.Dataset)
		}
		fmt.Print("\nPress Ctrl+C to stop\n\n")
	}
	return server.Run(ctx)
}
