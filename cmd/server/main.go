package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/rpggio/propcatalog/internal/config"
	"github.com/rpggio/propcatalog/internal/domain/activity"
	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/mcp"
	"github.com/rpggio/propcatalog/internal/present"
	"github.com/rpggio/propcatalog/internal/source"
	"github.com/rpggio/propcatalog/internal/sqlite"
	"github.com/rpggio/propcatalog/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := openDB(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	src, err := buildSource(ctx, cfg, db, logger)
	if err != nil {
		logger.Error("failed to prepare catalog source", "source", cfg.Catalog.Source, "error", err)
		os.Exit(1)
	}

	history := activity.NewService(sqlite.NewActivityRepository(db), logger)
	catalogSvc := catalog.NewService(src, logger)
	catalogSvc.SetRecorder(history)
	go catalogSvc.Run(ctx, cfg.Catalog.RefreshInterval)

	formatter := present.NewFormatter(cfg.Catalog.Locale, cfg.Catalog.CurrencySymbol)
	carouselCfg := cfg.Carousel.Carousel()

	mcpServer := mcp.NewServer(mcp.Config{
		Catalog:       catalogSvc,
		Carousel:      carouselCfg,
		TrendingSize:  cfg.Catalog.TrendingSize,
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
		Formatter:     formatter,
		Logger:        logger,
		History:       history,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		runStdioMode(ctx, logger, mcpServer)
		return
	}

	router := transport.NewServer(transport.Config{
		Catalog:       catalogSvc,
		Carousel:      carouselCfg,
		TrendingSize:  cfg.Catalog.TrendingSize,
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
		Formatter:     formatter,
		Logger:        logger,
		History:       history,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(r *http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		),
	})
	runHTTPMode(ctx, logger, router, cfg.Server.Host, cfg.Server.Port)
}

// openDB opens the SQLite database and applies migrations. It backs the
// sqlite catalog source and the refresh history for every source.
func openDB(path string) (*sqlite.DB, error) {
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// buildSource returns the configured catalog source. For the sqlite source a
// configured seed file is imported into db first.
func buildSource(ctx context.Context, cfg config.Config, db *sqlite.DB, logger *slog.Logger) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return source.NewFile(cfg.Catalog.SeedFile), nil
	case config.SourceRemote:
		return source.NewRemote(cfg.Catalog.RemoteURL, cfg.Catalog.RemoteTimeout, logger), nil
	}

	repo := sqlite.NewProjectRepository(db)
	if cfg.Catalog.SeedFile != "" {
		seed, err := source.LoadFile(cfg.Catalog.SeedFile)
		if err != nil {
			return nil, err
		}
		if _, err := project.NewService(repo, logger).Import(ctx, seed); err != nil {
			return nil, fmt.Errorf("import seed: %w", err)
		}
	}
	return repo, nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(ctx, logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, server *http.Server) {
	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}
	if size <= keepLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
