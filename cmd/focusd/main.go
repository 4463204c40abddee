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

	"github.com/attnlabs/focusd/internal/assistant"
	"github.com/attnlabs/focusd/internal/config"
	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/guard"
	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
	"github.com/attnlabs/focusd/internal/insight"
	"github.com/attnlabs/focusd/internal/notify"
	"github.com/attnlabs/focusd/internal/repository"
	"github.com/attnlabs/focusd/internal/rpc"
	"github.com/attnlabs/focusd/internal/sqlite"
	"github.com/attnlabs/focusd/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for the MCP
	// protocol stream.
	logWriter := io.Writer(os.Stdout)
	if cfg.Server.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("FOCUSD_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
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

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store repository.Store = sqlite.NewStore(db)
	if err := store.Seed(ctx); err != nil {
		logger.Error("failed to seed store", "error", err)
		os.Exit(1)
	}

	notifier := notify.NewLogNotifier(logger)
	categorySvc := category.NewService(store, logger)
	engine := timer.NewEngine(store, store, notifier, logger)
	guardSvc := guard.NewService(categorySvc, store, engine, notifier, logger)
	tabs := track.NewTabCache()
	tracker := track.NewTracker(store, guardSvc, tabs, logger)
	reportSvc := report.NewService(store, logger)

	var generator insight.Generator
	if cfg.Insight.Endpoint != "" {
		generator = insight.NewOpenAIGenerator(cfg.Insight.Endpoint, cfg.Insight.APIKey, cfg.Insight.Model)
	}
	insights := insight.NewSummarizer(generator, logger)

	if cfg.Server.Mode == "stdio" {
		runStdioMode(ctx, cancel, logger, assistant.Config{
			Services: assistant.Services{
				Reports:  reportSvc,
				Timer:    engine,
				Insights: insights,
			},
			Logger: logger,
		})
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tracker.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		timer.NewDriver(engine, logger).Run(ctx)
	}()

	handler := rpc.NewHandler(tabs, tracker, engine, categorySvc, reportSvc, insights, store, logger)
	router := transport.NewServer(handler)
	runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)

	// Stop the tracker and timer loops after the HTTP server has drained, so
	// their final flushes see no concurrent requests.
	cancel()
	wg.Wait()
}

func runStdioMode(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, cfg assistant.Config) {
	logger.Info("starting stdio transport")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := assistant.Run(ctx, cfg); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
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

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

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
