package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sqlsift/sqlsift"
	"github.com/sqlsift/sqlsift/internal/build"
)

func serveCommand() *cobra.Command {
	s := &siftServe{
		listenAddr: "127.0.0.1:8080",
		logLevel:   "info",
	}

	cmd := &cobra.Command{
		Use:          "serve [flags]",
		Short:        "Run an HTTP service that sanitizes SQL statements",
		Long:         `The serve command exposes the sanitizer over HTTP for sidecar use: POST raw SQL to /sanitize and receive the de-identified statement. Prometheus metrics are served on /metrics and a health check on /-/healthy.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return s.Run()
		},
	}

	cmd.Flags().StringVar(&s.listenAddr, "server.listen-addr", s.listenAddr, "Address to listen for HTTP traffic on.")
	cmd.Flags().StringVar(&s.logLevel, "log.level", s.logLevel, "Log level: debug, info, warn, error.")

	return cmd
}

type siftServe struct {
	listenAddr string
	logLevel   string
}

func (s *siftServe) Run() error {
	filter, err := parseLevel(s.logLevel)
	if err != nil {
		return err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, filter)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	reg := prometheus.NewRegistry()
	reg.MustRegister(build.NewCollector("sqlsift"))

	srv := newServer(s.listenAddr, newHandler(logger, reg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "server listening", "addr", s.listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("running server: %w", err)
	case <-ctx.Done():
	}

	level.Info(logger).Log("msg", "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

const shutdownTimeout = 10 * time.Second

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newHandler builds the service routes, registering the request metrics on
// reg.
func newHandler(logger log.Logger, reg *prometheus.Registry) http.Handler {
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sqlsift_sanitize_requests_total",
		Help: "Total number of sanitize requests handled, by status code.",
	}, []string{"code"})
	requestDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sqlsift_sanitize_duration_seconds",
		Help:    "Time taken to sanitize a request body.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(requestsTotal, requestDuration)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/-/healthy", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "OK")
	})
	mux.HandleFunc("/sanitize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			requestsTotal.WithLabelValues("405").Inc()
			http.Error(w, "only POST is supported", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestsTotal.WithLabelValues("400").Inc()
			level.Error(logger).Log("msg", "failed to read request body", "err", err)
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		start := time.Now()
		sanitized := sqlsift.SanitizeText(string(body))
		requestDuration.Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues("200").Inc()

		level.Debug(logger).Log("msg", "sanitized statement", "bytes_in", len(body), "bytes_out", len(sanitized))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(sanitized))
	})
	return mux
}

func parseLevel(s string) (level.Option, error) {
	switch s {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, fmt.Errorf("unknown log level %q", s)
}
