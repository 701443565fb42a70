package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpx "github.com/stampede-dev/stampede/internal/http"
	"github.com/stampede-dev/stampede/internal/loadshape"
)

// EngineStats is the shape of the engine's /stats/requests payload,
// reduced to the fields the exporter mirrors.
type EngineStats struct {
	UserCount               int                `json:"user_count"`
	TotalRPS                float64            `json:"total_rps"`
	TotalFailPerSec         float64            `json:"total_fail_per_sec"`
	ResponseTimePercentiles map[string]float64 `json:"response_time_percentiles"`
}

// Exporter polls the engine's stats endpoint on an interval and mirrors
// the values into Prometheus gauges.
type Exporter struct {
	engineURL    string
	pollInterval time.Duration
	metrics      *Metrics
	client       *httpx.Client
	schedule     *loadshape.Ticker
	logger       zerolog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithPollInterval overrides the default 5s poll interval.
func WithPollInterval(interval time.Duration) ExporterOption {
	return func(e *Exporter) {
		e.pollInterval = interval
	}
}

// WithExporterLogger sets the exporter's logger.
func WithExporterLogger(logger zerolog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithSchedule attaches a load-profile ticker. On every poll the
// exporter samples it and publishes the scheduled user count next to
// the engine's actual count, so a dashboard can overlay the two.
func WithSchedule(schedule *loadshape.Ticker) ExporterOption {
	return func(e *Exporter) {
		e.schedule = schedule
	}
}

// NewExporter creates an exporter that polls engineURL and updates the
// given metrics. Each poll is also counted in the request counters via
// the metrics observer.
func NewExporter(engineURL string, metrics *Metrics, options ...ExporterOption) *Exporter {
	e := &Exporter{
		engineURL:    engineURL,
		pollInterval: 5 * time.Second,
		metrics:      metrics,
		logger:       zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	e.client = httpx.NewClient(
		httpx.WithBaseURL(engineURL),
		httpx.WithTimeout(10*time.Second),
		httpx.WithLogger(e.logger),
		httpx.WithObserver(metrics.Observer()),
	)
	return e
}

// Run polls until the context is canceled. A failed poll is counted and
// logged but does not stop the loop.
func (e *Exporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		if err := e.pollOnce(ctx); err != nil {
			e.metrics.PollFailures.Inc()
			e.logger.Warn().Err(err).Str("engine", e.engineURL).Msg("stats poll failed")
		}
		e.updateSchedule()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (e *Exporter) pollOnce(ctx context.Context) error {
	stats, err := e.fetchStats(ctx)
	if err != nil {
		return err
	}
	e.update(stats)
	return nil
}

func (e *Exporter) fetchStats(ctx context.Context) (*EngineStats, error) {
	req := httpx.NewRequest(http.MethodGet, "/stats/requests").WithName("engine-stats")

	resp, err := e.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("stats endpoint returned %s", resp.Status)
	}

	stats := &EngineStats{}
	if err := resp.GetBodyAsJSON(stats); err != nil {
		return nil, fmt.Errorf("decoding stats: %w", err)
	}
	return stats, nil
}

// updateSchedule publishes the scheduled user count for the current
// instant, or 0 once the profile has run out.
func (e *Exporter) updateSchedule() {
	if e.schedule == nil {
		return
	}
	users, _, done := e.schedule.Tick()
	if done {
		e.metrics.ScheduledUsers.Set(0)
		return
	}
	e.metrics.ScheduledUsers.Set(float64(users))
}

func (e *Exporter) update(stats *EngineStats) {
	e.metrics.Users.Set(float64(stats.UserCount))
	e.metrics.RequestsPerSecond.Set(stats.TotalRPS)
	e.metrics.FailuresPerSecond.Set(stats.TotalFailPerSec)

	for _, key := range percentileKeys {
		e.metrics.ResponseTimePercentile.WithLabelValues(key).Set(stats.ResponseTimePercentiles[key])
	}
}

// Handler returns the /metrics handler for the given registry. Pass nil
// to serve the default registry.
func Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve runs the exporter and a /metrics HTTP server until the context
// is canceled.
func (e *Exporter) Serve(ctx context.Context, listen string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))

	server := &http.Server{Addr: listen, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	e.logger.Info().Str("listen", listen).Msg("exporter serving metrics")

	pollErr := e.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	default:
	}

	if pollErr == context.Canceled {
		return nil
	}
	return pollErr
}
