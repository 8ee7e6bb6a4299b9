// Package probe checks a running exoplanet catalog service from the
// outside: listing order, first-match lookups, the soft not-found marker,
// the model reports and mission validation.
package probe

import (
	"context"
	"time"

	"github.com/okian/exoplanets/pkg/logger"
	"github.com/rotisserie/eris"
)

// Run executes every check against config.BaseURL. The report is always
// returned; the error wraps ErrChecksFailed when any check failed.
func Run(ctx context.Context, config *Config) (Report, error) {
	cfg := withDefaults(config)
	log := logger.Named("probe")

	report := Report{StartTime: time.Now()}
	log.Info(ctx, "starting catalog probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Int("requests", cfg.Requests),
		logger.String("timeout", cfg.Timeout.String()))

	p := &prober{client: newHTTPClient(cfg.BaseURL, cfg.Timeout), config: cfg}
	for _, c := range checks() {
		if err := ctx.Err(); err != nil {
			return report, eris.Wrap(err, "probe interrupted")
		}

		start := time.Now()
		err := c.run(ctx, p)
		res := Result{Name: c.name, Passed: err == nil, Duration: time.Since(start)}
		if err != nil {
			res.Error = err.Error()
			log.Error(ctx, "check failed", logger.String("check", c.name), logger.Error(err))
		} else if cfg.Verbose {
			log.Info(ctx, "check passed", logger.String("check", c.name),
				logger.String("duration", res.Duration.String()))
		}
		report.Results = append(report.Results, res)
	}
	report.Duration = time.Since(report.StartTime)

	failed := len(report.Failed())
	log.Info(ctx, "probe finished",
		logger.Int("checks", len(report.Results)),
		logger.Int("failed", failed),
		logger.String("duration", report.Duration.String()))

	if failed > 0 {
		return report, eris.Wrapf(ErrChecksFailed, "%d of %d", failed, len(report.Results))
	}
	return report, nil
}

func withDefaults(config *Config) *Config {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Requests < 0 {
		cfg.Requests = 0
	}
	return &cfg
}
