package api

import (
	"github.com/okian/exoplanets/pkg/logger"
	"golang.org/x/time/rate"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORS replaces the default permissive CORS policy.
func WithCORS(c CORSConfig) Option {
	return func(s *Server) {
		s.cors = c
	}
}

// WithRateLimit enables a global token bucket of perSecond requests with
// the given burst. A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}
