package main

import (
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/middleware"
)

// limiters keeps public contact traffic and admin login attempts on
// separate counters.
type limiters struct {
	contact *middleware.RateLimiter
	login   *middleware.RateLimiter
}

func newLimiters(cfg *config.Config) limiters {
	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	return limiters{
		contact: middleware.NewRateLimiter(cfg.RateLimitContact, window),
		login:   middleware.NewRateLimiter(cfg.RateLimitLogin, window),
	}
}
