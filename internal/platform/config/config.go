package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures evaluator wiring settings. The rule thresholds are fixed
// policy and deliberately absent.
type Config struct {
	LogLevel   string
	LogFormat  string
	FraudCheck bool
	Breaker    Breaker
}

// Breaker configures the circuit breaker around the frequent flyer service.
type Breaker struct {
	// FailureThreshold of 0 disables the breaker.
	FailureThreshold int
	SuccessThreshold int
	Cooldown         time.Duration
}

// Enabled reports whether the validator should be wrapped in a breaker.
func (b Breaker) Enabled() bool {
	return b.FailureThreshold > 0
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  "json",
		FraudCheck: true,
		Breaker: Breaker{
			FailureThreshold: 5,
			SuccessThreshold: 2,
			Cooldown:         30 * time.Second,
		},
	}
}

// FromEnv builds a Config from environment variables. Missing or malformed
// values keep their defaults.
func FromEnv() Config {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) Config {
	cfg := Default()

	if v, ok := lookup("CARDEVAL_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("CARDEVAL_LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup("CARDEVAL_FRAUD_CHECK"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FraudCheck = b
		}
	}
	if v, ok := lookup("CARDEVAL_BREAKER_FAILURES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Breaker.FailureThreshold = n
		}
	}
	if v, ok := lookup("CARDEVAL_BREAKER_SUCCESSES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Breaker.SuccessThreshold = n
		}
	}
	if v, ok := lookup("CARDEVAL_BREAKER_COOLDOWN"); ok {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.Breaker.Cooldown = d
		}
	}

	return cfg
}
