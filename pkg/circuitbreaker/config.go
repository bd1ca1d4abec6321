package circuitbreaker

import "time"

type Config struct {
	Name    string
	Enabled bool

	// MaxRequests bounds the probes let through while half-open.
	MaxRequests uint32

	// Interval clears the failure counts while closed. Zero never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens
	// the breaker.
	FailureThreshold uint32
}
