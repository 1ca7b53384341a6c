package weakkey

import (
	"io"
	"log"
	"runtime"
)

// shardsPerWorker is how many contiguous index ranges each worker gets on
// average. More shards than workers keeps the load even and lets a
// cancellation stop sooner.
const shardsPerWorker = 4

type config struct {
	workers int
	logger  *log.Logger
}

func defaultConfig() config {
	return config{
		workers: runtime.GOMAXPROCS(0),
		logger:  log.New(io.Discard, "", 0),
	}
}

// Option configures the attack.
type Option func(*config)

// WithWorkers sets how many goroutines enumerate candidates. Values below 1
// are treated as 1.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithLogger sets where the attack reports its progress. By default nothing
// is logged.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
