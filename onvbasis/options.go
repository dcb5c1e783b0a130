package onvbasis

import (
	"github.com/lelemmen/gqcp"
)

type options struct {
	workers int
	logger  *gqcp.Logger
}

// Option configures an evaluation call.
type Option func(*options)

// WithWorkers sets the number of workers used to evaluate an operator in
// parallel. The address range [0, dim) is split into contiguous partitions;
// each worker runs the identical traversal with its own ONV cursor, and the
// partitioned results are merged after all workers finish. Values below 2
// select the serial path.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger used by evaluation calls. The default discards
// all output.
func WithLogger(logger *gqcp.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

var noopLogger = gqcp.NoopLogger()

func resolveOptions(optFns ...Option) options {
	o := options{
		workers: 1,
		logger:  noopLogger,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}
