package core

import (
	"time"

	"go.uber.org/zap"
)

// DefaultDateLayout is the order timestamp format, day first.
const DefaultDateLayout = "02-01-2006 15:04:05"

// Option configures the sales and resupply services.
type Option func(*serviceOptions)

type serviceOptions struct {
	now        func() time.Time
	dateLayout string
	logger     *zap.Logger
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{now: time.Now, dateLayout: DefaultDateLayout, logger: zap.NewNop()}
}

func applyOptions(opts []Option) serviceOptions {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now when stamping order dates.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDateLayout sets the time layout used for order dates.
func WithDateLayout(layout string) Option {
	return func(o *serviceOptions) {
		if layout != "" {
			o.dateLayout = layout
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func (o serviceOptions) stamp() string {
	return o.now().Format(o.dateLayout)
}
