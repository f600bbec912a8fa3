package postgres

import "time"

// Option configures a Postgres store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the source of created_at and updated_at values.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// timestamp truncates to the microsecond precision of timestamptz so that a
// value written back to the entity equals the value later read from the row.
func timestamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}
