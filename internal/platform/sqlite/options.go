package sqlite

import "time"

// Option configures a SQLite store.
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

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// timestamp returns the current time at storage precision.
func timestamp(now func() time.Time) time.Time {
	return fromMillis(toMillis(now()))
}
