package stations

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Option configures a Station.
type Option func(*Config)

// WithThreadCount sets the pool size, boss included. 0 uses the number of CPUs.
func WithThreadCount(n int) Option {
	return func(c *Config) { c.ThreadCount = n }
}

// WithMaxQueueDepth sets the per-worker backlog cap.
func WithMaxQueueDepth(n int) Option {
	return func(c *Config) { c.MaxQueueDepth = n }
}

// WithChunkSize sets a fixed partition length. 0 partitions evenly.
func WithChunkSize(n int) Option {
	return func(c *Config) { c.ChunkSize = n }
}

// WithAdmissionPolicy sets the boss behaviour when all queues are full.
func WithAdmissionPolicy(p AdmissionPolicy) Option {
	return func(c *Config) { c.AdmissionPolicy = p }
}

// WithVerbosity sets the diagnostic level (0..2).
func WithVerbosity(v int) Option {
	return func(c *Config) { c.Verbosity = v }
}

// WithMaxParkTime sets the longest sleep of an idle worker or waiting boss.
func WithMaxParkTime(d time.Duration) Option {
	return func(c *Config) { c.MaxParkTime = d }
}

// WithSpinCount sets the number of yields before an idle worker parks.
func WithSpinCount(n int) Option {
	return func(c *Config) { c.SpinCount = n }
}

// WithPanicHandler sets a function called with the value of every recovered
// task panic.
func WithPanicHandler(fn func(interface{})) Option {
	return func(c *Config) { c.PanicHandler = fn }
}

// WithWorkerHooks sets worker start and stop callbacks.
func WithWorkerHooks(onStart, onStop func(workerID int)) Option {
	return func(c *Config) {
		c.OnWorkerStart = onStart
		c.OnWorkerStop = onStop
	}
}

// WithPinWorkerThreads locks each worker to an OS thread.
func WithPinWorkerThreads(pin bool) Option {
	return func(c *Config) { c.PinWorkerThreads = pin }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Entry) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetrics attaches prometheus collectors to the station.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) { c.Metrics = m }
}

// WithConfig replaces the whole configuration. Options applied after it
// still take effect.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}
