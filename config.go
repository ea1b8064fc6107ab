package stations

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tahsin716/stations/partition"
)

// AdmissionPolicy defines what the boss (the submitting goroutine) does when
// every worker queue is at MaxQueueDepth.
type AdmissionPolicy int

const (
	// EagerBoss executes the task in the caller's goroutine
	EagerBoss AdmissionPolicy = iota
	// PatientBoss waits, with bounded backoff, until some queue drops below
	// the limit. The boss never executes work itself in this mode.
	PatientBoss
	// OrganizedBoss always enqueues on the least loaded queue, ignoring
	// MaxQueueDepth
	OrganizedBoss
)

// String returns the policy name.
func (a AdmissionPolicy) String() string {
	switch a {
	case EagerBoss:
		return "eager"
	case PatientBoss:
		return "patient"
	case OrganizedBoss:
		return "organized"
	default:
		return "unknown"
	}
}

// ParseAdmissionPolicy maps a policy name back to its value.
func ParseAdmissionPolicy(s string) (AdmissionPolicy, error) {
	switch s {
	case "eager", "hard-working":
		return EagerBoss, nil
	case "patient":
		return PatientBoss, nil
	case "organized":
		return OrganizedBoss, nil
	default:
		return 0, errInvalidConfig("unknown admission policy " + s)
	}
}

// Config contains all configuration options for a station
type Config struct {
	// ThreadCount is the pool size including the boss.
	// If 0, defaults to runtime.NumCPU() (minimum 1).
	ThreadCount int

	// MaxQueueDepth caps the number of jobs per worker queue, counting the
	// one that is running. Must be >= 1.
	MaxQueueDepth int

	// ChunkSize is the number of items per partition.
	// 0 partitions the input evenly across the threads.
	ChunkSize int

	// AdmissionPolicy decides what happens when every queue is full
	AdmissionPolicy AdmissionPolicy

	// Verbosity: 0 silent, 1 warnings, 2 warnings and statistics
	Verbosity int

	// MaxParkTime bounds how long an idle worker or a waiting boss sleeps
	// before polling again
	MaxParkTime time.Duration

	// SpinCount is the number of yields before parking
	SpinCount int

	// PanicHandler is called with the recovered value when a task panics
	PanicHandler func(interface{})

	// OnWorkerStart is called when a worker starts
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops
	OnWorkerStop func(workerID int)

	// PinWorkerThreads locks every worker goroutine to its own OS thread
	// for the lifetime of the station
	PinWorkerThreads bool

	// Logger receives diagnostics, gated by Verbosity
	Logger *log.Entry

	// Metrics, if set, is updated on every submission and execution
	Metrics *Metrics
}

// DefaultConfig returns a Config with the defaults of the library.
// The thread count is one more than the number of CPUs so the boss can wait
// while every CPU has a worker.
func DefaultConfig() Config {
	return Config{
		ThreadCount:     runtime.NumCPU() + 1,
		MaxQueueDepth:   1,
		ChunkSize:       0,
		AdmissionPolicy: PatientBoss,
		Verbosity:       0,
		MaxParkTime:     time.Millisecond,
		SpinCount:       30,
	}
}

// BuildConfig applies opts over DefaultConfig, validates and normalizes the
// result.
func BuildConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

// validate checks the configuration and returns an error if invalid
func (c *Config) validate() error {
	if c.ThreadCount < 0 {
		return errInvalidConfig("ThreadCount must be >= 0")
	}

	if c.MaxQueueDepth < 1 {
		return errInvalidConfig("MaxQueueDepth must be >= 1")
	}

	if c.ChunkSize < 0 {
		return errInvalidConfig("ChunkSize must be >= 0")
	}

	if c.AdmissionPolicy < EagerBoss || c.AdmissionPolicy > OrganizedBoss {
		return errInvalidConfig("unknown AdmissionPolicy")
	}

	if c.Verbosity < 0 || c.Verbosity > 2 {
		return errInvalidConfig("Verbosity must be in [0, 2]")
	}

	if c.MaxParkTime <= 0 {
		return errInvalidConfig("MaxParkTime must be > 0")
	}

	if c.SpinCount < 0 {
		return errInvalidConfig("SpinCount must be >= 0")
	}

	return nil
}

func (c *Config) normalize() {
	if c.ThreadCount == 0 {
		c.ThreadCount = max(1, runtime.NumCPU())
	}
	if c.Logger == nil {
		c.Logger = log.NewEntry(log.StandardLogger())
	}
	c.Logger = c.Logger.WithField("component", "station")
}

// Parts returns the number of partitions an even split produces. The boss
// takes no work under PatientBoss, so it gets no partition.
func (c Config) Parts() int {
	if c.ThreadCount > 1 && c.AdmissionPolicy == PatientBoss {
		return c.ThreadCount - 1
	}
	return max(1, c.ThreadCount)
}

// Partition returns the boundaries of the partitions of a range of n items.
// An empty range yields {0}: no partitions.
func (c Config) Partition(n int) ([]int, error) {
	if n == 0 {
		return []int{0}, nil
	}
	if c.ChunkSize > 0 {
		return partition.Chunked(n, c.ChunkSize)
	}
	return partition.Even(n, c.Parts())
}
