// Package config loads the YAML configuration of the stations command.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/tahsin716/stations"
)

const (
	defaultLogFormat = "text"
	defaultNamespace = "stations"
)

type Config struct {
	Station    *StationConfig `yaml:"station,omitempty" json:"station,omitempty"`
	Log        *LogConfig     `yaml:"log,omitempty" json:"log,omitempty"`
	Prometheus *PromConfig    `yaml:"prometheus,omitempty" json:"prometheus,omitempty"`
}

type StationConfig struct {
	Threads          int           `yaml:"threads,omitempty" json:"threads,omitempty"`
	MaxQueueDepth    int           `yaml:"max-queue-depth,omitempty" json:"max-queue-depth,omitempty"`
	ChunkSize        int           `yaml:"chunk-size,omitempty" json:"chunk-size,omitempty"`
	Admission        string        `yaml:"admission,omitempty" json:"admission,omitempty"`
	Verbosity        int           `yaml:"verbosity,omitempty" json:"verbosity,omitempty"`
	MaxParkTime      time.Duration `yaml:"max-park-time,omitempty" json:"max-park-time,omitempty"`
	SpinCount        int           `yaml:"spin-count,omitempty" json:"spin-count,omitempty"`
	PinWorkerThreads bool          `yaml:"pin-worker-threads,omitempty" json:"pin-worker-threads,omitempty"`
}

type LogConfig struct {
	Debug  bool   `yaml:"debug,omitempty" json:"debug,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

type PromConfig struct {
	Address   string `yaml:"address,omitempty" json:"address,omitempty"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
}

// New reads the configuration file at file, if any, and fills in defaults.
func New(file string) (*Config, error) {
	c := new(Config)
	if file != "" {
		p, err := homedir.Expand(file)
		if err != nil {
			return nil, err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}

		err = yaml.Unmarshal(b, c)
		if err != nil {
			return nil, err
		}
	}
	err := c.validateSetDefaults()
	return c, err
}

func (c *Config) validateSetDefaults() error {
	if c.Station == nil {
		c.Station = &StationConfig{}
	}
	if err := c.Station.validateSetDefaults(); err != nil {
		return err
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if err := c.Log.validateSetDefaults(); err != nil {
		return err
	}
	if c.Prometheus == nil {
		c.Prometheus = &PromConfig{}
	}
	if c.Prometheus.Namespace == "" {
		c.Prometheus.Namespace = defaultNamespace
	}
	return nil
}

func (s *StationConfig) validateSetDefaults() error {
	def := stations.DefaultConfig()
	if s.Threads < 0 {
		return fmt.Errorf("station threads must be >= 0, got %d", s.Threads)
	}
	if s.MaxQueueDepth <= 0 {
		s.MaxQueueDepth = def.MaxQueueDepth
	}
	if s.ChunkSize < 0 {
		return fmt.Errorf("station chunk-size must be >= 0, got %d", s.ChunkSize)
	}
	if s.Verbosity < 0 || s.Verbosity > 2 {
		return fmt.Errorf("station verbosity must be 0, 1 or 2, got %d", s.Verbosity)
	}
	if s.Admission == "" {
		s.Admission = def.AdmissionPolicy.String()
	}
	if _, err := stations.ParseAdmissionPolicy(s.Admission); err != nil {
		return err
	}
	if s.MaxParkTime <= 0 {
		s.MaxParkTime = def.MaxParkTime
	}
	if s.SpinCount <= 0 {
		s.SpinCount = def.SpinCount
	}
	return nil
}

func (l *LogConfig) validateSetDefaults() error {
	switch l.Format {
	case "":
		l.Format = defaultLogFormat
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", l.Format)
	}
	return nil
}

// Options converts the station section into station options. A zero thread
// count keeps the library default.
func (s *StationConfig) Options() []stations.Option {
	// validated by validateSetDefaults
	policy, _ := stations.ParseAdmissionPolicy(s.Admission)

	opts := []stations.Option{
		stations.WithMaxQueueDepth(s.MaxQueueDepth),
		stations.WithChunkSize(s.ChunkSize),
		stations.WithAdmissionPolicy(policy),
		stations.WithVerbosity(s.Verbosity),
		stations.WithMaxParkTime(s.MaxParkTime),
		stations.WithSpinCount(s.SpinCount),
		stations.WithPinWorkerThreads(s.PinWorkerThreads),
	}
	if s.Threads > 0 {
		opts = append(opts, stations.WithThreadCount(s.Threads))
	}
	return opts
}

// Logger builds the logrus logger described by the log section.
func (l *LogConfig) Logger() *log.Logger {
	logger := log.New()
	logger.SetLevel(log.InfoLevel)
	if l.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	if l.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}
