package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tahsin716/stations"
	"github.com/tahsin716/stations/internal/config"
)

// app holds the flags and the state shared by every sub-command
type app struct {
	configFile  string
	debug       bool
	logFormat   string
	metricsAddr string

	threads   int
	admission string
	chunkSize int
	verbosity int
	seed      int64

	cfg     *config.Config
	log     *log.Logger
	reg     *prometheus.Registry
	metrics *stations.Metrics
	srv     *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "stations",
		Short:             "run parallel algorithms on integer workloads",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.shutdown(cmd.Context())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "config file path")
	pf.BoolVarP(&a.debug, "debug", "d", false, "set log level to DEBUG")
	pf.StringVar(&a.logFormat, "log-format", "", "log format, 'text' or 'json'")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	bindStationFlags(pf, a)

	rootCmd.AddCommand(
		newSortCmd(a),
		newPrimesCmd(a),
		newCountCmd(a),
	)
	return rootCmd
}

func bindStationFlags(fs *pflag.FlagSet, a *app) {
	fs.IntVarP(&a.threads, "threads", "n", 0, "number of threads including the boss, 0 for the default")
	fs.StringVar(&a.admission, "admission", "", "boss admission policy: eager, patient or organized")
	fs.IntVar(&a.chunkSize, "chunk-size", 0, "items per partition, 0 for an even split")
	fs.IntVarP(&a.verbosity, "verbosity", "v", 0, "station verbosity: 0, 1 or 2")
	fs.Int64Var(&a.seed, "seed", 42, "random seed")
}

// setup loads the config file and lets explicitly set flags override it
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.New(a.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("threads") {
		cfg.Station.Threads = a.threads
	}
	if flags.Changed("admission") {
		cfg.Station.Admission = a.admission
	}
	if flags.Changed("chunk-size") {
		cfg.Station.ChunkSize = a.chunkSize
	}
	if flags.Changed("verbosity") {
		cfg.Station.Verbosity = a.verbosity
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = a.debug
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("metrics-addr") {
		cfg.Prometheus.Address = a.metricsAddr
	}
	if _, err := stations.ParseAdmissionPolicy(cfg.Station.Admission); err != nil {
		return err
	}
	if f := cfg.Log.Format; f != "text" && f != "json" {
		return fmt.Errorf("unknown log format %q", f)
	}
	a.cfg = cfg

	a.log = cfg.Log.Logger()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.Debugf("config: %+v", *cfg.Station)

	a.reg = prometheus.NewRegistry()
	a.metrics, err = stations.NewMetrics(cfg.Prometheus.Namespace, a.reg)
	if err != nil {
		return err
	}
	if cfg.Prometheus.Address != "" {
		a.serveMetrics(cfg.Prometheus.Address)
	}
	return nil
}

func (a *app) serveMetrics(addr string) {
	a.reg.MustRegister(collectors.NewGoCollector())
	a.reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{}))
	a.srv = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}

	go func() {
		a.log.Infof("serving metrics on %s", addr)
		err := a.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Errorf("HTTP server stopped: %v", err)
		}
	}()
}

func (a *app) shutdown(ctx context.Context) error {
	if a.srv == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return a.srv.Shutdown(ctx)
}

// stationOptions returns the options every sub-command starts from
func (a *app) stationOptions() []stations.Option {
	opts := a.cfg.Station.Options()
	return append(opts,
		stations.WithLogger(log.NewEntry(a.log)),
		stations.WithMetrics(a.metrics),
	)
}
