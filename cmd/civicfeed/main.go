package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/civicfeed/pkg/config"
	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/discovery"
	"github.com/umputun/civicfeed/pkg/domain"
	"github.com/umputun/civicfeed/pkg/feed"
	"github.com/umputun/civicfeed/pkg/geo"
	"github.com/umputun/civicfeed/pkg/llm"
	"github.com/umputun/civicfeed/pkg/repository"
	"github.com/umputun/civicfeed/pkg/scheduler"
	"github.com/umputun/civicfeed/pkg/validator"
	"github.com/umputun/civicfeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`
	NoSync bool   `long:"no-sync" env:"NO_SYNC" description:"disable periodic sync"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting civicfeed version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// run wires storage, collection, discovery and the API server, and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LLM.APIKey != "" {
		setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	collectorOpts := feed.CollectorOpts{
		Timeout:        cfg.Collector.Timeout,
		UserAgent:      cfg.Collector.UserAgent,
		Horizon:        cfg.Collector.Horizon,
		MaxOccurrences: cfg.Collector.MaxOccurrences,
	}
	for _, f := range cfg.Collector.FormatPriority {
		collectorOpts.FormatPriority = append(collectorOpts.FormatPriority, domain.FeedFormat(f))
	}
	if cfg.LLM.Enabled {
		log.Printf("[INFO] llm categorization enabled, model %s", cfg.LLM.Model)
		collectorOpts.Categorizer = llm.NewCategorizer(cfg.LLM)
	}
	if cfg.Collector.EnrichEvents > 0 {
		collectorOpts.Extractor = content.NewExtractor(content.FetcherOpts{Timeout: cfg.Collector.Timeout,
			MaxRedirects: 5, UserAgent: cfg.Collector.UserAgent})
		collectorOpts.MaxEnrich = cfg.Collector.EnrichEvents
	}
	collector := feed.NewCollector(repos.Source, collectorOpts)

	if err := seedSources(ctx, collector, cfg.Sources); err != nil {
		return fmt.Errorf("failed to register configured sources: %w", err)
	}

	catalog, err := geo.Load()
	if err != nil {
		return fmt.Errorf("failed to load city catalog: %w", err)
	}

	v := validator.New(validator.Opts{
		Timeout:           cfg.Validator.Timeout,
		MaxRedirects:      cfg.Validator.MaxRedirects,
		BatchSize:         cfg.Validator.BatchSize,
		BatchPause:        cfg.Validator.BatchPause,
		MinBodyLength:     cfg.Validator.MinBodyLength,
		QualityLength:     cfg.Validator.QualityLength,
		GovernmentPhrases: cfg.Validator.GovernmentPhrases,
		UserAgent:         cfg.Collector.UserAgent,
	})

	discoverer := discovery.New(catalog, v, discovery.Opts{
		Timeout:              cfg.Discovery.Timeout,
		MaxCandidatesPerType: cfg.Discovery.MaxCandidatesPerType,
		ValidateWebsites:     cfg.Discovery.ValidateWebsites,
		Scores:               cfg.Discovery.Scores,
		UserAgent:            cfg.Collector.UserAgent,
	})

	orch := scheduler.NewOrchestrator(collector, repos.Event, discoverer, catalog)

	if cfg.Sync.Enabled && !opts.NoSync {
		sched, err := scheduler.NewScheduler(orch, scheduler.Config{Schedule: cfg.Sync.Schedule, RunOnStart: true})
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	srv := server.New(server.Params{
		Config:       cfg,
		Sources:      collector,
		Orchestrator: orch,
		Discoverer:   discoverer,
		Validator:    v,
		Events:       repos.Event,
		BaseURL:      cfg.Server.BaseURL,
		Version:      revision,
		Debug:        opts.Debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if set, and applies CLI overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	return cfg, nil
}

// seedSources registers sources listed in the config, already registered ones are left as is
func seedSources(ctx context.Context, collector *feed.Collector, sources []config.SourceConfig) error {
	var added int
	for _, sc := range sources {
		src := domain.CalendarSource{
			Name:       sc.Name,
			City:       sc.City,
			State:      sc.State,
			Type:       domain.OrgType(sc.Type),
			FeedURL:    sc.URL,
			WebsiteURL: sc.Website,
			FeedFormat: domain.FeedFormat(sc.Format),
			Active:     sc.Active == nil || *sc.Active,
		}
		_, ok, err := collector.AddSource(ctx, src)
		if err != nil {
			return fmt.Errorf("add %s: %w", sc.Name, err)
		}
		if ok {
			added++
		}
	}
	if len(sources) > 0 {
		log.Printf("[INFO] configured sources: %d, newly registered: %d", len(sources), added)
	}
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []log.Option{log.Msec, log.LevelBraces}
	if dbg {
		logOpts = []log.Option{log.Debug, log.CallerFile, log.CallerFunc, log.Msec, log.LevelBraces, log.StackTraceOnError}
	}

	if !noColor {
		colorizer := log.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, log.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, log.Secret(secs...))
	}
	log.SetupStdLogger(logOpts...)
	log.Setup(logOpts...)
}
