package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"MetaReader/internal/collector"
	"MetaReader/internal/config"
	"MetaReader/internal/logging"
	"MetaReader/internal/model"
	"MetaReader/internal/recorder"
	"MetaReader/internal/report"
	"MetaReader/internal/scheduler"
	"MetaReader/internal/session"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: metareader [flags] <command>

Commands:
  list            list index entries
  dump SYMBOL     print the bars of one security
  summary         print statistics for every security
  import          export all securities to SQLite once
  watch           re-import on the configured cron schedule

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	cfgPath := flag.String("config", "", "config file (default $CONFIG_PATH or configs/config.yaml)")
	dir := flag.String("dir", "", "MetaStock data directory")
	variant := flag.String("variant", "", "index variant: auto, master, emaster or xmaster")
	limit := flag.Int("limit", 0, "dump: print only the last N bars")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// A missing .env is fine
	_ = godotenv.Load()

	path := *cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal("load config", err)
	}
	if *dir != "" {
		cfg.DataDir = *dir
	}
	if *variant != "" {
		cfg.IndexVariant = *variant
	}
	if err := cfg.Validate(); err != nil {
		fatal("config validation", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fatal("init logger", err)
	}
	log := logger.WithField("component", "main")

	sm, err := session.NewManager(cfg.Session.StateFile)
	if err != nil {
		log.WithError(err).Warn("session state unreadable, starting fresh")
		sm, _ = session.NewManager("")
	}
	dataDir := sm.ResolveDir(cfg.DataDir)
	if dataDir == "" {
		log.Fatal("no data directory: pass -dir or set data_dir")
	}

	src := collector.NewDirSource(dataDir)
	col := collector.NewCollector(src, cfg.IndexVariant, cfg.Workers, logger)
	log.WithFields(logrus.Fields{"source": src.Name(), "variant": cfg.IndexVariant}).Debug("collector ready")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := run(ctx, cmd, args, cfg, col, *limit, logger); err != nil {
		log.WithError(err).Error(cmd + " failed")
		os.Exit(1)
	}

	if err := sm.Remember(dataDir, cfg.IndexVariant); err != nil {
		log.WithError(err).Warn("save session state")
	}
}

func run(ctx context.Context, cmd string, args []string, cfg *config.Config, col *collector.Collector, limit int, logger *logrus.Logger) error {
	switch cmd {
	case "list":
		entries, err := col.Entries()
		if err != nil {
			return err
		}
		fmt.Print(report.FormatEntries(entries))
		return nil

	case "dump":
		if len(args) != 1 {
			return errors.New("usage: dump SYMBOL")
		}
		res, err := col.CollectSymbol(args[0])
		if err != nil {
			return err
		}
		if res.Err != nil {
			return res.Err
		}
		fmt.Print(report.FormatSeries(res.Entry, res.Series, limit))
		return nil

	case "summary":
		results, err := col.Collect(ctx)
		if err != nil {
			return err
		}
		summaries := make([]model.SeriesSummary, len(results))
		for i, r := range results {
			summaries[i] = col.Summarize(r)
		}
		fmt.Print(report.FormatSummary(results, summaries))
		return nil

	case "import":
		rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			return fmt.Errorf("init sqlite recorder: %w", err)
		}
		defer rec.Close()

		sched := scheduler.NewScheduler(ctx, col, rec, logger)
		ir, err := sched.RunImportNow()
		if ir != nil {
			fmt.Print(report.FormatImportRun(ir))
		}
		return err

	case "watch":
		rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			return fmt.Errorf("init sqlite recorder: %w", err)
		}
		defer rec.Close()

		sched := scheduler.NewScheduler(ctx, col, rec, logger)
		if err := sched.RegisterImport(cfg.Schedule.ImportCron); err != nil {
			return fmt.Errorf("register import: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		if ir, err := sched.RunImportNow(); err != nil {
			logger.WithError(err).Warn("initial import finished with errors")
		} else {
			fmt.Print(report.FormatImportRun(ir))
		}

		logger.WithField("cron", cfg.Schedule.ImportCron).Info("watching, press Ctrl+C to stop")
		<-ctx.Done()
		logger.Info("shutdown signal received, stopping")
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "metareader: %s: %v\n", msg, err)
	os.Exit(1)
}
