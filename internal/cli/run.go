package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"ping-monitor/internal/config"
	"ping-monitor/internal/csvlog"
	"ping-monitor/internal/database"
	"ping-monitor/internal/logging"
	"ping-monitor/internal/models"
	"ping-monitor/internal/monitor"
	"ping-monitor/internal/report"
	"ping-monitor/internal/ui"
	"ping-monitor/internal/web"
)

func newRunCmd(env *environment) *cobra.Command {
	v := config.NewViper()
	var configPath string

	cmd := &cobra.Command{
		Use:   "run <target>... <durationSeconds> <saveIntervalSeconds> <timeoutMs> <highPingThresholdMs>",
		Short: "Probe the targets for a fixed duration",
		Long: `Probe every target once per pass, one probe start per second, until the
duration has elapsed. Counters are appended to the ping log every save interval
and closed irregularity periods to the irregularities log as they close.

Examples:
  ping-monitor run 8.8.8.8 1.1.1.1 3600 60 1000 150
  ping-monitor run --db history.db --listen :8080 example.com 600 30 500 100`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := config.ParseArgs(args)
			if err != nil {
				return usage(cmd, err)
			}
			if err := config.ReadFile(v, configPath); err != nil {
				return err
			}
			cfg, err := config.Build(pos, v)
			if err != nil {
				return usage(cmd, fmt.Errorf("%w: %w", config.ErrUsage, err))
			}
			return runMonitor(cmd.Context(), cfg, env)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML file with optional settings")
	f.String(config.KeyPingLog, config.DefaultPingLog, "CSV file receiving counter snapshots")
	f.String(config.KeyIrregularityLog, config.DefaultIrregularityLog, "CSV file receiving closed irregularity periods")
	f.String(config.KeyDatabase, "", "SQLite database also receiving snapshots and irregularities")
	f.Duration(config.KeyDBRetention, 0, "Delete database runs older than this before starting (0 keeps everything)")
	f.String(config.KeyChartDir, "", "Directory to write latency charts into when the run ends")
	f.String(config.KeyListen, "", "Address for the live status HTTP server, e.g. :8080")
	f.String(config.KeyLogFile, "", "Append diagnostics to this file instead of stderr")
	f.String(config.KeyProber, config.ProberAuto, "Probe implementation: auto, icmp or exec")
	f.BoolP(config.KeyYes, "y", false, "Start without the confirmation prompt")
	mustBind(v, cmd)

	return cmd
}

func mustBind(v *viper.Viper, cmd *cobra.Command) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(err)
	}
}

func usage(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
	return err
}

func runMonitor(ctx context.Context, cfg config.Config, env *environment) error {
	logger, logCloser, err := logging.Open(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logCloser.Close()

	view := ui.NewTerminal(env.stdout, env.interactive)
	fmt.Fprint(env.stdout, view.Banner(cfg))

	if !cfg.AssumeYes && env.interactive {
		ok, err := env.confirm()
		if err != nil {
			return fmt.Errorf("confirm start: %w", err)
		}
		if !ok {
			fmt.Fprintln(env.stdout, "\n[!] Ping scan cancelled.")
			return nil
		}
	}

	prober, err := env.newProber(cfg.Prober, logger)
	if err != nil {
		return fmt.Errorf("create prober: %w", err)
	}
	defer prober.Close()

	sink, err := openSinks(cfg, logger, env.now())
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Printf("Failed to close sinks: %v", err)
		}
	}()

	presenters := []models.Presenter{view}
	var charts *report.Generator
	if cfg.ChartDir != "" {
		charts = report.NewGenerator(models.Milliseconds(cfg.HighPingThreshold))
		presenters = append(presenters, charts)
	}
	var server *web.Server
	if cfg.Listen != "" {
		server = web.New(cfg.Listen, logger)
		presenters = append(presenters, server)
	}

	mon := monitor.New(cfg, monitor.Deps{
		Prober:     prober,
		Sink:       sink,
		Presenters: presenters,
		Clock:      env.clock,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	var final []models.TargetSnapshot
	var stopped bool
	g.Go(func() error {
		defer stopServer()
		var err error
		final, err = mon.Run(gctx)
		stopped = gctx.Err() != nil
		return err
	})
	if server != nil {
		g.Go(func() error {
			return server.Start(serverCtx)
		})
	}
	runErr := g.Wait()

	if charts != nil {
		if _, err := charts.GenerateReport(cfg.ChartDir, logger); err != nil {
			logger.Printf("Failed to write charts: %v", err)
		}
	}

	fmt.Fprintln(env.stdout)
	if err := report.WriteSummary(env.stdout, env.now(), final, mon.Closed(), mon.OpenPeriods()); err != nil {
		logger.Printf("Failed to write summary: %v", err)
	}
	fmt.Fprint(env.stdout, view.Completed(stopped))

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// openSinks opens the CSV logs and, when configured, the SQLite history.
func openSinks(cfg config.Config, logger *log.Logger, now time.Time) (models.Sink, error) {
	csvSink, err := csvlog.New(cfg.PingLogPath, cfg.IrregularityLogPath)
	if err != nil {
		return nil, fmt.Errorf("open csv logs: %w", err)
	}
	if cfg.DatabasePath == "" {
		return csvSink, nil
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database schema: %w", err)
	}
	if cfg.DatabaseRetention > 0 {
		n, err := db.PruneBefore(now.Add(-cfg.DatabaseRetention))
		if err != nil {
			logger.Printf("Failed to prune database: %v", err)
		} else if n > 0 {
			logger.Printf("Pruned %d runs older than %v", n, cfg.DatabaseRetention)
		}
	}
	dbSink, err := db.StartRun(cfg, now)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("start database run: %w", err)
	}
	return monitor.MultiSink{csvSink, dbSink}, nil
}
