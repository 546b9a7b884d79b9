// Command expirywatch tracks personnel document expiry dates, sends HTML
// reminder mails over a failover SMTP chain, and writes CSV status reports.
//
// Usage:
//
//	expirywatch [flags] [command]
//
// Commands:
//
//	run            reminder run (default)
//	catchup        reminder run only if a scheduled boundary was missed
//	watch          stay resident: catch up now, then run daily at schedule.daily_at
//	report         write the status report CSV
//	test-email     send a diagnostic mail through the failover chain
//	create-sample  write a sample data file at the configured data_file
//	init-config    write the default configuration template
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abhissng/expirywatch/adapters/log"
	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/config"
	"github.com/abhissng/expirywatch/engine"
	"github.com/abhissng/expirywatch/result"
	"github.com/abhissng/expirywatch/scheduler"
	"github.com/abhissng/expirywatch/utils/graceful"
	"github.com/abhissng/expirywatch/utils/schedule"
)

// Exit codes: 0 success, 1 run failure, 2 configuration failure.
const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "expirywatch.yaml", "Path to configuration file")
	output := flag.String("output", "", "Report output path override (report command)")
	prod := flag.Bool("prod", false, "Production logging (JSON, info level)")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "run"
	}

	// init-config must work before any configuration exists.
	if command == "init-config" {
		if b := config.WriteTemplate(*configPath); b != nil {
			fmt.Fprintln(os.Stderr, b.Error())
			return exitConfig
		}
		fmt.Printf("configuration template written to %s\n", *configPath)
		return exitOK
	}

	cfg, b := config.Load(*configPath)
	if b != nil {
		fmt.Fprintln(os.Stderr, b.Error())
		return exitConfig
	}

	logger, err := log.NewLogger(log.NewLoggerConfig(*prod,
		log.WithLevel(log.LogLevel(cfg.Log.Level)),
		log.WithFilePath(cfg.Log.File),
		log.WithServiceName("expirywatch-"+command),
	))
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot initialise logger:", err)
		return exitConfig
	}
	defer func() { _ = logger.Sync() }()

	hour, minute := cfg.DailyAtClock()
	coord := scheduler.NewCoordinator(
		scheduler.NewFileStateStore(cfg.Schedule.StateFile),
		hour, minute,
		scheduler.WithLog(logger),
	)

	eng, b := engine.New(cfg, logger, engine.WithCoordinator(coord))
	if b != nil {
		logger.Error("engine initialisation failed", log.Blame(b))
		return exitConfig
	}

	switch command {
	case "run":
		return exitFor(dispatchReminder(eng, logger, false))
	case "catchup":
		return exitFor(dispatchReminder(eng, logger, true))
	case "watch":
		return watch(eng, logger, hour, minute)
	case "report":
		return exitFor(dispatchReport(eng, logger, *output))
	case "test-email":
		return exitFor(dispatchTestEmail(eng, logger))
	case "create-sample":
		if b := eng.CreateSample(); b != nil {
			logger.Error("sample data file not written", log.Blame(b))
			return exitFailed
		}
		logger.Info("sample data file written", log.String("path", cfg.DataFile))
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		flag.Usage()
		return exitConfig
	}
}

// exitFor maps a terminal blame to the process exit code. Configuration
// problems exit 2 so wrapper scripts can tell a broken setup from a failed
// run.
func exitFor(b blame.Blame) int {
	if b == nil {
		return exitOK
	}
	if b.FetchComponent() == blame.Configuration {
		return exitConfig
	}
	return exitFailed
}

// reminderProcessor adapts the pipeline to the schedule loop. Failures are
// logged and swallowed; a resident watcher must survive a bad day.
type reminderProcessor struct {
	eng    *engine.Engine
	logger *log.Log
}

func (p *reminderProcessor) Start() {
	_ = dispatchReminder(p.eng, p.logger, false)
}

// watch catches up on any missed boundary, then stays resident and fires the
// reminder pipeline daily until SIGINT or SIGTERM.
func watch(eng *engine.Engine, logger *log.Log, hour, minute int) int {
	if b := dispatchReminder(eng, logger, true); b != nil && b.FetchComponent() == blame.Configuration {
		return exitConfig
	}

	daily := schedule.NewSchedule(&reminderProcessor{eng: eng, logger: logger}, hour, minute,
		schedule.WithName("reminder"),
		schedule.WithLogger(logger),
	)
	daily.Run()

	graceful.GracefulShutdown(graceful.ShutdownFunc(func(context.Context) error {
		daily.Stop()
		return nil
	}), 5*time.Second, logger)
	return exitOK
}

func dispatchReminder(eng *engine.Engine, logger *log.Log, catchup bool) blame.Blame {
	var res result.Result[engine.ReminderOutcome]
	if catchup {
		res = eng.RunCatchup()
	} else {
		res = eng.RunReminder()
	}
	if res.IsError() {
		logger.Error("reminder run failed", log.Blame(res.Error()))
		return res.Error()
	}

	outcome := res.ToValue()
	if outcome.Sent {
		logger.Info("reminder run complete",
			log.String("server", outcome.Delivery.Server),
			log.Int("attempts", outcome.Delivery.Attempts),
			log.Int("reminders", outcome.Summary.Reminders),
		)
	} else {
		logger.Info("reminder run complete, nothing sent")
	}
	return nil
}

func dispatchReport(eng *engine.Engine, logger *log.Log, output string) blame.Blame {
	res := eng.RunReport(output)
	if res.IsError() {
		logger.Error("report run failed", log.Blame(res.Error()))
		return res.Error()
	}

	outcome := res.ToValue()
	logger.Info("report run complete",
		log.String("path", outcome.Path),
		log.Int("total", outcome.Summary.Total),
		log.Int("expired", outcome.Summary.Expired),
		log.Int("expiring_soon", outcome.Summary.ExpiringSoon),
		log.Int("valid", outcome.Summary.Valid),
		log.Int("skipped", outcome.Skipped),
	)
	return nil
}

func dispatchTestEmail(eng *engine.Engine, logger *log.Log) blame.Blame {
	res := eng.SendTestEmail()
	if res.IsError() {
		logger.Error("test mail failed", log.Blame(res.Error()))
		return res.Error()
	}

	delivery := res.ToValue()
	logger.Info("test mail delivered",
		log.String("server", delivery.Server),
		log.Int("attempts", delivery.Attempts),
	)
	return nil
}
