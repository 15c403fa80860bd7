// Package main is a read-only command line view over the fittude store.
//
//	fittude -user 1 plans
//	fittude -user 1 -plan 5 -split Push split
//	fittude -user 1 -plan 5 reports
//	fittude -user 1 -report 7 sets
//	fittude -user 1 -exercise 10 history
//	fittude defaults
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/lcsouza2/fittude-data-repo/internal/catalog"
	"github.com/lcsouza2/fittude-data-repo/internal/config"
	"github.com/lcsouza2/fittude-data-repo/internal/db"
	"github.com/lcsouza2/fittude-data-repo/internal/exercises"
	"github.com/lcsouza2/fittude-data-repo/internal/logging"
	"github.com/lcsouza2/fittude-data-repo/internal/reports"
	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/metrics"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
	"github.com/lcsouza2/fittude-data-repo/internal/workouts"
)

var errUnknownCommand = errors.New("unknown command")

type queryParams struct {
	userID     int
	planID     int
	split      string
	reportID   int
	exerciseID int
	page       store.Page
}

type repos struct {
	catalog   *catalog.Repo
	exercises *exercises.Repo
	workouts  *workouts.Repo
	reports   *reports.Repo
}

func main() {
	os.Exit(fittude())
}

func fittude() int {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file with secrets")
	metricsFile := flag.String("metrics-file", "", "write statement metrics in prometheus text format to this file on exit")

	var params queryParams
	flag.IntVar(&params.userID, "user", 0, "authenticated user id")
	flag.IntVar(&params.planID, "plan", 0, "workout plan id")
	flag.StringVar(&params.split, "split", "", "split name")
	flag.IntVar(&params.reportID, "report", 0, "workout report id")
	flag.IntVar(&params.exerciseID, "exercise", 0, "exercise id")
	flag.IntVar(&params.page.Limit, "limit", 0, "page size (0 for the default)")
	flag.IntVar(&params.page.Offset, "offset", 0, "page offset")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	secrets, err := config.LoadSecrets(*envFile)
	if err != nil {
		log.Fatalf("load secrets: %s", err)
	}

	flushLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        secrets.SentryDSN,
		SentryServerName: "fittude-cli",
	})
	defer flushLogs()

	honeycombEnabled := cfg.TracingEnabled && secrets.HoneycombEnabled
	if honeycombEnabled && secrets.HoneycombAPIKey == "" {
		log.Warnln("HONEYCOMB_API_KEY not set")
	}
	otelShutdown, err := tracing.HoneycombSetup(honeycombEnabled, "fittude-cli", secrets.HoneycombAPIKey)
	if err != nil {
		log.Errorf("honeycomb setup: %s", err)
	}
	defer otelShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsManager := metrics.NewManager(cfg.MetricsNamespace, "store", nil)
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     secrets.PostgresPassword,
		SSLMode:        cfg.PostgresSSLMode,
		TracingEnabled: honeycombEnabled,
		Metrics:        metricsManager,
	})
	if err != nil {
		log.Errorf("db pool: %s", err)
		return 1
	}
	defer dbPool.Close()

	r := repos{
		catalog:   catalog.NewRepo(dbPool),
		exercises: exercises.NewRepo(dbPool),
		workouts:  workouts.NewRepo(dbPool),
		reports:   reports.NewRepo(dbPool),
	}

	exitCode := execute(ctx, r, flag.Arg(0), params, os.Stdout, os.Stderr)

	// failed commands still report their statement outcomes
	if *metricsFile != "" {
		if err := writeMetrics(*metricsFile, metricsManager, dbPool, cfg.PostgresDBName); err != nil {
			log.Errorf("write metrics file: %s", err)
		}
	}
	return exitCode
}

// execute runs command and prints its result as JSON to stdout, or the
// caller-facing reason to stderr.
func execute(ctx context.Context, r repos, command string, p queryParams, stdout, stderr io.Writer) int {
	result, err := run(ctx, r, command, p)
	if err != nil {
		log.Errorf("%s: %s", command, err)
		if errors.Is(err, errUnknownCommand) {
			fmt.Fprintln(stderr, err)
		} else {
			fmt.Fprintln(stderr, store.Reason(err))
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Errorf("encode result: %s", err)
		return 1
	}
	return 0
}

func writeMetrics(path string, manager *metrics.Manager, pool *pgxpool.Pool, dbName string) error {
	registry := metrics.SetupPrometheus(manager.Collectors()...)
	if err := registry.Register(db.NewPoolCollector(pool, dbName)); err != nil {
		return fmt.Errorf("register pool collector: %w", err)
	}
	return metrics.WriteTextfile(path, registry)
}

type defaultCatalog struct {
	Groups    []catalog.Group      `json:"muscle_groups"`
	Muscles   []catalog.Muscle     `json:"muscles"`
	Equipment []catalog.Equipment  `json:"equipment"`
	Exercises []exercises.Exercise `json:"exercises"`
}

type splitView struct {
	Split     string                       `json:"split"`
	Exercises []workouts.SplitExerciseView `json:"exercises"`
}

func run(ctx context.Context, r repos, command string, p queryParams) (any, error) {
	switch command {
	case "defaults":
		var (
			out defaultCatalog
			err error
		)
		if out.Groups, err = r.catalog.ListDefaultGroups(ctx); err != nil {
			return nil, err
		}
		if out.Muscles, err = r.catalog.ListDefaultMuscles(ctx); err != nil {
			return nil, err
		}
		if out.Equipment, err = r.catalog.ListDefaultEquipment(ctx); err != nil {
			return nil, err
		}
		if out.Exercises, err = r.exercises.ListDefaults(ctx); err != nil {
			return nil, err
		}
		return out, nil
	case "plans":
		return r.workouts.ListPlansByUser(ctx, p.userID, p.page)
	case "splits":
		return r.workouts.ListSplits(ctx, p.planID, p.userID)
	case "split":
		list, err := r.workouts.ListSplitExercises(ctx, p.planID, p.split, p.userID)
		if err != nil {
			return nil, err
		}
		return splitView{Split: p.split, Exercises: list}, nil
	case "reports":
		return r.reports.ListReportsByPlan(ctx, p.planID, p.userID, p.page)
	case "report":
		return r.reports.GetReport(ctx, p.reportID, p.userID)
	case "sets":
		return r.reports.ListSetReportsByWorkout(ctx, p.reportID, p.userID)
	case "history":
		return r.reports.ListSetReportsByExercise(ctx, p.exerciseID, p.userID, p.page)
	case "exercise":
		exercise, err := r.exercises.Get(ctx, p.exerciseID, p.userID)
		if err != nil {
			return nil, err
		}
		muscles, err := r.exercises.ListMuscles(ctx, exercise.ID)
		if err != nil {
			return nil, err
		}
		equipment, err := r.exercises.ListEquipment(ctx, exercise.ID)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"exercise":  exercise,
			"muscles":   muscles,
			"equipment": equipment,
		}, nil
	default:
		return nil, fmt.Errorf("%w [%s], use one of: defaults, plans, splits, split, reports, report, sets, history, exercise", errUnknownCommand, command)
	}
}
