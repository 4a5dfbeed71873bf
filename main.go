package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"

	"github.com/kova98/lueur/config"
	"github.com/kova98/lueur/data"
	"github.com/kova98/lueur/data/repos"
	"github.com/kova98/lueur/enums"
	"github.com/kova98/lueur/links"
	"github.com/kova98/lueur/metrics"
	"github.com/kova98/lueur/notifiers"
	"github.com/kova98/lueur/sources"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "path to the JSON (or YAML) config file")
	dryRun := flag.Bool("dry-run", false, "render the email and print it without contacting the provider")
	flag.Parse()

	if err := run(*configPath, *dryRun, os.Stdout); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, dryRun bool, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts := slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &opts)).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	client, err := sources.NewHTTPClient(cfg.ProxyURL)
	if err != nil {
		return fmt.Errorf("create http client: %w", err)
	}

	// Content pools may live on third-party hosts, so they get their own
	// resty client without the provider's Authorization header.
	content := sources.NewContentLoader(logger, sources.NewRestClient(client))
	provider := notifiers.NewButtondown(logger, sources.NewRestClient(client), cfg.APIBaseURL, cfg.ButtondownAPIKey, cfg.NewsletterID)
	mailer := notifiers.NewMailer(
		cfg.RecipientToken,
		cfg.SiteURL,
		cfg.TipLink,
		links.UTM{Source: cfg.UTMSource, Medium: cfg.UTMMedium, Campaign: cfg.UTMCampaign},
		cfg.Location,
	)

	if dryRun {
		runner := NewRunner(logger, cfg, content, mailer, provider, nil, nil, metrics.New())
		mail, publishAt, err := runner.Compose(ctx, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Subject: %s\nPublish: %s\n\n%s\n", mail.Subject, publishAt.Format(time.DateTime+" MST"), mail.Body)
		return nil
	}

	state, report, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	m := metrics.New()
	runner := NewRunner(logger, cfg, content, mailer, provider, state, report, m)
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Scheduled email %s for %s local time.\n", result.Scheduled.ID, result.Scheduled.PublishAt.Format(time.DateTime))
	if result.ReportedID != "" {
		fmt.Fprintf(out, "Appended analytics for email %s to report.\n", result.ReportedID)
	}

	if cfg.PushgatewayURL != "" {
		if err := m.Push(cfg.PushgatewayURL); err != nil {
			logger.Error("failed to push metrics", "url", cfg.PushgatewayURL, "error", err)
		}
	}

	return nil
}

// openStores returns the last-id store and report log for the configured backend.
// The CSV report is always written; Postgres, when configured, also receives each row.
func openStores(cfg config.AppConfig) (data.StateStore, data.ReportLog, func(), error) {
	csvReport := data.NewCSVReport(cfg.ReportsCSV)

	if cfg.Backend() != enums.StorageBackendPostgres {
		return data.NewFileState(cfg.StateFile), csvReport, func() {}, nil
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to db: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}
	}

	if err := data.RunMigrations(db.DB); err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	report := data.MultiReport{csvReport, repos.NewReportRepo(db)}
	return repos.NewStateRepo(db), report, closeDB, nil
}
