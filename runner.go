package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/kova98/lueur/config"
	"github.com/kova98/lueur/data"
	"github.com/kova98/lueur/metrics"
	"github.com/kova98/lueur/models"
	"github.com/kova98/lueur/notifiers"
	"github.com/kova98/lueur/sources"
)

type RunResult struct {
	Scheduled models.ScheduledEmail
	// ReportedID is the previous run's email id when its analytics were appended, "" otherwise.
	ReportedID string
}

// Runner performs one scheduling cycle. It is meant to be invoked once per
// day by an external scheduler such as cron.
type Runner struct {
	logger   *slog.Logger
	cfg      config.AppConfig
	content  *sources.ContentLoader
	mailer   *notifiers.Mailer
	provider *notifiers.Buttondown
	state    data.StateStore
	report   data.ReportLog
	metrics  *metrics.Metrics
	now      func() time.Time
	rng      *rand.Rand
}

func NewRunner(
	logger *slog.Logger,
	cfg config.AppConfig,
	content *sources.ContentLoader,
	mailer *notifiers.Mailer,
	provider *notifiers.Buttondown,
	state data.StateStore,
	report data.ReportLog,
	m *metrics.Metrics,
) *Runner {
	return &Runner{
		logger:   logger,
		cfg:      cfg,
		content:  content,
		mailer:   mailer,
		provider: provider,
		state:    state,
		report:   report,
		metrics:  m,
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Run schedules tomorrow's email and reports on the one scheduled by the
// previous run. The stored email id only moves forward once every step has
// succeeded, so a failed report is retried against the same id next time even
// though a new email was already scheduled.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	started := r.now()

	mail, publishAt, err := r.Compose(ctx, started)
	if err != nil {
		return RunResult{}, err
	}

	scheduled, err := r.provider.Schedule(ctx, mail, publishAt)
	if err != nil {
		return RunResult{}, errors.Wrap(err, "run: schedule email")
	}
	r.metrics.ObserveSchedule(scheduled.PublishAt)

	reportedID, err := r.reportPrevious(ctx, scheduled, started)
	if err != nil {
		return RunResult{Scheduled: scheduled}, err
	}

	if err := r.state.SaveLastEmailID(scheduled.ID); err != nil {
		return RunResult{Scheduled: scheduled}, errors.Wrap(err, "run: save last email id")
	}

	r.metrics.ObserveSuccess(started, r.now())
	return RunResult{Scheduled: scheduled, ReportedID: reportedID}, nil
}

// Compose picks today's content and renders the email without contacting the provider.
func (r *Runner) Compose(ctx context.Context, now time.Time) (models.Email, time.Time, error) {
	quotes, err := r.content.Quotes(ctx, r.cfg.QuotesSource)
	if err != nil {
		return models.Email{}, time.Time{}, errors.Wrap(err, "run: load quotes")
	}
	products, err := r.content.Products(ctx, r.cfg.ProductsSource)
	if err != nil {
		return models.Email{}, time.Time{}, errors.Wrap(err, "run: load products")
	}

	quote, err := sources.Choose(r.rng, quotes)
	if err != nil {
		return models.Email{}, time.Time{}, errors.Wrap(err, "run: choose quote")
	}
	product, err := sources.Choose(r.rng, products)
	if err != nil {
		return models.Email{}, time.Time{}, errors.Wrap(err, "run: choose product")
	}

	template, err := notifiers.LoadTemplate(r.cfg.TemplatePath)
	if err != nil {
		return models.Email{}, time.Time{}, errors.Wrap(err, "run: load template")
	}

	mail := r.mailer.DailyEmail(template, quote, product, now)
	publishAt := notifiers.PublishAt(now, r.cfg.Location, r.cfg.SendHour, r.cfg.SendMinute)

	r.logger.Debug("email composed", "subject", mail.Subject, "product", product.Title, "publish_at", publishAt)
	return mail, publishAt, nil
}

// reportPrevious appends analytics for the email stored by the previous run.
// The row carries the current run's subject and is dated the day before now.
func (r *Runner) reportPrevious(ctx context.Context, scheduled models.ScheduledEmail, now time.Time) (string, error) {
	previousID, err := r.state.LastEmailID()
	if err != nil {
		return "", errors.Wrap(err, "run: read last email id")
	}
	if previousID == "" || previousID == scheduled.ID {
		r.logger.Info("no previous email to report on")
		return "", nil
	}

	analytics, err := r.provider.Analytics(ctx, previousID)
	if err != nil {
		return "", errors.Wrap(err, "run: fetch previous analytics")
	}

	row := models.ReportRow{
		Date:      notifiers.ReportDate(now, r.cfg.Location),
		Subject:   scheduled.Subject,
		EmailID:   previousID,
		Analytics: analytics,
	}
	if err := r.report.AppendRow(row); err != nil {
		return "", errors.Wrap(err, "run: append report row")
	}
	r.metrics.ObserveAnalytics(analytics)

	r.logger.Info("analytics appended", "email_id", previousID, "date", row.Date)
	return previousID, nil
}
