package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kova98/lueur/data"
	"github.com/kova98/lueur/models"
)

type ReportRepo struct {
	db *sqlx.DB
}

func NewReportRepo(db *sqlx.DB) *ReportRepo {
	return &ReportRepo{db}
}

func (r *ReportRepo) AppendRow(row models.ReportRow) error {
	a := row.Analytics
	entity := data.AnalyticsReport{
		ReportDate:        row.Date,
		EmailID:           row.EmailID,
		Subject:           row.Subject,
		Recipients:        a.Recipients,
		Deliveries:        a.Deliveries,
		Opens:             a.Opens,
		Clicks:            a.Clicks,
		TemporaryFailures: a.TemporaryFailures,
		PermanentFailures: a.PermanentFailures,
		Unsubscriptions:   a.Unsubscriptions,
		Complaints:        a.Complaints,
	}

	query := `
		INSERT INTO analytics_reports (
			report_date, email_id, subject, recipients, deliveries, opens, clicks,
			temporary_failures, permanent_failures, unsubscriptions, complaints, created_at)
		VALUES (
			:report_date, :email_id, :subject, :recipients, :deliveries, :opens, :clicks,
			:temporary_failures, :permanent_failures, :unsubscriptions, :complaints, now())`

	if _, err := r.db.NamedExec(query, entity); err != nil {
		return fmt.Errorf("insert analytics report: %w", err)
	}
	return nil
}

func (r *ReportRepo) GetReports() ([]data.AnalyticsReport, error) {
	var reports []data.AnalyticsReport
	query := `
		SELECT id, report_date, email_id, subject, recipients, deliveries, opens, clicks,
			temporary_failures, permanent_failures, unsubscriptions, complaints, created_at
		FROM analytics_reports
		ORDER BY created_at ASC, id ASC`

	if err := r.db.Select(&reports, query); err != nil {
		return nil, fmt.Errorf("get analytics reports: %w", err)
	}
	return reports, nil
}
