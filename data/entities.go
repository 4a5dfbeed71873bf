package data

import "time"

type EmailState struct {
	ID          int       `db:"id"`
	LastEmailID string    `db:"last_email_id"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type AnalyticsReport struct {
	ID                int64     `db:"id"`
	ReportDate        string    `db:"report_date"`
	EmailID           string    `db:"email_id"`
	Subject           string    `db:"subject"`
	Recipients        int64     `db:"recipients"`
	Deliveries        int64     `db:"deliveries"`
	Opens             int64     `db:"opens"`
	Clicks            int64     `db:"clicks"`
	TemporaryFailures int64     `db:"temporary_failures"`
	PermanentFailures int64     `db:"permanent_failures"`
	Unsubscriptions   int64     `db:"unsubscriptions"`
	Complaints        int64     `db:"complaints"`
	CreatedAt         time.Time `db:"created_at"`
}
