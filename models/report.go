package models

import "strconv"

// Analytics holds the delivery counters the provider reports for one email.
// Counters missing from the response stay at zero.
type Analytics struct {
	Recipients        int64 `json:"recipients"`
	Deliveries        int64 `json:"deliveries"`
	Opens             int64 `json:"opens"`
	Clicks            int64 `json:"clicks"`
	TemporaryFailures int64 `json:"temporary_failures"`
	PermanentFailures int64 `json:"permanent_failures"`
	Unsubscriptions   int64 `json:"unsubscriptions"`
	Complaints        int64 `json:"complaints"`
}

type ReportRow struct {
	Date      string
	Subject   string
	EmailID   string
	Analytics Analytics
}

var ReportHeader = []string{
	"Date",
	"Subject",
	"Recipients",
	"Deliveries",
	"Opens",
	"Clicks",
	"TemporaryFailures",
	"PermanentFailures",
	"Unsubscriptions",
	"Complaints",
}

// Record returns the CSV fields in ReportHeader order.
func (r ReportRow) Record() []string {
	a := r.Analytics
	return []string{
		r.Date,
		r.Subject,
		strconv.FormatInt(a.Recipients, 10),
		strconv.FormatInt(a.Deliveries, 10),
		strconv.FormatInt(a.Opens, 10),
		strconv.FormatInt(a.Clicks, 10),
		strconv.FormatInt(a.TemporaryFailures, 10),
		strconv.FormatInt(a.PermanentFailures, 10),
		strconv.FormatInt(a.Unsubscriptions, 10),
		strconv.FormatInt(a.Complaints, 10),
	}
}
