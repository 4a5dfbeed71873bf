package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kova98/lueur/models"
)

const header = "Date,Subject,Recipients,Deliveries,Opens,Clicks,TemporaryFailures,PermanentFailures,Unsubscriptions,Complaints\n"

func TestCSVReport_CreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics_report.csv")
	report := NewCSVReport(path)

	err := report.AppendRow(models.ReportRow{
		Date:    "2024-01-09",
		Subject: "✨ Sois doux, avec toi",
		Analytics: models.Analytics{
			Recipients: 10, Deliveries: 9, Opens: 5, Clicks: 2,
			TemporaryFailures: 1, PermanentFailures: 0, Unsubscriptions: 1, Complaints: 0,
		},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+"2024-01-09,\"✨ Sois doux, avec toi\",10,9,5,2,1,0,1,0\n", string(raw))
}

func TestCSVReport_AppendsWithoutDuplicateHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics_report.csv")
	report := NewCSVReport(path)

	require.NoError(t, report.AppendRow(models.ReportRow{Date: "2024-01-09", Subject: "a"}))
	require.NoError(t, report.AppendRow(models.ReportRow{Date: "2024-01-10", Subject: "b"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+
		"2024-01-09,a,0,0,0,0,0,0,0,0\n"+
		"2024-01-10,b,0,0,0,0,0,0,0,0\n", string(raw))
}

func TestCSVReport_ExistingFileKeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics_report.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"2024-01-01,old,1,1,1,1,0,0,0,0\n"), 0o644))

	require.NoError(t, NewCSVReport(path).AppendRow(models.ReportRow{Date: "2024-01-02", Subject: "new"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+
		"2024-01-01,old,1,1,1,1,0,0,0,0\n"+
		"2024-01-02,new,0,0,0,0,0,0,0,0\n", string(raw))
}

type recordingLog struct {
	rows []models.ReportRow
	err  error
}

func (r *recordingLog) AppendRow(row models.ReportRow) error {
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, row)
	return nil
}

func TestMultiReport_StopsAtFirstFailure(t *testing.T) {
	failing := &recordingLog{err: errors.New("disk full")}
	after := &recordingLog{}

	err := MultiReport{failing, after}.AppendRow(models.ReportRow{Date: "2024-01-09"})

	assert.EqualError(t, err, "disk full")
	assert.Empty(t, after.rows)
}

func TestMultiReport_WritesEverySink(t *testing.T) {
	first, second := &recordingLog{}, &recordingLog{}
	row := models.ReportRow{Date: "2024-01-09", Subject: "s"}

	require.NoError(t, MultiReport{first, second}.AppendRow(row))

	assert.Equal(t, []models.ReportRow{row}, first.rows)
	assert.Equal(t, []models.ReportRow{row}, second.rows)
}

func TestMultiReport_RetryAfterLaterSinkFailsDuplicatesCSVRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics_report.csv")
	db := &recordingLog{err: errors.New("connection refused")}
	report := MultiReport{NewCSVReport(path), db}
	row := models.ReportRow{Date: "2024-01-09", Subject: "s", EmailID: "em_1"}

	require.Error(t, report.AppendRow(row))

	db.err = nil
	require.NoError(t, report.AppendRow(row))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+
		"2024-01-09,s,0,0,0,0,0,0,0,0\n"+
		"2024-01-09,s,0,0,0,0,0,0,0,0\n", string(raw))
	assert.Equal(t, []models.ReportRow{row}, db.rows)
}
