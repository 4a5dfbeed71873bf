package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kova98/lueur/models"
)

func TestObserveSuccess(t *testing.T) {
	m := New()
	started := time.Unix(1700000000, 0)

	m.ObserveSuccess(started, started.Add(1500*time.Millisecond))

	assert.InDelta(t, 1.5, testutil.ToFloat64(m.RunDuration), 1e-9)
	assert.Equal(t, float64(1700000001), testutil.ToFloat64(m.LastSuccess))
}

func TestObserveSchedule(t *testing.T) {
	m := New()

	m.ObserveSchedule(time.Date(2024, 1, 11, 7, 0, 0, 0, time.UTC))

	assert.Equal(t, float64(1704956400), testutil.ToFloat64(m.ScheduledPublish))
}

func TestObserveAnalytics(t *testing.T) {
	m := New()

	m.ObserveAnalytics(models.Analytics{Recipients: 100, Opens: 42, Complaints: 1})

	assert.Equal(t, float64(100), testutil.ToFloat64(m.ReportedEmail.WithLabelValues("recipients")))
	assert.Equal(t, float64(42), testutil.ToFloat64(m.ReportedEmail.WithLabelValues("opens")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ReportedEmail.WithLabelValues("clicks")))
	assert.Equal(t, 8, testutil.CollectAndCount(m.ReportedEmail))
}

func TestPush(t *testing.T) {
	var path, method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New()
	m.ObserveSuccess(time.Now(), time.Now())

	require.NoError(t, m.Push(srv.URL))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/lueur", path)
}
