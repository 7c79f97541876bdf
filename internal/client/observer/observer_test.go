package observer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/scheduler"
	"github.com/iudanet/quotesync/internal/client/sync"
	"github.com/iudanet/quotesync/internal/merge"
	"github.com/iudanet/quotesync/internal/models"
)

var (
	_ scheduler.Observer = (*Log)(nil)
	_ scheduler.Observer = (*Metrics)(nil)
)

func pendingState(n int) conflicts.State {
	st := conflicts.State{}
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		st.Conflicts = append(st.Conflicts, models.Conflict{
			Local:  models.Record{ID: id},
			Remote: models.Record{ID: id},
		})
	}
	return st
}

func successfulPass() *sync.PassResult {
	start := time.Unix(1_700_000_000, 0)
	return &sync.PassResult{
		Policy:     merge.PolicyAutoRemoteWins,
		StartedAt:  start,
		FinishedAt: start.Add(200 * time.Millisecond),
		Actions: []merge.Action{
			{Type: merge.ActionAddedLocal, ID: "a"},
			{Type: merge.ActionPushedToServer, ID: "b"},
			{Type: merge.ActionPushedToServer, ID: "c", Err: errors.New("remote unavailable")},
		},
		Added:        1,
		LocalPushed:  1,
		PushFailures: 1,
		NewConflicts: 2,
	}
}

func TestMetrics_OnPass(t *testing.T) {
	m := NewMetrics()

	m.OnPass(successfulPass(), pendingState(2))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.passes.WithLabelValues("auto", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("added_local", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("pushed_to_server", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("pushed_to_server", "failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.actions.WithLabelValues("conflict", "queued")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pending))
	assert.Equal(t, 1_700_000_000.0, testutil.ToFloat64(m.lastSuccess))
	assert.Equal(t, 1, testutil.CollectAndCount(m.passDuration))
}

func TestMetrics_OnFailedPass(t *testing.T) {
	m := NewMetrics()

	m.OnPass(&sync.PassResult{Policy: merge.PolicyManual, Err: errors.New("boom")}, pendingState(1))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.passes.WithLabelValues("manual", "failed")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.actions))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.lastSuccess))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pending))
}

func TestMetrics_OnResolution(t *testing.T) {
	m := NewMetrics()

	m.OnResolution(&sync.ResolutionResult{
		Choice:   sync.KeepRemote,
		Resolved: []string{"a", "b"},
		Failed:   []sync.ResolutionFailure{{ID: "c", Err: errors.New("x")}},
	}, pendingState(1))
	m.OnResolution(&sync.ResolutionResult{Choice: sync.Discard, Cleared: 1}, pendingState(0))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues("remote", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("remote", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("discard", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.pending))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.OnPass(successfulPass(), pendingState(0))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "quotesync_sync_passes_total")
	assert.Contains(t, string(body), "quotesync_conflicts_pending")
}

func TestLog_OnPass(t *testing.T) {
	tests := []struct {
		name     string
		result   *sync.PassResult
		contains []string
	}{
		{
			name:     "failed pass",
			result:   &sync.PassResult{Policy: merge.PolicyManual, Err: errors.New("remote unavailable")},
			contains: []string{"level=WARN", "Sync pass failed", "remote unavailable"},
		},
		{
			name:     "push failures",
			result:   successfulPass(),
			contains: []string{"Push failed", "id=c", "push_failures=1"},
		},
		{
			name:     "clean pass",
			result:   &sync.PassResult{Policy: merge.PolicyAutoRemoteWins, Added: 3},
			contains: []string{"level=INFO", "Sync pass completed", "added=3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			o := NewLog(slog.New(slog.NewTextHandler(&buf, nil)))

			o.OnPass(tt.result, pendingState(0))

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestLog_OnResolution(t *testing.T) {
	var buf bytes.Buffer
	o := NewLog(slog.New(slog.NewTextHandler(&buf, nil)))

	o.OnResolution(&sync.ResolutionResult{
		Choice:   sync.KeepLocal,
		Resolved: []string{"a"},
		Failed:   []sync.ResolutionFailure{{ID: "b", Err: errors.New("remote unavailable")}},
	}, pendingState(1))

	out := buf.String()
	assert.Contains(t, out, "Conflict resolution failed")
	assert.Contains(t, out, "id=b")
	assert.Contains(t, out, "choice=local")
	assert.Contains(t, out, "resolved=1")
	assert.Contains(t, out, "pending_conflicts=1")
}
