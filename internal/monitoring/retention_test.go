package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/isdelr/issue-tracker-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAudit struct {
	pruneCutoff time.Time
	pruneCalls  int
	pruneErr    error
}

func (f *fakeAudit) Record(actor, action string) {}

func (f *fakeAudit) List() ([]models.LogEntry, error) { return nil, nil }

func (f *fakeAudit) PruneBefore(cutoff time.Time) (int64, error) {
	f.pruneCalls++
	f.pruneCutoff = cutoff
	return 3, f.pruneErr
}

func TestNewRetentionSweeperValidation(t *testing.T) {
	audit := &fakeAudit{}

	_, err := NewRetentionSweeper(audit, "not a cron spec", 30)
	assert.Error(t, err)

	_, err = NewRetentionSweeper(audit, "0 3 * * *", 0)
	assert.Error(t, err)

	_, err = NewRetentionSweeper(audit, "0 3 * * *", 30)
	assert.NoError(t, err)
}

func TestSweepUsesRetentionWindow(t *testing.T) {
	audit := &fakeAudit{}
	sweeper, err := NewRetentionSweeper(audit, "0 3 * * *", 30)
	require.NoError(t, err)

	at := time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC)
	sweeper.sweep(at)

	assert.Equal(t, 1, audit.pruneCalls)
	assert.Equal(t, at.Add(-30*24*time.Hour), audit.pruneCutoff)
}

func TestSweepSurvivesPruneFailure(t *testing.T) {
	audit := &fakeAudit{pruneErr: errors.New("disk on fire")}
	sweeper, err := NewRetentionSweeper(audit, "0 3 * * *", 7)
	require.NoError(t, err)

	// Must not panic; the failure is logged and the loop keeps running.
	sweeper.sweep(time.Now())
	assert.Equal(t, 1, audit.pruneCalls)
}

func TestRunStops(t *testing.T) {
	audit := &fakeAudit{}
	sweeper, err := NewRetentionSweeper(audit, "0 3 * * *", 7)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		sweeper.Run()
		close(done)
	}()

	sweeper.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
