package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phonemechanic/repair-ledger/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type fakeArchiveRepo struct {
	lastCutoff     time.Time
	lastArchivedAt time.Time
	called         int
	rows           int64
	err            error
}

func (f *fakeArchiveRepo) ArchiveBefore(ctx context.Context, tx *gorm.DB, cutoff, archivedAt time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	f.lastArchivedAt = archivedAt
	if f.err != nil {
		return 0, f.err
	}
	return f.rows, nil
}

type passthroughTxRunner struct{ calls int }

func (p *passthroughTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	p.calls++
	return fn(nil)
}

func newTestArchiveJob(t *testing.T, repo *fakeArchiveRepo, loc *time.Location) (*archiveJob, *passthroughTxRunner) {
	t.Helper()
	runner := &passthroughTxRunner{}
	jobIface, err := NewArchiveJob(ArchiveJobParams{
		Logger:     testLogger(),
		DB:         runner,
		Repository: repo,
		Metrics:    metrics.NewCronJobMetrics(prometheus.NewRegistry()),
		Location:   loc,
	})
	if err != nil {
		t.Fatalf("NewArchiveJob: %v", err)
	}
	job, ok := jobIface.(*archiveJob)
	if !ok {
		t.Fatalf("expected archiveJob, got %T", jobIface)
	}
	return job, runner
}

func TestArchiveJobUsesShopLocalCutoff(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*60*60)
	now := time.Date(2024, 9, 1, 15, 0, 0, 0, time.UTC)
	repo := &fakeArchiveRepo{rows: 4}
	job, runner := newTestArchiveJob(t, repo, sydney)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expected := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
	if !repo.lastArchivedAt.Equal(now) {
		t.Fatalf("expected archived_at %s, got %s", now, repo.lastArchivedAt)
	}
	if runner.calls != 1 || repo.called != 1 {
		t.Fatalf("expected one transaction, got runner=%d repo=%d", runner.calls, repo.called)
	}
}

func TestArchiveJobDefaults(t *testing.T) {
	job, _ := newTestArchiveJob(t, &fakeArchiveRepo{}, nil)
	if job.retention != defaultRetentionMonths {
		t.Fatalf("expected default retention, got %d", job.retention)
	}
	if job.loc != time.UTC {
		t.Fatalf("expected UTC default location")
	}
	if job.Name() != "transaction-archive" {
		t.Fatalf("unexpected name %s", job.Name())
	}
}

func TestArchiveJobPropagatesError(t *testing.T) {
	job, _ := newTestArchiveJob(t, &fakeArchiveRepo{err: errors.New("boom")}, nil)
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestArchiveCutoff(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	got := archiveCutoff(now, time.UTC, 6)
	want := time.Date(2023, 7, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
