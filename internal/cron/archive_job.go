package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/phonemechanic/repair-ledger/pkg/logger"
	"github.com/phonemechanic/repair-ledger/pkg/metrics"
	"gorm.io/gorm"
)

const defaultRetentionMonths = 6

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type archiveRepo interface {
	ArchiveBefore(ctx context.Context, tx *gorm.DB, cutoff, archivedAt time.Time) (int64, error)
}

// ArchiveJobParams configure the transaction archive job.
type ArchiveJobParams struct {
	Logger          *logger.Logger
	DB              txRunner
	Repository      archiveRepo
	Metrics         *metrics.CronJobMetrics
	RetentionMonths int
	Location        *time.Location
}

// NewArchiveJob builds the job that moves transactions older than the
// retention window into the archive table.
func NewArchiveJob(params ArchiveJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("archive repository required")
	}
	retention := params.RetentionMonths
	if retention <= 0 {
		retention = defaultRetentionMonths
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &archiveJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		metrics:   params.Metrics,
		retention: retention,
		loc:       loc,
		now:       time.Now,
	}, nil
}

type archiveJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      archiveRepo
	metrics   *metrics.CronJobMetrics
	retention int
	loc       *time.Location
	now       func() time.Time
}

func (j *archiveJob) Name() string { return "transaction-archive" }

func (j *archiveJob) Run(ctx context.Context) error {
	now := j.now()
	cutoff := archiveCutoff(now, j.loc, j.retention)
	var moved int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.ArchiveBefore(ctx, tx, cutoff, now.UTC())
		if err != nil {
			return err
		}
		moved = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("archive transactions: %w", err)
	}
	j.metrics.AddArchived(int(moved))

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":           cutoff.Format("2006-01-02"),
		"retention_months": j.retention,
		"rows_archived":    moved,
	})
	if moved == 0 {
		j.logg.Info(logCtx, "no transactions to archive")
		return nil
	}
	j.logg.Info(logCtx, "transactions archived")
	return nil
}

// archiveCutoff is the shop-local calendar date retention months before now,
// as a UTC midnight comparable with stored transaction dates.
func archiveCutoff(now time.Time, loc *time.Location, months int) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, -months, 0)
}
