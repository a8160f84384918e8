package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
	"gorm.io/gorm"
)

const archiveBatchSize = 200

// ArchiveRepository moves aged transactions into archived_transactions.
type ArchiveRepository struct{}

// NewArchiveRepository returns the archive repository. It works on the
// transaction handed to each call.
func NewArchiveRepository() *ArchiveRepository {
	return &ArchiveRepository{}
}

// ArchiveBefore copies every transaction dated before cutoff, trashed or not,
// into the archive table stamped with archivedAt, then deletes the originals.
// Both steps run on tx.
func (ArchiveRepository) ArchiveBefore(ctx context.Context, tx *gorm.DB, cutoff, archivedAt time.Time) (int64, error) {
	var records []models.Transaction
	if err := tx.WithContext(ctx).
		Where("transaction_date < ?", cutoff).
		Order("transaction_date ASC").
		Find(&records).Error; err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	archived := make([]models.ArchivedTransaction, 0, len(records))
	ids := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		archived = append(archived, models.ArchivedTransaction{Transaction: record, ArchivedAt: archivedAt})
		ids = append(ids, record.ID)
	}
	if err := tx.WithContext(ctx).CreateInBatches(&archived, archiveBatchSize).Error; err != nil {
		return 0, err
	}

	result := tx.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
