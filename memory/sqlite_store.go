package memory

import (
	"context"
	"time"

	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SqliteStore persists memories in SQLite through gorm. Embeddings are kept
// as JSON columns and similarity is always computed by a full scan in the
// caller, so retrieval semantics are identical to the in-memory store.
type SqliteStore struct {
	gormDB *gorm.DB
}

type MemoryRecord struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Content         string `gorm:"not null"`
	Embedding       datatypes.JSONSlice[float32]
	ImportanceScore float64
}

func (MemoryRecord) TableName() string {
	return "memories"
}

var (
	_ Store = (*SqliteStore)(nil)
)

func NewSqliteStore(path string) (*SqliteStore, error) {
	gormDB, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(&MemoryRecord{}); err != nil {
		return nil, errors.Wrapf(err, "failed to migrate memories table")
	}

	return &SqliteStore{gormDB: gormDB}, nil
}

func (s *SqliteStore) Create(ctx context.Context, content string, embedding []float32, importance float64) (*Memory, error) {
	if content == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "content is empty")
	}
	if len(embedding) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "embedding is empty")
	}

	_, tx := db.OpenSession(ctx, s.gormDB)

	var first MemoryRecord
	if r := tx.Order("id ASC").Limit(1).Find(&first); r.Error != nil {
		return nil, errors.Wrapf(r.Error, "failed to read first memory")
	} else if r.RowsAffected > 0 && len(first.Embedding) != len(embedding) {
		return nil, errors.Wrapf(errors.ErrDimensionMismatch,
			"store holds %d-dimensional embeddings, got %d", len(first.Embedding), len(embedding))
	}

	record := MemoryRecord{
		Content:         content,
		Embedding:       datatypes.NewJSONSlice(copyEmbedding(embedding)),
		ImportanceScore: importance,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to create memory")
	}

	return record.toMemory(), nil
}

func (s *SqliteStore) List(ctx context.Context) ([]*Memory, error) {
	_, tx := db.OpenSession(ctx, s.gormDB)

	var records []MemoryRecord
	if err := tx.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list memories")
	}

	return toMemories(records), nil
}

func (s *SqliteStore) All(ctx context.Context) ([]*Memory, error) {
	_, tx := db.OpenSession(ctx, s.gormDB)

	var records []MemoryRecord
	if err := tx.Order("id ASC").Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to scan memories")
	}

	return toMemories(records), nil
}

func (s *SqliteStore) Delete(ctx context.Context, id uint) error {
	_, tx := db.OpenSession(ctx, s.gormDB)

	r := tx.Delete(&MemoryRecord{}, "id = ?", id)
	if r.Error != nil {
		return errors.Wrapf(r.Error, "failed to delete memory %d", id)
	}
	if r.RowsAffected == 0 {
		return errors.Wrapf(errors.ErrNotFound, "memory %d", id)
	}

	return nil
}

func (s *SqliteStore) Clear(ctx context.Context) error {
	_, tx := db.OpenSession(ctx, s.gormDB)

	if err := tx.Where("1 = 1").Delete(&MemoryRecord{}).Error; err != nil {
		return errors.Wrapf(err, "failed to clear memories")
	}

	return nil
}

func (s *SqliteStore) Count(ctx context.Context) (int64, error) {
	_, tx := db.OpenSession(ctx, s.gormDB)

	var count int64
	if err := tx.Model(&MemoryRecord{}).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "failed to count memories")
	}

	return count, nil
}

func (s *SqliteStore) Close() error {
	return db.CloseDB(s.gormDB)
}

func (r *MemoryRecord) toMemory() *Memory {
	return &Memory{
		ID:              r.ID,
		Content:         r.Content,
		Embedding:       copyEmbedding(r.Embedding),
		ImportanceScore: r.ImportanceScore,
		CreatedAt:       r.CreatedAt,
	}
}

func toMemories(records []MemoryRecord) []*Memory {
	results := make([]*Memory, len(records))
	for i := range records {
		results[i] = records[i].toMemory()
	}
	return results
}
