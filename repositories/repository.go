package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by the fetch operations when no row matches,
// including the scoped Get when the row exists but the scope key differs.
var ErrNotFound = errors.New("record not found")

// Config binds a Repository to one aggregate table.
type Config struct {
	// ScopeColumn is the second key component used by Get: a fetch only
	// succeeds when this column matches the supplied value.
	ScopeColumn string
	// Preloads are the association paths loaded with every read.
	Preloads []string
	// Order is the deterministic ordering applied to GetAll.
	Order string
}

/*
 * Repository is a keyed-aggregate persistence gateway with unit-of-work
 * semantics: reads run immediately, writes are staged and only hit the
 * database when SaveChanges commits them inside a single transaction.
 *
 * One Repository instance belongs to one request; it is not safe for
 * concurrent use.
 */
type Repository[T any] struct {
	db     *gorm.DB
	cfg    Config
	staged []func(tx *gorm.DB) error
}

func New[T any](db *gorm.DB, cfg Config) *Repository[T] {
	return &Repository[T]{db: db, cfg: cfg}
}

func (r *Repository[T]) reader() *gorm.DB {
	tx := r.db
	for _, p := range r.cfg.Preloads {
		tx = tx.Preload(p)
	}
	return tx
}

// GetAll returns every aggregate regardless of visibility; filtering is the
// caller's concern.
func (r *Repository[T]) GetAll() ([]T, error) {
	var entities []T
	tx := r.reader()
	if r.cfg.Order != "" {
		tx = tx.Order(r.cfg.Order)
	}
	if err := tx.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("fetching all records: %w", err)
	}
	return entities, nil
}

// GetByID returns the full aggregate, or ErrNotFound.
func (r *Repository[T]) GetByID(id uuid.UUID) (*T, error) {
	var entity T
	err := r.reader().Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching record %s: %w", id, err)
	}
	return &entity, nil
}

// Get is the scoped fetch: it reports ErrNotFound both when the id is absent
// and when the row's scope column does not match, so callers cannot tell the
// two cases apart.
func (r *Repository[T]) Get(id, scope uuid.UUID) (*T, error) {
	var entity T
	err := r.reader().
		Where(fmt.Sprintf("id = ? AND %s = ?", r.cfg.ScopeColumn), id, scope).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching record %s: %w", id, err)
	}
	return &entity, nil
}

// Create stages insertion of a new aggregate. The caller must have assigned
// the primary key already.
func (r *Repository[T]) Create(entity *T) {
	r.staged = append(r.staged, func(tx *gorm.DB) error {
		return tx.Create(entity).Error
	})
}

// Update stages a full replacement by primary key. Associations are left
// untouched; a missing row makes the staged update a no-op.
func (r *Repository[T]) Update(entity *T) {
	r.staged = append(r.staged, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(entity).Error
	})
}

// Delete stages removal of the aggregate. Dependent rows are removed by the
// schema's FK cascade.
func (r *Repository[T]) Delete(entity *T) {
	r.staged = append(r.staged, func(tx *gorm.DB) error {
		return tx.Delete(entity).Error
	})
}

// SaveChanges commits everything staged since the last commit in one
// transaction. On failure nothing is persisted. The staged list is cleared
// either way.
func (r *Repository[T]) SaveChanges() error {
	ops := r.staged
	r.staged = nil
	if len(ops) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := op(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("committing staged changes: %w", err)
	}
	return nil
}
