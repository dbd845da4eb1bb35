package postgres

import (
	"time"

	"github.com/google/uuid"
)

/*
 * 'Team' is a second aggregate root: a group of players taking part in a
 * hunt. It is persisted through the same generic repository contract as
 * Game; the composite (ID, GameID) key backs the two-argument scoped fetch.
 */
type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"size:100;not null"`
	Score     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
