package postgres

import (
	"github.com/google/uuid"
)

/*
 * 'Item' is a collectible belonging to exactly one Game. Items live and die
 * with their owning Game (FK cascade on delete).
 */
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	GameID      uuid.UUID `gorm:"type:uuid;not null;index:idx_items_game"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:500"`
	ImageName   string    `gorm:"size:2048"`
}
