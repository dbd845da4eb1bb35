package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

/*
 * 'Coordinate' is the geographic point a hunt is tied to. It is a plain
 * value embedded inside Game and is never persisted on its own.
 */
type Coordinate struct {
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
}

/*
 * 'Game' is the aggregate root of a scavenger hunt. It owns its Coordinate,
 * Items, Ratings and Tags; deleting a Game cascades to Items and Ratings.
 *
 * ID and UserID are assigned once by the service layer and never change
 * afterwards; LastUpdated is refreshed by the service on every update.
 */
type Game struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_games_owner"`
	IsPrivate   bool           `gorm:"not null;index:idx_games_private"`
	Name        string         `gorm:"size:100;not null"`
	Description string         `gorm:"size:500"`
	Address     string         `gorm:"size:200"`
	Country     string         `gorm:"size:100"`
	Coordinate  Coordinate     `gorm:"embedded;embeddedPrefix:coordinate_"`
	ImageName   string         `gorm:"size:2048"`
	Difficulty  int            `gorm:"not null"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"not null"`
	LastUpdated time.Time      `gorm:"not null"`

	// Relationships
	Items   []Item   `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Ratings []Rating `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
 * 'Rating' is a single numeric score left on a Game. Ratings are only ever
 * exposed through the aggregate's average.
 */
type Rating struct {
	ID     uint      `gorm:"primaryKey"`
	GameID uuid.UUID `gorm:"type:uuid;not null;index:idx_ratings_game"`
	Value  int       `gorm:"not null"`
}

// AverageRating returns sum/count over the loaded ratings, 0 when there are
// none. Floating semantics: [3,4] averages to 3.5.
func (g *Game) AverageRating() float64 {
	if len(g.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range g.Ratings {
		sum += r.Value
	}
	return float64(sum) / float64(len(g.Ratings))
}
