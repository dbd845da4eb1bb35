package repositories

import (
	"gorm.io/gorm"

	"github.com/JerishBovas/ScavengerHunt-API/models/postgres"
)

// Games opens a unit of work over the Game aggregate. The scoped Get is an
// owner-scoped fetch (id + owning user).
func Games(db *gorm.DB) *Repository[postgres.Game] {
	return New[postgres.Game](db, Config{
		ScopeColumn: "user_id",
		Preloads:    []string{"Items", "Ratings"},
		Order:       "created_at",
	})
}

// Teams opens a unit of work over the Team aggregate. The scoped Get keys on
// the (id, game_id) composite.
func Teams(db *gorm.DB) *Repository[postgres.Team] {
	return New[postgres.Team](db, Config{
		ScopeColumn: "game_id",
		Order:       "created_at",
	})
}
