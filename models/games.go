package models

import (
	"github.com/google/uuid"
)

// Coordinate is the wire form of a game's geographic point.
type Coordinate struct {
	Latitude  float64 `json:"latitude" binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
}

// GameSummary is the lightweight list projection: identifying fields plus
// the average rating, without the item set.
type GameSummary struct {
	ID          uuid.UUID  `json:"id"`
	IsPrivate   bool       `json:"isPrivate"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Country     string     `json:"country"`
	Coordinate  Coordinate `json:"coordinate"`
	ImageName   string     `json:"imageName"`
	Difficulty  int        `json:"difficulty"`
	Rating      float64    `json:"rating"`
	Tags        []string   `json:"tags"`
}

// ItemSummary is an item as shown inside a game's detail view.
type ItemSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageName   string    `json:"imageName"`
}

// GameDetail is the full projection returned by the fetch-by-id endpoint.
type GameDetail struct {
	ID          uuid.UUID     `json:"id"`
	IsPrivate   bool          `json:"isPrivate"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Address     string        `json:"address"`
	Country     string        `json:"country"`
	Coordinate  Coordinate    `json:"coordinate"`
	Items       []ItemSummary `json:"items"`
	ImageName   string        `json:"imageName"`
	Difficulty  int           `json:"difficulty"`
	Rating      float64       `json:"rating"`
	Tags        []string      `json:"tags"`
}

// GameUpsert is the payload for both create and update. Id, owner and
// timestamps are always server-assigned and have no place here.
type GameUpsert struct {
	IsPrivate   bool        `json:"isPrivate"`
	Name        string      `json:"name" binding:"required,max=100"`
	Description string      `json:"description" binding:"max=500"`
	Address     string      `json:"address" binding:"required,max=200"`
	Country     string      `json:"country" binding:"required,max=100"`
	Coordinate  *Coordinate `json:"coordinate" binding:"required"`
	ImageName   string      `json:"imageName" binding:"max=2048"`
	Difficulty  int         `json:"difficulty" binding:"required,gte=1,lte=5"`
	Tags        []string    `json:"tags" binding:"max=20,dive,max=50"`
}
