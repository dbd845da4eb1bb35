package postgres

import (
	"time"

	"github.com/google/uuid"
)

/*
 * 'User' is the account a session principal resolves to. Account creation
 * and credential handling live outside this service; the game endpoints only
 * ever look a user up by the email stored in the session.
 */
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"size:100;not null;uniqueIndex"`
	Name        string    `gorm:"size:100"`
	ImageName   string    `gorm:"size:2048"`
	MemberSince time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
