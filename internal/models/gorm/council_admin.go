package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/models/entities"
)

type CouncilAdmin struct {
	ID        string              `gorm:"column:id;primaryKey;type:uuid"`
	UserID    string              `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	CouncilID *string             `gorm:"column:council_id;type:uuid"`
	Role      constants.AdminRole `gorm:"column:role;type:text;not null"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (CouncilAdmin) TableName() string {
	return constants.TableCouncilAdmins
}

// BeforeCreate assigns the id client-side so inserts behave the same on Postgres and SQLite
func (c *CouncilAdmin) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ToEntity converts the row to the shape the table API returns
func (c CouncilAdmin) ToEntity() entities.CouncilAdmin {
	return entities.CouncilAdmin{
		ID:        c.ID,
		UserID:    c.UserID,
		CouncilID: c.CouncilID,
		Role:      c.Role,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
