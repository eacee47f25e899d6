package model

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"folder_id"`
	FolderName string    `gorm:"type:varchar(255)" json:"folder_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Folder) TableName() string {
	return "folders"
}
