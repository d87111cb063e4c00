package resource

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource is an independently uploaded attachment. Memos only hold
// associations to it; the blob itself is never served through memo views.
type Resource struct {
	ID           uint64 `gorm:"primaryKey"`
	UID          string `gorm:"uniqueIndex;not null"`
	CreatorID    uint64 `gorm:"index;not null"`
	Filename     string `gorm:"not null"`
	Type         string `gorm:"not null;default:''"`
	Size         int64  `gorm:"not null;default:0"`
	ExternalLink string `gorm:"type:text;not null;default:''"`
	Blob         []byte
	CreatedTs    int64 `gorm:"not null"`
}

func (r *Resource) BeforeCreate(_ *gorm.DB) error {
	if r.UID == "" {
		r.UID = uuid.NewString()
	}
	if r.CreatedTs == 0 {
		r.CreatedTs = time.Now().Unix()
	}
	return nil
}
