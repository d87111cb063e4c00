package memo

const (
	VisibilityPrivate = "PRIVATE"
	VisibilityPublic  = "PUBLIC"

	StatusNormal   = "NORMAL"
	StatusArchived = "ARCHIVED"
)

// Memo is the primary entity. The numeric id is the only internal join key;
// the uid is the stable externally-facing identifier.
type Memo struct {
	ID         uint64 `gorm:"primaryKey"`
	UID        string `gorm:"uniqueIndex;not null"`
	CreatorID  uint64 `gorm:"index;not null"`
	Content    string `gorm:"type:text;not null"`
	Visibility string `gorm:"not null;default:'PRIVATE'"`
	RowStatus  string `gorm:"index;not null;default:'NORMAL'"`
	CreatedTs  int64  `gorm:"index;not null"`
	UpdatedTs  int64  `gorm:"not null"`
}

// Tag is a normalized hashtag per owner, derived from memo content.
type Tag struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatorID uint64 `gorm:"index;not null"`
	Name      string `gorm:"index;not null"`
}

// MemoTag links a memo to its derived tags.
type MemoTag struct {
	MemoID    uint64 `gorm:"primaryKey"`
	TagID     uint64 `gorm:"primaryKey"`
	CreatorID uint64 `gorm:"index;not null"`
}

// MemoResource links a memo to an attached resource. It carries its own id so
// duplicate references from the client produce duplicate rows, which is
// accepted rather than de-duplicated.
type MemoResource struct {
	ID         uint64 `gorm:"primaryKey"`
	MemoID     uint64 `gorm:"index;not null"`
	ResourceID uint64 `gorm:"index;not null"`
}
