package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jot/internal/auth"
	"jot/internal/memo"
	"jot/internal/resource"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

// AutoMigrateAndIndexes creates the schema. Index SQL stays dialect-neutral
// so the test suite can run it against sqlite.
func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&resource.Resource{},
		&memo.Memo{},
		&memo.Tag{},
		&memo.MemoTag{},
		&memo.MemoResource{},
	); err != nil {
		return err
	}

	// Tag names are unique per owner
	if err := gdb.Exec(`create unique index if not exists uq_tags_creator_name on tags(creator_id, name);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_memos_creator_status on memos(creator_id, row_status);`,
		`create index if not exists idx_memos_status_visibility on memos(row_status, visibility);`,
		`create index if not exists idx_memos_created on memos(created_ts desc);`,
		`create index if not exists idx_memo_tags_creator_tag on memo_tags(creator_id, tag_id);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
