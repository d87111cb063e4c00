package memo_test

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jot/internal/auth"
	"jot/internal/db"
	"jot/internal/memo"
	"jot/internal/resource"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "jot.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, email, role string) *auth.User {
	t.Helper()

	u := &auth.User{
		UID:          email,
		Email:        email,
		PasswordHash: "irrelevant",
		Nickname:     email,
		Role:         role,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func createResource(t *testing.T, gdb *gorm.DB, creatorID uint64, uid, filename string) *resource.Resource {
	t.Helper()

	r := &resource.Resource{UID: uid, CreatorID: creatorID, Filename: filename}
	if err := gdb.Create(r).Error; err != nil {
		t.Fatalf("create resource %s: %v", uid, err)
	}
	return r
}

func memoTagNames(t *testing.T, gdb *gorm.DB, memoID uint64) []string {
	t.Helper()

	var names []string
	err := gdb.Table("tags").
		Joins("join memo_tags on memo_tags.tag_id = tags.id").
		Where("memo_tags.memo_id = ?", memoID).
		Order("tags.name asc").
		Pluck("tags.name", &names).Error
	if err != nil {
		t.Fatalf("load tag names: %v", err)
	}
	return names
}

func associatedResourceIDs(t *testing.T, gdb *gorm.DB, memoID uint64) []uint64 {
	t.Helper()

	var links []memo.MemoResource
	if err := gdb.Where("memo_id = ?", memoID).Order("id asc").Find(&links).Error; err != nil {
		t.Fatalf("load associations: %v", err)
	}
	out := make([]uint64, 0, len(links))
	for _, l := range links {
		out = append(out, l.ResourceID)
	}
	return out
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
