package memo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var hashtagRe = regexp.MustCompile(`#([a-zA-Z0-9_]{1,32})`)

func ExtractTags(content string) []string {
	matches := hashtagRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(matches))

	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		t := strings.ToLower(m[1])
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)

		if len(out) >= 20 { // cap
			break
		}
	}

	return out
}

// TagSyncer reconciles the stored tag index against a memo's current content.
// Callers treat a failed sync as non-fatal: they log and keep going.
type TagSyncer interface {
	Sync(ctx context.Context, memoID, creatorID uint64, content string) error
}

// Syncer is the database-backed TagSyncer. After Sync the memo's tag links
// match exactly the set extracted from content: stale links are removed, tag
// rows are created on first use and shared across the owner's memos.
type Syncer struct {
	DB *gorm.DB
}

func (s *Syncer) Sync(ctx context.Context, memoID, creatorID uint64, content string) error {
	names := ExtractTags(content)

	tagIDs := make([]uint64, 0, len(names))
	for _, name := range names {
		var t Tag
		err := s.DB.WithContext(ctx).
			Where("creator_id = ? AND name = ?", creatorID, name).
			First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			t = Tag{CreatorID: creatorID, Name: name}
			err = s.DB.WithContext(ctx).Create(&t).Error
		}
		if err != nil {
			return fmt.Errorf("ensure tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, t.ID)
	}

	// drop links no longer present in the content
	q := s.DB.WithContext(ctx).Where("memo_id = ?", memoID)
	if len(tagIDs) > 0 {
		q = q.Where("tag_id NOT IN ?", tagIDs)
	}
	if err := q.Delete(&MemoTag{}).Error; err != nil {
		return fmt.Errorf("remove stale tag links: %w", err)
	}

	for _, tagID := range tagIDs {
		link := MemoTag{MemoID: memoID, TagID: tagID, CreatorID: creatorID}
		if err := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&link).Error; err != nil {
			return fmt.Errorf("link tag %d: %w", tagID, err)
		}
	}

	return nil
}
