package memo

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"jot/internal/resource"
)

// ResourceRef is the structured resource input shape. Name encodes the
// resource uid as the trailing segment of "resources/<uid>".
type ResourceRef struct {
	Name string
}

// UID returns the trailing path segment of the reference name.
func (r ResourceRef) UID() string {
	if i := strings.LastIndexByte(r.Name, '/'); i >= 0 {
		return r.Name[i+1:]
	}
	return r.Name
}

// ResolveResourceIDs normalizes the dual-shape resource input into one final
// id list. Structured references win over a parallel raw-id list. Each
// reference is resolved independently and a miss is dropped, never an error:
// the resolver is best-effort and must not fail the containing operation.
// Order follows input order and duplicates are kept.
func ResolveResourceIDs(ctx context.Context, db *gorm.DB, ids []uint64, refs []ResourceRef) []uint64 {
	if len(refs) == 0 {
		return ids
	}

	out := make([]uint64, 0, len(refs))
	for _, ref := range refs {
		uid := ref.UID()
		if uid == "" {
			log.Warn().Str("name", ref.Name).Msg("resource reference without uid dropped")
			continue
		}
		var r resource.Resource
		if err := db.WithContext(ctx).Where("uid = ?", uid).First(&r).Error; err != nil {
			log.Warn().Err(err).Str("name", ref.Name).Msg("unresolved resource reference dropped")
			continue
		}
		out = append(out, r.ID)
	}
	return out
}
