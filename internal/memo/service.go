package memo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"jot/internal/auth"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmptyContent = errors.New("content required")
)

// Service orchestrates the memo lifecycle. Create and Update intentionally
// run the row write, association replacement and tag sync as separate
// statements with no wrapping transaction: a transiently incomplete memo is
// accepted behavior, and a tag sync failure never aborts the mutation.
type Service struct {
	DB   *gorm.DB
	Tags TagSyncer
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Tags: &Syncer{DB: db}}
}

type CreateMemoInput struct {
	Content        string
	Visibility     string
	ResourceIDList []uint64
	Resources      []ResourceRef
}

// UpdateMemoInput changes only the fields that are non-nil. A non-nil empty
// resource list clears all associations; a nil one leaves them untouched.
type UpdateMemoInput struct {
	Content        *string
	Visibility     *string
	ResourceIDList *[]uint64
	Resources      *[]ResourceRef
}

func (s *Service) Create(ctx context.Context, creator *auth.User, in CreateMemoInput) (*MemoView, error) {
	if creator == nil {
		return nil, ErrUnauthorized
	}
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, ErrEmptyContent
	}
	if in.Visibility == "" {
		in.Visibility = VisibilityPrivate
	}

	now := time.Now().Unix()
	m := Memo{
		UID:        uuid.NewString(),
		CreatorID:  creator.ID,
		Content:    in.Content,
		Visibility: in.Visibility,
		RowStatus:  StatusNormal,
		CreatedTs:  now,
		UpdatedTs:  now,
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}

	ids := ResolveResourceIDs(ctx, s.DB, in.ResourceIDList, in.Resources)
	if err := s.replaceAssociations(ctx, m.ID, ids, false); err != nil {
		return nil, err
	}

	if err := s.Tags.Sync(ctx, m.ID, creator.ID, m.Content); err != nil {
		log.Warn().Err(err).Uint64("memo", m.ID).Msg("tag sync failed, memo kept")
	}

	return s.Assemble(ctx, m.ID)
}

func (s *Service) Update(ctx context.Context, requester *auth.User, id uint64, in UpdateMemoInput) (*MemoView, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrUnauthorized
	}
	if !CanWrite(m, requester) {
		return nil, ErrForbidden
	}

	contentChanged := false
	if in.Content != nil {
		c := strings.TrimSpace(*in.Content)
		if c == "" {
			return nil, ErrEmptyContent
		}
		contentChanged = c != m.Content
		m.Content = c
	}
	if in.Visibility != nil {
		m.Visibility = *in.Visibility
	}
	m.UpdatedTs = time.Now().Unix()

	if err := s.DB.WithContext(ctx).Save(m).Error; err != nil {
		return nil, fmt.Errorf("update memo %d: %w", id, err)
	}

	if in.ResourceIDList != nil || in.Resources != nil {
		var ids []uint64
		var refs []ResourceRef
		if in.ResourceIDList != nil {
			ids = *in.ResourceIDList
		}
		if in.Resources != nil {
			refs = *in.Resources
		}
		final := ResolveResourceIDs(ctx, s.DB, ids, refs)
		if err := s.replaceAssociations(ctx, m.ID, final, true); err != nil {
			return nil, err
		}
	}

	if contentChanged {
		if err := s.Tags.Sync(ctx, m.ID, m.CreatorID, m.Content); err != nil {
			log.Warn().Err(err).Uint64("memo", m.ID).Msg("tag sync failed, update kept")
		}
	}

	return s.Assemble(ctx, m.ID)
}

// Archive soft-deletes: the row stays, default listings exclude it. The
// transition is one-way and repeatable, but every call still passes the
// write guard.
func (s *Service) Archive(ctx context.Context, requester *auth.User, id uint64) error {
	m, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if requester == nil {
		return ErrUnauthorized
	}
	if !CanWrite(m, requester) {
		return ErrForbidden
	}

	err = s.DB.WithContext(ctx).Model(&Memo{}).Where("id = ?", id).
		Updates(map[string]any{
			"row_status": StatusArchived,
			"updated_ts": time.Now().Unix(),
		}).Error
	if err != nil {
		return fmt.Errorf("archive memo %d: %w", id, err)
	}
	return nil
}

// Get applies the read guard before handing out the assembled view. A private
// memo read by a non-owner reports forbidden, not not-found; list endpoints
// hide the same memo by filtering instead. Both behaviors are kept as-is.
func (s *Service) Get(ctx context.Context, requester *auth.User, id uint64) (*MemoView, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanRead(m, requester) {
		return nil, ErrForbidden
	}
	return s.Assemble(ctx, id)
}

func (s *Service) load(ctx context.Context, id uint64) (*Memo, error) {
	var m Memo
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load memo %d: %w", id, err)
	}
	return &m, nil
}

// replaceAssociations inserts the given association rows in order. When wipe
// is set all existing rows go first, so an explicit empty list clears the
// memo's attachments entirely.
func (s *Service) replaceAssociations(ctx context.Context, memoID uint64, ids []uint64, wipe bool) error {
	if wipe {
		if err := s.DB.WithContext(ctx).
			Where("memo_id = ?", memoID).
			Delete(&MemoResource{}).Error; err != nil {
			return fmt.Errorf("clear memo %d resources: %w", memoID, err)
		}
	}
	for _, rid := range ids {
		link := MemoResource{MemoID: memoID, ResourceID: rid}
		if err := s.DB.WithContext(ctx).Create(&link).Error; err != nil {
			return fmt.Errorf("associate resource %d: %w", rid, err)
		}
	}
	return nil
}
