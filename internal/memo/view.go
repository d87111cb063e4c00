package memo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jot/internal/resource"
)

// ResourceView is the projection of an attached resource inside a memo view.
// Blob bytes and the external link are deliberately emptied: serving raw
// resource content inline is never the aggregator's job.
type ResourceView struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	UID          string `json:"uid"`
	Filename     string `json:"filename"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	ExternalLink string `json:"externalLink"`
	CreateTime   string `json:"createTime"`
	Memo         string `json:"memo"`
}

// MemoView is the fully assembled client-facing representation of a memo.
type MemoView struct {
	ID             uint64         `json:"id"`
	UID            string         `json:"uid"`
	Name           string         `json:"name"`
	CreatorID      uint64         `json:"creatorId"`
	CreatorName    string         `json:"creatorName"`
	Content        string         `json:"content"`
	Visibility     string         `json:"visibility"`
	RowStatus      string         `json:"rowStatus"`
	CreatedTs      int64          `json:"createdTs"`
	UpdatedTs      int64          `json:"updatedTs"`
	ResourceIDList []uint64       `json:"resourceIdList"`
	ResourceList   []ResourceView `json:"resourceList"`
	Tags           []string       `json:"tags"`
}

// ListFilter selects memos for List. Zero values mean "no filter" except
// RowStatus, which defaults to NORMAL.
type ListFilter struct {
	RowStatus  string
	CreatorID  *uint64
	Tag        string
	Visibility string
	Limit      int
	Offset     int
}

type DailyCount struct {
	Ts    int64 `json:"ts"`
	Count int64 `json:"count"`
}

type Stats struct {
	Total          int64        `json:"total"`
	DailyHistogram []DailyCount `json:"dailyHistogram"`
}

type memoRow struct {
	ID          uint64
	UID         string
	CreatorID   uint64
	CreatorName string
	Content     string
	Visibility  string
	RowStatus   string
	CreatedTs   int64
	UpdatedTs   int64
}

// Assemble composes one memo with its owner's display name, resource
// projections and tag names into a single view.
func (s *Service) Assemble(ctx context.Context, id uint64) (*MemoView, error) {
	var row memoRow
	err := s.DB.WithContext(ctx).
		Table("memos").
		Select("memos.*, coalesce(users.nickname, '') as creator_name").
		Joins("left join users on users.id = memos.creator_id").
		Where("memos.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load memo %d: %w", id, err)
	}

	v := &MemoView{
		ID:             row.ID,
		UID:            row.UID,
		Name:           fmt.Sprintf("memos/%s", row.UID),
		CreatorID:      row.CreatorID,
		CreatorName:    row.CreatorName,
		Content:        row.Content,
		Visibility:     row.Visibility,
		RowStatus:      row.RowStatus,
		CreatedTs:      row.CreatedTs,
		UpdatedTs:      row.UpdatedTs,
		ResourceIDList: []uint64{},
		ResourceList:   []ResourceView{},
		Tags:           []string{},
	}

	var links []MemoResource
	if err := s.DB.WithContext(ctx).
		Where("memo_id = ?", id).Order("id asc").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("load memo %d resources: %w", id, err)
	}

	if len(links) > 0 {
		ids := make([]uint64, 0, len(links))
		for _, l := range links {
			ids = append(ids, l.ResourceID)
		}
		var rs []resource.Resource
		if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rs).Error; err != nil {
			return nil, fmt.Errorf("load resources: %w", err)
		}
		byID := make(map[uint64]resource.Resource, len(rs))
		for _, r := range rs {
			byID[r.ID] = r
		}
		// association order, duplicates included
		for _, l := range links {
			r, ok := byID[l.ResourceID]
			if !ok {
				continue
			}
			v.ResourceIDList = append(v.ResourceIDList, r.ID)
			v.ResourceList = append(v.ResourceList, ResourceView{
				ID:           r.ID,
				Name:         fmt.Sprintf("resources/%s", r.UID),
				UID:          r.UID,
				Filename:     r.Filename,
				Type:         r.Type,
				Size:         r.Size,
				ExternalLink: "",
				CreateTime:   time.Unix(r.CreatedTs, 0).UTC().Format(time.RFC3339),
				Memo:         v.Name,
			})
		}
	}

	if err := s.DB.WithContext(ctx).
		Table("tags").
		Joins("join memo_tags on memo_tags.tag_id = tags.id").
		Where("memo_tags.memo_id = ?", id).
		Order("tags.id asc").
		Pluck("tags.name", &v.Tags).Error; err != nil {
		return nil, fmt.Errorf("load memo %d tags: %w", id, err)
	}

	return v, nil
}

// List returns assembled views matching the filter, newest first. When
// neither a visibility nor a creator filter is given only public memos are
// returned; a creator filter lifts the visibility restriction (coarse list
// policy, row-level checks still apply on direct fetches).
func (s *Service) List(ctx context.Context, f ListFilter) ([]*MemoView, error) {
	status := f.RowStatus
	if status == "" {
		status = StatusNormal
	}

	q := s.DB.WithContext(ctx).Model(&Memo{}).Where("memos.row_status = ?", status)

	if f.CreatorID != nil {
		q = q.Where("memos.creator_id = ?", *f.CreatorID)
	}
	if f.Visibility != "" {
		q = q.Where("memos.visibility = ?", f.Visibility)
	} else if f.CreatorID == nil {
		q = q.Where("memos.visibility = ?", VisibilityPublic)
	}
	if f.Tag != "" {
		q = q.
			Joins("join memo_tags on memo_tags.memo_id = memos.id").
			Joins("join tags on tags.id = memo_tags.tag_id").
			Where("tags.name = ?", f.Tag)
	}

	q = q.Order("memos.created_ts desc").Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var ids []uint64
	if err := q.Pluck("memos.id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}

	out := make([]*MemoView, 0, len(ids))
	for _, id := range ids {
		v, err := s.Assemble(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// GetStats counts public normal memos and buckets the trailing 30 days by
// calendar date. The date is derived in store SQL so bucket boundaries stay
// consistent with whatever the store does elsewhere.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	st := &Stats{DailyHistogram: []DailyCount{}}

	if err := s.DB.WithContext(ctx).Model(&Memo{}).
		Where("row_status = ? AND visibility = ?", StatusNormal, VisibilityPublic).
		Count(&st.Total).Error; err != nil {
		return nil, fmt.Errorf("count memos: %w", err)
	}

	since := time.Now().AddDate(0, 0, -30).Unix()

	var sql string
	switch s.DB.Dialector.Name() {
	case "sqlite":
		sql = `
select cast(strftime('%s', created_ts, 'unixepoch', 'start of day') as integer) as ts,
       count(*) as count
from memos
where row_status = ? and visibility = ? and created_ts >= ?
group by ts
order by ts desc`
	default: // postgres
		sql = `
select extract(epoch from date_trunc('day', to_timestamp(created_ts)))::bigint as ts,
       count(*) as count
from memos
where row_status = ? and visibility = ? and created_ts >= ?
group by ts
order by ts desc`
	}

	if err := s.DB.WithContext(ctx).
		Raw(sql, StatusNormal, VisibilityPublic, since).
		Scan(&st.DailyHistogram).Error; err != nil {
		return nil, fmt.Errorf("memo histogram: %w", err)
	}

	return st, nil
}
