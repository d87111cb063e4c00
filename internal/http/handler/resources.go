package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"jot/internal/auth"
	"jot/internal/resource"
)

type ResourceHandler struct {
	DB *gorm.DB
}

type createResourceReq struct {
	Filename     string `json:"filename" validate:"required"`
	Type         string `json:"type"`
	Size         int64  `json:"size" validate:"omitempty,gte=0"`
	ExternalLink string `json:"externalLink"`
}

type resourceDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	UID          string `json:"uid"`
	Filename     string `json:"filename"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	ExternalLink string `json:"externalLink"`
	CreateTime   string `json:"createTime"`
}

func toResourceDTO(r resource.Resource) resourceDTO {
	return resourceDTO{
		ID:           r.ID,
		Name:         fmt.Sprintf("resources/%s", r.UID),
		UID:          r.UID,
		Filename:     r.Filename,
		Type:         r.Type,
		Size:         r.Size,
		ExternalLink: r.ExternalLink,
		CreateTime:   time.Unix(r.CreatedTs, 0).UTC().Format(time.RFC3339),
	}
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.PrincipalFromContext(r.Context())

	var req createResourceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	res := resource.Resource{
		CreatorID:    u.ID,
		Filename:     req.Filename,
		Type:         req.Type,
		Size:         req.Size,
		ExternalLink: req.ExternalLink,
	}
	if err := h.DB.WithContext(r.Context()).Create(&res).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, toResourceDTO(res))
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.PrincipalFromContext(r.Context())

	var rows []resource.Resource
	if err := h.DB.WithContext(r.Context()).
		Where("creator_id = ?", u.ID).
		Order("created_ts desc").
		Find(&rows).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]resourceDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toResourceDTO(row))
	}
	writeJSON(w, http.StatusOK, out)
}
