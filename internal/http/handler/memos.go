package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"jot/internal/auth"
	"jot/internal/memo"
)

type MemoHandler struct {
	Svc *memo.Service
}

type resourceRef struct {
	Name string `json:"name"`
}

func toRefs(in []resourceRef) []memo.ResourceRef {
	out := make([]memo.ResourceRef, 0, len(in))
	for _, r := range in {
		out = append(out, memo.ResourceRef{Name: r.Name})
	}
	return out
}

type createMemoReq struct {
	Content        string        `json:"content" validate:"required"`
	Visibility     string        `json:"visibility" validate:"omitempty,oneof=PRIVATE PUBLIC"`
	ResourceIDList []uint64      `json:"resourceIdList"`
	Resources      []resourceRef `json:"resources"`
}

func (h *MemoHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.PrincipalFromContext(r.Context())

	var req createMemoReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	v, err := h.Svc.Create(r.Context(), u, memo.CreateMemoInput{
		Content:        req.Content,
		Visibility:     req.Visibility,
		ResourceIDList: req.ResourceIDList,
		Resources:      toRefs(req.Resources),
	})
	if err != nil {
		writeMemoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

// updateMemoReq distinguishes absent fields (nil) from explicitly empty ones:
// an omitted resource list leaves associations alone, an empty one clears them.
type updateMemoReq struct {
	Content        *string        `json:"content"`
	Visibility     *string        `json:"visibility" validate:"omitempty,oneof=PRIVATE PUBLIC"`
	ResourceIDList *[]uint64      `json:"resourceIdList"`
	Resources      *[]resourceRef `json:"resources"`
}

func (h *MemoHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.PrincipalFromContext(r.Context())

	id, err := memoID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateMemoReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	in := memo.UpdateMemoInput{
		Content:        req.Content,
		Visibility:     req.Visibility,
		ResourceIDList: req.ResourceIDList,
	}
	if req.Resources != nil {
		refs := toRefs(*req.Resources)
		in.Resources = &refs
	}

	v, err := h.Svc.Update(r.Context(), u, id, in)
	if err != nil {
		writeMemoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

func (h *MemoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.PrincipalFromContext(r.Context())

	id, err := memoID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.Svc.Archive(r.Context(), u, id); err != nil {
		writeMemoError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func memoID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}
