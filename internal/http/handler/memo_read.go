package handler

import (
	"net/http"
	"strconv"
	"strings"

	"jot/internal/auth"
	"jot/internal/memo"
)

type MemoReadHandler struct {
	Svc *memo.Service
}

func (h *MemoReadHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.PrincipalFromContext(r.Context())

	id, err := memoID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	v, err := h.Svc.Get(r.Context(), u, id)
	if err != nil {
		writeMemoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

func (h *MemoReadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := memo.ListFilter{
		RowStatus:  strings.ToUpper(strings.TrimSpace(q.Get("rowStatus"))),
		Tag:        strings.TrimSpace(q.Get("tag")),
		Visibility: strings.ToUpper(strings.TrimSpace(q.Get("visibility"))),
	}

	if v := strings.TrimSpace(q.Get("creatorId")); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid creatorId")
			return
		}
		f.CreatorID = &id
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		f.Limit = n
	}
	if v := strings.TrimSpace(q.Get("offset")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		f.Offset = n
	}

	views, err := h.Svc.List(r.Context(), f)
	if err != nil {
		writeMemoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *MemoReadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.GetStats(r.Context())
	if err != nil {
		writeMemoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
