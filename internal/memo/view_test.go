package memo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jot/internal/auth"
	"jot/internal/memo"
	"jot/internal/resource"
)

func TestAssembleResourceProjection(t *testing.T) {
	gdb := openDB(t)
	svc := memo.NewService(gdb)
	ctx := context.Background()
	owner := createUser(t, gdb, "alice@example.com", auth.RoleUser)

	r := &resource.Resource{
		UID:          "abc123",
		CreatorID:    owner.ID,
		Filename:     "photo.png",
		Type:         "image/png",
		Size:         2048,
		ExternalLink: "https://cdn.example.com/photo.png",
		Blob:         []byte{0x89, 0x50},
	}
	if err := gdb.Create(r).Error; err != nil {
		t.Fatal(err)
	}

	v, err := svc.Create(ctx, owner, memo.CreateMemoInput{
		Content:        "see #photo",
		ResourceIDList: []uint64{r.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Assemble(ctx, v.ID)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if got.Name != "memos/"+got.UID {
		t.Errorf("memo name = %q", got.Name)
	}
	if got.CreatorName != "alice@example.com" {
		t.Errorf("creatorName = %q", got.CreatorName)
	}

	if len(got.ResourceList) != 1 {
		t.Fatalf("resourceList has %d entries", len(got.ResourceList))
	}
	rv := got.ResourceList[0]
	if rv.Name != "resources/abc123" {
		t.Errorf("resource name = %q", rv.Name)
	}
	if rv.Memo != got.Name {
		t.Errorf("resource back-ref = %q, want %q", rv.Memo, got.Name)
	}
	if rv.ExternalLink != "" {
		t.Errorf("externalLink not emptied: %q", rv.ExternalLink)
	}
	if rv.Filename != "photo.png" || rv.Type != "image/png" || rv.Size != 2048 {
		t.Errorf("resource metadata wrong: %+v", rv)
	}
	if _, err := time.Parse(time.RFC3339, rv.CreateTime); err != nil {
		t.Errorf("createTime %q is not RFC3339: %v", rv.CreateTime, err)
	}

	if !equalIDs(got.ResourceIDList, []uint64{r.ID}) {
		t.Errorf("resourceIdList = %v", got.ResourceIDList)
	}
}

func TestAssembleMissingMemo(t *testing.T) {
	gdb := openDB(t)
	svc := memo.NewService(gdb)

	if _, err := svc.Assemble(context.Background(), 424242); !errors.Is(err, memo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
