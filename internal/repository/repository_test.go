package repository

import (
	"context"
	"errors"
	"itemtracker/internal/client"
	"itemtracker/internal/config"
	"itemtracker/internal/model"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := client.InitDBClient(config.Database{Driver: "sqlite", URL: "file::memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestItemRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(newTestDB(t))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a", "c"} {
		_, err := repo.Create(ctx, &model.Item{
			ID:          id,
			Email:       "asha@itemapp.com",
			ProductName: "Kettle " + id,
			AmountPaid:  decimal.RequireFromString("499.50"),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if _, err := repo.Create(ctx, &model.Item{ID: "other", Email: "ravi@itemapp.com"}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	items, err := repo.List(ctx, "asha@itemapp.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].ID != "b" || items[2].ID != "c" {
		t.Fatalf("expected fetch order b,a,c; got %d items", len(items))
	}
	if !items[0].AmountPaid.Equal(decimal.RequireFromString("499.5")) {
		t.Errorf("amount round trip: %s", items[0].AmountPaid)
	}

	all, _ := repo.List(ctx, "")
	if len(all) != 4 {
		t.Errorf("expected 4 items overall, got %d", len(all))
	}

	err = repo.Update(ctx, "a", map[string]interface{}{
		"review_live": true,
		"id":          "hijack",
		"email":       "ravi@itemapp.com",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.ReviewLive || got.Email != "asha@itemapp.com" {
		t.Errorf("unexpected item after update: %+v", got)
	}

	if err := repo.Update(ctx, "missing", map[string]interface{}{"reject": true}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("update missing: got %v", err)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "a"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("get deleted: got %v", err)
	}
	if err := repo.Delete(ctx, "a"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("delete twice: got %v", err)
	}
}

func TestLookupRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewLookupRepository(db)

	for i, name := range []string{"Meesho", "Amazon", "Flipkart"} {
		err := repo.Create(ctx, &model.Lookup{ID: string(rune('a' + i)), Kind: model.LookupPlatform, Name: name})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := repo.Create(ctx, &model.Lookup{ID: "r1", Kind: model.LookupReviewer, Name: "Amazon"}); err != nil {
		t.Fatalf("same name, other kind: %v", err)
	}
	if err := repo.Create(ctx, &model.Lookup{ID: "dup", Kind: model.LookupPlatform, Name: "Amazon"}); err == nil {
		t.Error("expected unique violation for duplicate platform")
	}

	names, err := repo.Names(ctx, model.LookupPlatform)
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) != 3 || names[0] != "Amazon" || names[2] != "Meesho" {
		t.Errorf("unexpected names %v", names)
	}

	// deleting a lookup leaves items that reference it untouched
	items := NewItemRepository(db)
	if _, err := items.Create(ctx, &model.Item{ID: "i1", Platform: "Amazon"}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := repo.Delete(ctx, model.LookupPlatform, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	item, _ := items.Get(ctx, "i1")
	if item.Platform != "Amazon" {
		t.Errorf("delete cascaded to item: %q", item.Platform)
	}
	if err := repo.Delete(ctx, model.LookupUser, "c"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("delete with wrong kind: got %v", err)
	}
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	if err := repo.Create(ctx, &model.Account{ID: "1", Username: "asha", Email: "asha@itemapp.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	ok, err := repo.Exists(ctx, "asha")
	if err != nil || !ok {
		t.Errorf("exists: %v %v", ok, err)
	}
	account, err := repo.FindByUsername(ctx, "asha")
	if err != nil || account.Email != "asha@itemapp.com" {
		t.Errorf("find: %+v %v", account, err)
	}
	if _, err := repo.FindByUsername(ctx, "ravi"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("find missing: %v", err)
	}
}
