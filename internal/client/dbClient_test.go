package client

import (
	"itemtracker/internal/config"
	"itemtracker/internal/model"
	"testing"
)

func TestInitDBClientMigratesSqlite(t *testing.T) {
	db, err := InitDBClient(config.Database{Driver: "sqlite", URL: "file::memory:"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, table := range []any{&model.Item{}, &model.Lookup{}, &model.Account{}} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("missing table for %T", table)
		}
	}
}

func TestInitDBClientRejectsUnknownDriver(t *testing.T) {
	if _, err := InitDBClient(config.Database{Driver: "postgres"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
