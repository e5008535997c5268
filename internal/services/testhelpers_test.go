package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linkdraft/internal/browser"
	"linkdraft/internal/database"
)

// newTestDB opens an in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// A single connection keeps the in-memory database alive and serialized.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type fakeTabReader struct {
	tab     browser.Tab
	tabErr  error
	text    string
	textErr error

	activeCalls  int
	extractCalls int
}

func (f *fakeTabReader) ActiveTab(ctx context.Context) (browser.Tab, error) {
	f.activeCalls++
	return f.tab, f.tabErr
}

func (f *fakeTabReader) ExtractText(ctx context.Context, tab browser.Tab) (string, error) {
	f.extractCalls++
	return f.text, f.textErr
}

type fakeCompleter struct {
	reply string
	err   error

	calls      int
	lastModel  string
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, model, systemMessage, userMessage string) (string, error) {
	f.calls++
	f.lastModel = model
	f.lastSystem = systemMessage
	f.lastUser = userMessage
	return f.reply, f.err
}
