package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	return NewStore(db)
}

func TestStoreInsertAndSelectOne(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, "games", Fields{
		"user_id":    int64(42),
		"word_id":    int64(7),
		"time_start": int64(1000),
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a generated id")
	}

	row, err := store.SelectOne(ctx, "games",
		[]string{"id", "word_id", "lost_health", "input_letters"},
		Fields{"user_id": int64(42), "status": 0})
	if err != nil {
		t.Fatalf("SelectOne returned error: %v", err)
	}
	if row == nil {
		t.Fatal("expected a row")
	}
	if row.Int64("id") != id {
		t.Fatalf("expected id %d, got %d", id, row.Int64("id"))
	}
	if row.Int64("word_id") != 7 {
		t.Fatalf("expected word_id 7, got %d", row.Int64("word_id"))
	}
	if row.Int64("lost_health") != 7 {
		t.Fatalf("expected default lost_health 7, got %d", row.Int64("lost_health"))
	}
	if row.String("input_letters") != "" {
		t.Fatalf("expected empty input_letters, got %q", row.String("input_letters"))
	}

	missing, err := store.SelectOne(ctx, "games", nil, Fields{"user_id": int64(999)})
	if err != nil {
		t.Fatalf("SelectOne returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil row for a missing filter, got %v", missing)
	}
}

func TestStoreSelectAll(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"Животные", "Города", "Еда"} {
		if _, err := store.Insert(ctx, "categories", Fields{"name": name}); err != nil {
			t.Fatalf("Insert returned error: %v", err)
		}
	}

	rows, err := store.SelectAll(ctx, "categories", []string{"id", "name"}, nil)
	if err != nil {
		t.Fatalf("SelectAll returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	filtered, err := store.SelectAll(ctx, "categories", nil, Fields{"name": "Города"})
	if err != nil {
		t.Fatalf("SelectAll returned error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].String("name") != "Города" {
		t.Fatalf("unexpected filtered rows: %v", filtered)
	}
}

func TestStoreUpdate(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, "games", Fields{
		"user_id":    int64(1),
		"word_id":    int64(2),
		"time_start": int64(0),
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	other, err := store.Insert(ctx, "games", Fields{
		"user_id":    int64(2),
		"word_id":    int64(3),
		"time_start": int64(0),
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	err = store.Update(ctx, "games",
		Fields{"input_letters": "КО", "lost_health": 5},
		Fields{"id": id})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	row, err := store.SelectOne(ctx, "games", nil, Fields{"id": id})
	if err != nil {
		t.Fatalf("SelectOne returned error: %v", err)
	}
	if row.String("input_letters") != "КО" || row.Int64("lost_health") != 5 {
		t.Fatalf("update not applied: %v", row)
	}

	// The other row must be untouched
	untouched, err := store.SelectOne(ctx, "games", nil, Fields{"id": other})
	if err != nil {
		t.Fatalf("SelectOne returned error: %v", err)
	}
	if untouched.Int64("lost_health") != 7 {
		t.Fatalf("update leaked into another row: %v", untouched)
	}
}

func TestActiveGameUniqueIndex(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Insert(ctx, "games", Fields{
		"user_id":    int64(10),
		"word_id":    int64(1),
		"time_start": int64(0),
	}); err != nil {
		t.Fatalf("first insert returned error: %v", err)
	}

	// A second in-progress game for the same user is impossible
	if _, err := store.Insert(ctx, "games", Fields{
		"user_id":    int64(10),
		"word_id":    int64(2),
		"time_start": int64(0),
	}); err == nil {
		t.Fatal("expected unique index violation for a second active game")
	}

	// Once the first game ends, a new one may start
	if err := store.Update(ctx, "games", Fields{"status": 2}, Fields{"user_id": int64(10)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, err := store.Insert(ctx, "games", Fields{
		"user_id":    int64(10),
		"word_id":    int64(2),
		"time_start": int64(0),
	}); err != nil {
		t.Fatalf("insert after finishing returned error: %v", err)
	}
}

func TestCheckTableName(t *testing.T) {
	for _, table := range []string{"", "games; DROP TABLE games", "bad name", "games'"} {
		if err := checkTableName(table); err == nil {
			t.Errorf("checkTableName(%q): expected error", table)
		}
	}
	for _, table := range []string{"games", "user_configs", "photos2"} {
		if err := checkTableName(table); err != nil {
			t.Errorf("checkTableName(%q) returned error: %v", table, err)
		}
	}
}

func TestRowAccessors(t *testing.T) {
	row := Row{
		"a": int64(5),
		"b": 6,
		"c": 7.0,
		"d": []byte("8"),
		"e": "text",
		"f": []byte("bytes"),
		"g": nil,
	}

	if row.Int64("a") != 5 || row.Int64("b") != 6 || row.Int64("c") != 7 || row.Int64("d") != 8 {
		t.Fatalf("unexpected numeric conversions: %d %d %d %d",
			row.Int64("a"), row.Int64("b"), row.Int64("c"), row.Int64("d"))
	}
	if row.Int64("g") != 0 {
		t.Fatalf("nil column should read as 0, got %d", row.Int64("g"))
	}
	if row.String("e") != "text" || row.String("f") != "bytes" {
		t.Fatalf("unexpected string conversions: %q %q", row.String("e"), row.String("f"))
	}
	if row.String("g") != "" {
		t.Fatalf("nil column should read as empty string, got %q", row.String("g"))
	}
}
