package history_test

import (
	"context"
	"database/sql"
	"testing"

	qdb "github.com/timnik82/quiz-forms/internal/db"
	"github.com/timnik82/quiz-forms/internal/history"

	_ "modernc.org/sqlite" // driver for "sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.TempDir()+"/history.db?cache=shared&mode=rwc")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := qdb.EnsureSchema(context.Background(), db, qdb.DriverSQLite); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func TestStorePutList(t *testing.T) {
	db := openTestDB(t)
	store := history.NewStore(db)
	ctx := context.Background()

	rec, err := store.Put(ctx, history.Record{
		Title:         "ATS Quiz",
		FormID:        "form-1",
		ResponderURI:  "https://docs.google.com/forms/1",
		SectionCount:  3,
		QuestionCount: 20,
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt == 0 {
		t.Fatalf("record not filled in: %+v", rec)
	}

	out, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("records = %d, want 1", len(out))
	}
	got := out[0]
	if got.FormID != "form-1" || got.QuestionCount != 20 {
		t.Errorf("record = %+v", got)
	}
}

func TestStoreGet(t *testing.T) {
	db := openTestDB(t)
	store := history.NewStore(db)
	ctx := context.Background()

	put, err := store.Put(ctx, history.Record{
		Title:     "ATS Quiz",
		FormID:    "form-1",
		SourceKey: "uploads/abc-quiz.md",
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, put.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FormID != "form-1" || got.SourceKey != "uploads/abc-quiz.md" {
		t.Errorf("record = %+v", got)
	}

	if _, err := store.Get(ctx, "missing"); err != sql.ErrNoRows {
		t.Errorf("get missing: err = %v, want sql.ErrNoRows", err)
	}
}

func TestStoreListOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	store := history.NewStore(db)
	ctx := context.Background()

	for i, at := range []int64{100, 300, 200} {
		_, err := store.Put(ctx, history.Record{
			Title:     "q",
			FormID:    "f",
			CreatedAt: at,
			ID:        string(rune('a' + i)),
		})
		if err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}

	out, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("records = %d, want 2", len(out))
	}
	if out[0].CreatedAt != 300 || out[1].CreatedAt != 200 {
		t.Errorf("order = %d,%d", out[0].CreatedAt, out[1].CreatedAt)
	}
}

func TestEventRepoAppendSince(t *testing.T) {
	db := openTestDB(t)
	repo := history.NewEventRepo(db)
	ctx := context.Background()

	for _, key := range []string{"form-1", "form-2"} {
		err := repo.Append(ctx, history.Event{
			Type:     history.EventFormCreated,
			Key:      key,
			DataJSON: `{"title":"Quiz"}`,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.Since(ctx, 0, 10)
	if err != nil {
		t.Fatalf("since: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Key != "form-1" || events[1].Key != "form-2" {
		t.Errorf("keys = %q,%q", events[0].Key, events[1].Key)
	}
	if events[1].Offset <= events[0].Offset {
		t.Errorf("offsets not increasing: %d, %d", events[0].Offset, events[1].Offset)
	}

	tail, err := repo.Since(ctx, events[0].Offset, 10)
	if err != nil {
		t.Fatalf("since tail: %v", err)
	}
	if len(tail) != 1 || tail[0].Key != "form-2" {
		t.Errorf("tail = %+v", tail)
	}
}
