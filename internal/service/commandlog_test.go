package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"home_climate/internal/models"
)

type fakeCommandRepo struct {
	from, to time.Time
	typ      string
	resp     []models.ControlCommand
	err      error
	calls    int
}

func (f *fakeCommandRepo) Append(context.Context, models.ControlCommand) error { return nil }
func (f *fakeCommandRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.ControlCommand, error) {
	f.calls++
	f.from, f.to, f.typ = from, to, typ
	return f.resp, f.err
}

func TestCommandLogService_List_NormalizesFilter(t *testing.T) {
	repo := &fakeCommandRepo{resp: []models.ControlCommand{{ID: "1"}}}
	svc := NewCommandLogService(repo)

	plus7 := time.FixedZone("+07", 7*3600)
	from := time.Date(2025, 1, 1, 7, 0, 0, 0, plus7)
	got, err := svc.List(context.Background(), CommandFilter{From: from, Type: " Manual_Update "})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if repo.from.Location() != time.UTC || !repo.from.Equal(from) || !repo.to.IsZero() {
		t.Fatalf("range not normalized: %v .. %v", repo.from, repo.to)
	}
	if repo.typ != "manual_update" {
		t.Fatalf("type not normalized: %q", repo.typ)
	}
}

func TestCommandLogService_List_Errors(t *testing.T) {
	repo := &fakeCommandRepo{}
	svc := NewCommandLogService(repo)
	now := time.Now()

	_, err := svc.List(context.Background(), CommandFilter{From: now, To: now.Add(-time.Hour)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repo must not be queried for an inverted range")
	}

	repo.err = errors.New("locked")
	if _, err := svc.List(context.Background(), CommandFilter{}); err == nil || errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected store error, got %v", err)
	}
}
