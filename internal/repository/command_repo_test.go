package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"home_climate/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCommandSQLite_Append_FillsDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewCommandSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertCommandSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "manual_update", `{"is_on":true}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(context.Background(), models.ControlCommand{
		Type:    " Manual_Update ",
		Payload: map[string]any{"is_on": true},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCommandSQLite_Append_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewCommandSQLite(db)
	mock.ExpectExec("INSERT INTO control_commands").WillReturnError(errors.New("down"))

	err = repo.Append(context.Background(), models.ControlCommand{ID: "c1", Type: "actuator_update"})
	if err == nil || !strings.Contains(err.Error(), "insert command c1") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCommandSQLite_List_NoFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewCommandSQLite(db)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"ac": 1.0})
	rows := sqlmock.NewRows([]string{"id", "sent_at", "type", "payload"}).
		AddRow("1", now, "actuator_update", string(js)).
		AddRow("2", now.Add(time.Hour), "manual_update", nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, sent_at, type, payload FROM control_commands ORDER BY sent_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if got[0].Payload["ac"] != 1.0 {
		t.Fatalf("payload not decoded: %v", got[0].Payload)
	}
	if got[1].Payload != nil {
		t.Fatalf("expected nil payload, got %v", got[1].Payload)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCommandSQLite_List_WithFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewCommandSQLite(db)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	query := `SELECT id, sent_at, type, payload FROM control_commands WHERE sent_at >= ? AND sent_at <= ? AND type = ? ORDER BY sent_at ASC`

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(from, to, "automation_update").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sent_at", "type", "payload"}).
			AddRow("3", from, "automation_update", `{"mode":"auto"}`))

	got, err := repo.List(context.Background(), from, to, " AUTOMATION_UPDATE ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Payload["mode"] != "auto" {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCommandSQLite_List_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, sent_at").WillReturnError(errors.New("locked"))
	if _, err := NewCommandSQLite(db).List(context.Background(), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected error")
	}
}
