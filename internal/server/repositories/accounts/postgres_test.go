package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tzetzo/task-manager-api/internal/common"
	"github.com/tzetzo/task-manager-api/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var accountColumns = []string{"id", "name", "email", "password", "age", "avatar", "created_at", "updated_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+accounts\s*\(name,\s*email,\s*password,\s*age,\s*avatar\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("a-1", now, now)
	mock.ExpectQuery(q).
		WithArgs("Mike", "mike@example.com", "$2a$08$hash", int64(30), []byte(nil)).
		WillReturnRows(rows)

	a := &models.Account{Name: "Mike", Email: "mike@example.com", Password: "$2a$08$hash", Age: 30}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "a-1" || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	_, err := repo.Create(context.Background(), &models.Account{Name: "Mike", Email: "mike@example.com", Password: "h"})
	if !errors.Is(err, common.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Account{Name: "Mike", Email: "mike@example.com", Password: "h"})
	if err == nil || errors.Is(err, common.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(accountColumns).
		AddRow("a-1", "Mike", "mike@example.com", "$2a$08$hash", int64(30), nil, now, now)
	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*email,\s*password,\s*age,\s*avatar,\s*created_at,\s*updated_at\s+FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("mike@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "mike@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "a-1" || got.Name != "Mike" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.*FROM\s+accounts\s+WHERE\s+email`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.*FROM\s+accounts\s+WHERE\s+id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+accounts\s+SET`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Update(context.Background(), &models.Account{ID: "a-1", Name: "Mike", Email: "taken@example.com", Password: "h"})
	if !errors.Is(err, common.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now())
	mock.ExpectQuery(`UPDATE\s+accounts\s+SET\s+name\s*=\s*\$1`).
		WithArgs("Mike", "mike@example.com", "$2a$08$new", int64(31), "a-1").
		WillReturnRows(rows)

	a := &models.Account{ID: "a-1", Name: "Mike", Email: "mike@example.com", Password: "$2a$08$new", Age: 31}
	got, err := repo.Update(context.Background(), a)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("updated_at not refreshed: %+v", got)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "a-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+accounts`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAvatar_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+accounts\s+SET\s+avatar\s*=\s*\$1`).
		WithArgs([]byte{0xff, 0xd8}, "a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateAvatar(context.Background(), "a-1", []byte{0xff, 0xd8}); err != nil {
		t.Fatalf("UpdateAvatar error: %v", err)
	}
}
