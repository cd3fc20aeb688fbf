package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkomarov/go-auth-keeper/internal/logger"
	"github.com/dkomarov/go-auth-keeper/models"
	"github.com/jackc/pgerrcode"
)

func newTestIdentityRepo(t *testing.T) (*identityRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &identityRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func identityRows(t *testing.T, identities ...models.Identity) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "type", "name", "secret", "secret2",
		"extra", "expires", "last_used_at", "created_at", "updated_at",
	})
	for _, i := range identities {
		extra, err := i.Extra.Value()
		if err != nil {
			t.Fatalf("failed to serialise extra data: %v", err)
		}
		rows.AddRow(i.ID, i.UserID, string(i.Type), i.Name, i.Secret, i.Secret2,
			extra, i.Expires, i.LastUsedAt, i.CreatedAt, i.UpdatedAt)
	}
	return rows
}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	now := time.Now()
	identity := models.Identity{
		UserID: 1,
		Type:   models.IdentityAccessToken,
		Name:   "ci-deploy",
		Secret: "hashed-secret",
		Extra:  models.ExtraData{"scopes": []string{"read", "write"}},
	}

	mock.ExpectQuery("INSERT INTO identities").
		WillReturnRows(identityRows(t, models.Identity{
			ID: 7, UserID: 1, Type: models.IdentityAccessToken,
			Name: "ci-deploy", Secret: "hashed-secret",
			Extra:     models.ExtraData{"scopes": []string{"read", "write"}},
			CreatedAt: now, UpdatedAt: now,
		}))

	saved, err := repo.Insert(context.Background(), identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 7 {
		t.Errorf("expected assigned ID=7, got %d", saved.ID)
	}
	if got := saved.Extra.Scopes(); len(got) != 2 || got[0] != "read" {
		t.Errorf("scopes did not survive the round trip: %v", got)
	}
}

func TestInsert_DuplicateSecret(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO identities").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Insert(context.Background(), models.Identity{
		UserID: 1, Type: models.IdentityAccessToken, Secret: "clashing-hash",
	})
	if !errors.Is(err, ErrIdentityAlreadyExists) {
		t.Fatalf("expected ErrIdentityAlreadyExists, got %v", err)
	}
}

func TestFindIdentityByID_NotFound(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestFindBySecret_Success(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, user_id").
		WithArgs("access_token", "sha256-hash").
		WillReturnRows(identityRows(t, models.Identity{
			ID: 3, UserID: 1, Type: models.IdentityAccessToken,
			Name: "api", Secret: "sha256-hash",
			Extra:     models.ExtraData{"scopes": []any{"*"}},
			CreatedAt: now, UpdatedAt: now,
		}))

	found, err := repo.FindBySecret(context.Background(), models.IdentityAccessToken, "sha256-hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != 3 {
		t.Errorf("expected ID=3, got %d", found.ID)
	}
	if scopes := found.Extra.Scopes(); len(scopes) != 1 || scopes[0] != models.ScopeWildcard {
		t.Errorf("expected wildcard scope, got %v", scopes)
	}
}

func TestFindBySecret_NotFound(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs("access_token", "unknown-hash").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySecret(context.Background(), models.IdentityAccessToken, "unknown-hash")
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestFindByType_NotFound(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs(int64(1), "password").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByType(context.Background(), 1, models.IdentityPassword)
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestListByType_Success(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, user_id").
		WithArgs(int64(1), "access_token").
		WillReturnRows(identityRows(t,
			models.Identity{ID: 1, UserID: 1, Type: models.IdentityAccessToken, Name: "first", CreatedAt: now, UpdatedAt: now},
			models.Identity{ID: 2, UserID: 1, Type: models.IdentityAccessToken, Name: "second", CreatedAt: now, UpdatedAt: now},
		))

	list, err := repo.ListByType(context.Background(), 1, models.IdentityAccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(list))
	}
	if list[0].Name != "first" || list[1].Name != "second" {
		t.Errorf("identities out of order: %+v", list)
	}
}

func TestListByType_EmptyIsNonNil(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs(int64(1), "access_token").
		WillReturnRows(identityRows(t))

	list, err := repo.ListByType(context.Background(), 1, models.IdentityAccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(list) != 0 {
		t.Errorf("expected no identities, got %d", len(list))
	}
}

func TestDelete_MissingRowIsNoop(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM identities").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 404); err != nil {
		t.Fatalf("expected deleting a missing row to succeed, got %v", err)
	}
}

func TestDeleteBySecret_Success(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM identities").
		WithArgs("access_token", "sha256-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteBySecret(context.Background(), models.IdentityAccessToken, "sha256-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteAllByType_Success(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM identities").
		WithArgs(int64(1), "access_token").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteAllByType(context.Background(), 1, models.IdentityAccessToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteExpired_ReturnsAffectedCount(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	before := time.Now()
	mock.ExpectExec("DELETE FROM identities").
		WithArgs("access_token", before).
		WillReturnResult(sqlmock.NewResult(0, 5))

	affected, err := repo.DeleteExpired(context.Background(), models.IdentityAccessToken, before)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 5 {
		t.Errorf("expected 5 rows affected, got %d", affected)
	}
}

func TestDeleteExpired_DBError(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM identities").
		WillReturnError(errors.New("db is down"))

	_, err := repo.DeleteExpired(context.Background(), models.IdentityAccessToken, time.Now())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestDeleteExpired_ConnectionLossIsTransient(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM identities").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.DeleteExpired(context.Background(), models.IdentityAccessToken, time.Now())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if !errors.Is(err, ErrTransientDBFault) {
		t.Fatalf("expected connection loss to be tagged transient, got %v", err)
	}
}

func TestDeleteBySecret_SchemaErrorIsNotTransient(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM identities").
		WillReturnError(pgError(pgerrcode.UndefinedColumn))

	err := repo.DeleteBySecret(context.Background(), models.IdentityAccessToken, "hash")
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if errors.Is(err, ErrTransientDBFault) {
		t.Fatalf("schema errors must not be tagged transient, got %v", err)
	}
}

func TestTouchLastUsed_Success(t *testing.T) {
	repo, mock, db := newTestIdentityRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE identities").
		WithArgs(sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchLastUsed(context.Background(), 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
