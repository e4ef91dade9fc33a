package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// fakeQuerier devuelve respuestas fijas y registra el último SQL ejecutado.
type fakeQuerier struct {
	execTag pgconn.CommandTag
	execErr error
	rowErr  error
	lastSQL string
	lastArg []any
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArg = sql, args
	return f.execTag, f.execErr
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArg = sql, args
	return nil, errors.New("no implementado")
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArg = sql, args
	return fakeRow{err: f.rowErr}
}

type fakeRow struct{ err error }

func (r fakeRow) Scan(...any) error { return r.err }

func TestUserRepo_CreateEmailDuplicado(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
	err := NewUserRepository(q).Create(context.Background(), &entity.User{ID: "1", Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepo_CreateOtraClaveUnica(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}}
	err := NewUserRepository(q).Create(context.Background(), &entity.User{ID: "1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepo_GetByEmailNoExiste(t *testing.T) {
	q := &fakeQuerier{rowErr: pgx.ErrNoRows}
	u, err := NewUserRepository(q).GetByEmail(context.Background(), "x@y.z")
	assert.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, []any{"x@y.z"}, q.lastArg)
}

func TestUserRepo_GetByIDErrorSeEnvuelve(t *testing.T) {
	boom := errors.New("conexión perdida")
	_, err := NewUserRepository(&fakeQuerier{rowErr: boom}).GetByID(context.Background(), "1")
	assert.ErrorIs(t, err, boom)
}

func TestProductRepo_GetByIDNoExiste(t *testing.T) {
	p, err := NewProductRepository(&fakeQuerier{rowErr: pgx.ErrNoRows}).GetByID(context.Background(), "1")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

// Mismo criterio de desempate que el repositorio en memoria.
func TestProductRepo_ListOrdenaPorCreatedAtEIDDescendente(t *testing.T) {
	q := &fakeQuerier{}
	_, err := NewProductRepository(q).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, q.lastSQL, "ORDER BY created_at DESC, id DESC")
}

func TestProductRepo_UpdateDeleteSinFilas(t *testing.T) {
	q := &fakeQuerier{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewProductRepository(q)
	p := &entity.Product{ID: "1", Price: decimal.NewFromInt(1), UpdatedAt: time.Now()}

	assert.ErrorIs(t, repo.Update(context.Background(), p), domain.ErrNotFound)

	q.execTag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, repo.Delete(context.Background(), "1"), domain.ErrNotFound)

	q.execTag = pgconn.NewCommandTag("DELETE 1")
	require.NoError(t, repo.Delete(context.Background(), "1"))
	assert.Contains(t, q.lastSQL, "DELETE FROM products")
}

func TestProductRepo_CreatePasaTodasLasColumnas(t *testing.T) {
	q := &fakeQuerier{execTag: pgconn.NewCommandTag("INSERT 0 1")}
	desc := "d"
	p := &entity.Product{
		ID: "1", Name: "n", Description: &desc, SKU: "s", Category: "c",
		Price: decimal.RequireFromString("2.50"), Quantity: 3, Unit: "kg",
	}
	require.NoError(t, NewProductRepository(q).Create(context.Background(), p))
	require.Len(t, q.lastArg, 11)
	assert.Equal(t, "kg", q.lastArg[7])
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("23505"), ""), "solo cuenta el código del PgError")
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}, ""))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
}
