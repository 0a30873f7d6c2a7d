package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresRepository_GetCurated(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   error
	}{
		{
			name: "returns stored rows in order",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"name", "url", "domain", "description"}).
					AddRow("Hot Tub Outpost", "https://hottuboutpost.com", "hottuboutpost.com", "Hot tubs").
					AddRow("Spa Depot", "https://spadepot.com", "spadepot.com", "")
				mock.ExpectQuery("SELECT name, url, domain, description\\s+FROM niche_competitors").
					WithArgs("hot tubs").
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "no rows is not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM niche_competitors").
					WithArgs("hot tubs").
					WillReturnRows(sqlmock.NewRows([]string{"name", "url", "domain", "description"}))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "database failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM niche_competitors").
					WithArgs("hot tubs").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tc.setupMock(mock)

			stores, err := repo.GetCurated(ctx, "  Hot   Tubs ")
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Len(t, stores, tc.wantLen)
				assert.Equal(t, "hottuboutpost.com", stores[0].Domain)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}

func TestPostgresRepository_ReplaceCurated(t *testing.T) {
	ctx := context.Background()
	stores := []domain.StoreRecord{
		{Name: "A", Domain: "www.a.com"},
		{Name: "A again", Domain: "a.com"},
		{Name: "B", URL: "https://b.com/shop", Domain: "b.com", Description: "B store"},
	}

	t.Run("deletes then inserts in one transaction", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM niche_competitors").
			WithArgs("drones").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("INSERT INTO niche_competitors").
			WithArgs("drones", 0, "A", "https://a.com", "a.com", "").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO niche_competitors").
			WithArgs("drones", 1, "B", "https://b.com/shop", "b.com", "B store").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.ReplaceCurated(ctx, "Drones", stores))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM niche_competitors").
			WithArgs("drones").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO niche_competitors").
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		err := repo.ReplaceCurated(ctx, "drones", stores)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a.com")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty niche", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		err := repo.ReplaceCurated(ctx, "   ", stores)

		assert.True(t, errors.Is(err, domain.ErrInvalidNiche))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_ListNiches(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT DISTINCT niche FROM niche_competitors").
		WillReturnRows(sqlmock.NewRows([]string{"niche"}).AddRow("backyard").AddRow("drones"))

	niches, err := repo.ListNiches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"backyard", "drones"}, niches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.GetCurated(ctx, "drones")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.ReplaceCurated(ctx, "Drones", []domain.StoreRecord{
		{Name: "A", Domain: "www.a.com"},
		{Name: "A dup", Domain: "a.com"},
		{Name: "B", Domain: "b.com"},
	}))
	require.NoError(t, repo.ReplaceCurated(ctx, "backyard", []domain.StoreRecord{{Name: "C", Domain: "c.com"}}))

	stores, err := repo.GetCurated(ctx, " drones ")
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "a.com", stores[0].Domain)

	stores[0].Name = "mutated"
	again, _ := repo.GetCurated(ctx, "drones")
	assert.Equal(t, "A", again[0].Name)

	niches, err := repo.ListNiches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"backyard", "drones"}, niches)

	require.NoError(t, repo.ReplaceCurated(ctx, "drones", nil))
	_, err = repo.GetCurated(ctx, "drones")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.True(t, errors.Is(repo.ReplaceCurated(ctx, "", nil), domain.ErrInvalidNiche))
}
