package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

// PostgresRepository persists curated competitor lists in PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new curated repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// nicheKey is the stored form of a niche name
func nicheKey(niche string) string {
	return strings.Join(strings.Fields(strings.ToLower(niche)), " ")
}

// GetCurated returns the stored list for a niche in its saved order
func (r *PostgresRepository) GetCurated(ctx context.Context, niche string) ([]domain.StoreRecord, error) {
	query := `
		SELECT name, url, domain, description
		FROM niche_competitors
		WHERE niche = $1
		ORDER BY position
	`

	var stores []domain.StoreRecord
	if err := r.db.SelectContext(ctx, &stores, query, nicheKey(niche)); err != nil {
		return nil, fmt.Errorf("failed to get curated competitors: %w", err)
	}
	if len(stores) == 0 {
		return nil, domain.ErrNotFound
	}

	return stores, nil
}

// ReplaceCurated swaps the stored list for a niche in one transaction
func (r *PostgresRepository) ReplaceCurated(ctx context.Context, niche string, stores []domain.StoreRecord) error {
	key := nicheKey(niche)
	if key == "" {
		return domain.ErrInvalidNiche
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM niche_competitors WHERE niche = $1`, key); err != nil {
		return fmt.Errorf("failed to clear curated competitors: %w", err)
	}

	insert := `
		INSERT INTO niche_competitors (niche, position, name, url, domain, description, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	for i, s := range domain.DedupeStores(stores) {
		s = s.Normalized()
		if _, err := tx.ExecContext(ctx, insert, key, i, s.Name, s.URL, s.Domain, s.Description); err != nil {
			return fmt.Errorf("failed to insert curated competitor %s: %w", s.Domain, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit curated competitors: %w", err)
	}
	return nil
}

// ListNiches returns every niche with a stored list
func (r *PostgresRepository) ListNiches(ctx context.Context) ([]string, error) {
	var niches []string
	if err := r.db.SelectContext(ctx, &niches, `SELECT DISTINCT niche FROM niche_competitors ORDER BY niche`); err != nil {
		return nil, fmt.Errorf("failed to list niches: %w", err)
	}
	return niches, nil
}

var _ domain.CuratedRepository = (*PostgresRepository)(nil)
