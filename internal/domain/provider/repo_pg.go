package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(_ context.Context) queryable { return r.pool }

const providerCols = `id, name, npi, specialty, network_status, status, created_at, updated_at`

func (r *repoPG) scanProvider(row pgx.Row) (*Provider, error) {
	var p Provider
	err := row.Scan(&p.ID, &p.Name, &p.NPI, &p.Specialty, &p.NetworkStatus, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Provider) error {
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO providers (id, name, npi, specialty, network_status, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.NPI, p.Specialty, p.NetworkStatus, p.Status).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return r.scanProvider(r.conn(ctx).QueryRow(ctx, `SELECT `+providerCols+` FROM providers WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Provider) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE providers SET name=$2, npi=$3, specialty=$4,
			network_status=$5, status=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.NPI, p.Specialty, p.NetworkStatus, p.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Provider, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	if filter.NetworkStatus != "" {
		args = append(args, filter.NetworkStatus)
		where += fmt.Sprintf(` AND network_status = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM providers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + providerCols + ` FROM providers` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Provider
	for rows.Next() {
		p, err := r.scanProvider(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) GetStats(ctx context.Context, providerID uuid.UUID) (*Stats, error) {
	var s Stats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT provider_id, claim_count, total_submitted, last_claim_at
		FROM provider_stats WHERE provider_id = $1`, providerID).
		Scan(&s.ProviderID, &s.ClaimCount, &s.TotalSubmitted, &s.LastClaimAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// A provider with no claims has an empty, not missing, stat line.
		return &Stats{ProviderID: providerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) RecordClaim(ctx context.Context, providerID uuid.UUID, amount float64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO provider_stats (provider_id, claim_count, total_submitted, last_claim_at)
		VALUES ($1, 1, $2, NOW())
		ON CONFLICT (provider_id) DO UPDATE SET
			claim_count = provider_stats.claim_count + 1,
			total_submitted = provider_stats.total_submitted + EXCLUDED.total_submitted,
			last_claim_at = NOW()`,
		providerID, amount)
	return err
}
