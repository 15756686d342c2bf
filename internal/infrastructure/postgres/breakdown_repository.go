package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
)

var _ repository.BreakdownRepository = (*BreakdownRepo)(nil)

// BreakdownRepo desossas sobre PostgreSQL; los cortes van en JSONB.
type BreakdownRepo struct {
	q Querier
}

// NewBreakdownRepository construye el adaptador.
func NewBreakdownRepository(q Querier) *BreakdownRepo {
	return &BreakdownRepo{q: q}
}

const breakdownColumns = `id, company_id, user_id, name, date, animal_type, initial_weight_kg, carcass_cost,
	total_revenue, total_allocated_cost, total_yield_percent, gross_profit, discard_cost,
	cuts, notes, created_at, updated_at`

// Create persiste una desossa.
func (r *BreakdownRepo) Create(ctx context.Context, b *entity.Breakdown) error {
	query := `INSERT INTO breakdowns (` + breakdownColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.UserID, b.Name, b.Date, b.AnimalType, b.InitialWeightKg, b.CarcassCost,
		b.TotalRevenue, b.TotalAllocatedCost, b.TotalYieldPercent, b.GrossProfit, b.DiscardCost,
		cutsOrEmpty(b.Cuts), b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert breakdown: %w", err)
	}
	return nil
}

// Update reemplaza la desossa del mismo owner + tenant.
func (r *BreakdownRepo) Update(ctx context.Context, b *entity.Breakdown) error {
	const query = `
		UPDATE breakdowns
		   SET name = $4, date = $5, animal_type = $6, initial_weight_kg = $7, carcass_cost = $8,
		       total_revenue = $9, total_allocated_cost = $10, total_yield_percent = $11,
		       gross_profit = $12, discard_cost = $13, cuts = $14, notes = $15, updated_at = $16
		 WHERE id = $1 AND company_id = $2 AND user_id = $3`
	cmd, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.UserID, b.Name, b.Date, b.AnimalType, b.InitialWeightKg, b.CarcassCost,
		b.TotalRevenue, b.TotalAllocatedCost, b.TotalYieldPercent, b.GrossProfit, b.DiscardCost,
		cutsOrEmpty(b.Cuts), b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update breakdown: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe en el scope.
func (r *BreakdownRepo) GetByID(ctx context.Context, scope repository.Scope, id string) (*entity.Breakdown, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + breakdownColumns + ` FROM breakdowns WHERE id = $1 AND company_id = $2 AND user_id = $3`
	b, err := scanBreakdown(r.q.QueryRow(ctx, query, id, scope.CompanyID, scope.UserID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get breakdown: %w", err)
	}
	return b, nil
}

// List desossas del scope, más recientes primero.
func (r *BreakdownRepo) List(ctx context.Context, scope repository.Scope, limit, offset int) ([]*entity.Breakdown, error) {
	query := `SELECT ` + breakdownColumns + ` FROM breakdowns
		WHERE company_id = $1 AND user_id = $2
		ORDER BY date DESC, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, scope.CompanyID, scope.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list breakdowns: %w", err)
	}
	defer rows.Close()

	var list []*entity.Breakdown
	for rows.Next() {
		b, err := scanBreakdown(rows)
		if err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Delete elimina una desossa del scope.
func (r *BreakdownRepo) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return deleteScoped(ctx, r.q, "breakdowns", scope, id)
}

func scanBreakdown(row pgx.Row) (*entity.Breakdown, error) {
	var b entity.Breakdown
	err := row.Scan(
		&b.ID, &b.CompanyID, &b.UserID, &b.Name, &b.Date, &b.AnimalType, &b.InitialWeightKg, &b.CarcassCost,
		&b.TotalRevenue, &b.TotalAllocatedCost, &b.TotalYieldPercent, &b.GrossProfit, &b.DiscardCost,
		&b.Cuts, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func cutsOrEmpty(c []entity.BreakdownCut) []entity.BreakdownCut {
	if c == nil {
		return []entity.BreakdownCut{}
	}
	return c
}

// deleteScoped borra por id filtrando por owner + tenant; ErrNotFound si no afectó filas.
func deleteScoped(ctx context.Context, q Querier, table string, scope repository.Scope, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `DELETE FROM ` + table + ` WHERE id = $1 AND company_id = $2 AND user_id = $3`
	cmd, err := q.Exec(ctx, query, id, scope.CompanyID, scope.UserID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
