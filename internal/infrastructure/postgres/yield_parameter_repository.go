package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
)

var _ repository.YieldParameterRepository = (*YieldParameterRepo)(nil)

// YieldParameterRepo catálogo de rendimiento. (company_id, piece_code) es único.
type YieldParameterRepo struct {
	q Querier
}

// NewYieldParameterRepository construye el adaptador.
func NewYieldParameterRepository(q Querier) *YieldParameterRepo {
	return &YieldParameterRepo{q: q}
}

const yieldColumns = `id, company_id, user_id, piece_code, piece_name, part_code, part_name,
	expected_yield_percent, sale_price_per_kg, description, created_at, updated_at`

func (r *YieldParameterRepo) Create(ctx context.Context, p *entity.YieldParameter) error {
	query := `INSERT INTO yield_parameters (` + yieldColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.UserID, p.PieceCode, p.PieceName, p.PartCode, p.PartName,
		p.ExpectedYieldPercent, p.SalePricePerKg, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert yield parameter: %w", err)
	}
	return nil
}

func (r *YieldParameterRepo) Update(ctx context.Context, p *entity.YieldParameter) error {
	const query = `
		UPDATE yield_parameters
		   SET piece_code = $4, piece_name = $5, part_code = $6, part_name = $7,
		       expected_yield_percent = $8, sale_price_per_kg = $9, description = $10, updated_at = $11
		 WHERE id = $1 AND company_id = $2 AND user_id = $3`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.UserID, p.PieceCode, p.PieceName, p.PartCode, p.PartName,
		p.ExpectedYieldPercent, p.SalePricePerKg, p.Description, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update yield parameter: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *YieldParameterRepo) GetByID(ctx context.Context, scope repository.Scope, id string) (*entity.YieldParameter, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + yieldColumns + ` FROM yield_parameters WHERE id = $1 AND company_id = $2 AND user_id = $3`
	p, err := scanYieldParameter(r.q.QueryRow(ctx, query, id, scope.CompanyID, scope.UserID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get yield parameter: %w", err)
	}
	return p, nil
}

// ListAll catálogo completo ordenado por código; search filtra por código o nombre (ILIKE).
func (r *YieldParameterRepo) ListAll(ctx context.Context, scope repository.Scope, search string) ([]*entity.YieldParameter, error) {
	query := `SELECT ` + yieldColumns + ` FROM yield_parameters
		WHERE company_id = $1 AND user_id = $2
		  AND ($3 = '' OR piece_code ILIKE '%' || $3 || '%' OR piece_name ILIKE '%' || $3 || '%')
		ORDER BY piece_code`
	rows, err := r.q.Query(ctx, query, scope.CompanyID, scope.UserID, search)
	if err != nil {
		return nil, fmt.Errorf("list yield parameters: %w", err)
	}
	defer rows.Close()

	var list []*entity.YieldParameter
	for rows.Next() {
		p, err := scanYieldParameter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan yield parameter: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *YieldParameterRepo) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return deleteScoped(ctx, r.q, "yield_parameters", scope, id)
}

func scanYieldParameter(row pgx.Row) (*entity.YieldParameter, error) {
	var p entity.YieldParameter
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.UserID, &p.PieceCode, &p.PieceName, &p.PartCode, &p.PartName,
		&p.ExpectedYieldPercent, &p.SalePricePerKg, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
