package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
)

var _ repository.SimulationRepository = (*SimulationRepo)(nil)

// SimulationRepo simulaciones de precio; los ítems van en JSONB.
type SimulationRepo struct {
	q Querier
}

// NewSimulationRepository construye el adaptador.
func NewSimulationRepository(q Querier) *SimulationRepo {
	return &SimulationRepo{q: q}
}

const simulationColumns = `id, company_id, user_id, name, date, notes, items, created_at, updated_at`

func (r *SimulationRepo) Create(ctx context.Context, s *entity.PriceSimulation) error {
	query := `INSERT INTO price_simulations (` + simulationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.UserID, s.Name, s.Date, s.Notes, linesOrEmpty(s.Items), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert simulation: %w", err)
	}
	return nil
}

func (r *SimulationRepo) Update(ctx context.Context, s *entity.PriceSimulation) error {
	const query = `
		UPDATE price_simulations
		   SET name = $4, date = $5, notes = $6, items = $7, updated_at = $8
		 WHERE id = $1 AND company_id = $2 AND user_id = $3`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.UserID, s.Name, s.Date, s.Notes, linesOrEmpty(s.Items), s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update simulation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SimulationRepo) GetByID(ctx context.Context, scope repository.Scope, id string) (*entity.PriceSimulation, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + simulationColumns + ` FROM price_simulations WHERE id = $1 AND company_id = $2 AND user_id = $3`
	s, err := scanSimulation(r.q.QueryRow(ctx, query, id, scope.CompanyID, scope.UserID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get simulation: %w", err)
	}
	return s, nil
}

func (r *SimulationRepo) List(ctx context.Context, scope repository.Scope, limit, offset int) ([]*entity.PriceSimulation, error) {
	query := `SELECT ` + simulationColumns + ` FROM price_simulations
		WHERE company_id = $1 AND user_id = $2
		ORDER BY date DESC, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, scope.CompanyID, scope.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	defer rows.Close()

	var list []*entity.PriceSimulation
	for rows.Next() {
		s, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan simulation: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SimulationRepo) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return deleteScoped(ctx, r.q, "price_simulations", scope, id)
}

func scanSimulation(row pgx.Row) (*entity.PriceSimulation, error) {
	var s entity.PriceSimulation
	if err := row.Scan(&s.ID, &s.CompanyID, &s.UserID, &s.Name, &s.Date, &s.Notes, &s.Items, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func linesOrEmpty(l []entity.SimulationLine) []entity.SimulationLine {
	if l == nil {
		return []entity.SimulationLine{}
	}
	return l
}
