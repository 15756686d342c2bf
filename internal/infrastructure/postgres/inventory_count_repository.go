package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
)

var _ repository.InventoryCountRepository = (*InventoryCountRepo)(nil)

// InventoryCountRepo implementación de InventoryCountRepository.
type InventoryCountRepo struct {
	q Querier
}

// NewInventoryCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryCountRepository(q Querier) *InventoryCountRepo {
	return &InventoryCountRepo{q: q}
}

const inventoryCountColumns = `id, company_id, user_id, name, date, notes, items, created_at, updated_at`

func (r *InventoryCountRepo) Create(ctx context.Context, c *entity.InventoryCount) error {
	query := `INSERT INTO inventory_counts (` + inventoryCountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.UserID, c.Name, c.Date, c.Notes, inventoryItemsOrEmpty(c.Items), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory count: %w", err)
	}
	return nil
}

func (r *InventoryCountRepo) Update(ctx context.Context, c *entity.InventoryCount) error {
	const query = `
		UPDATE inventory_counts
		   SET name = $4, date = $5, notes = $6, items = $7, updated_at = $8
		 WHERE id = $1 AND company_id = $2 AND user_id = $3`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.UserID, c.Name, c.Date, c.Notes, inventoryItemsOrEmpty(c.Items), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryCountRepo) GetByID(ctx context.Context, scope repository.Scope, id string) (*entity.InventoryCount, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + inventoryCountColumns + ` FROM inventory_counts WHERE id = $1 AND company_id = $2 AND user_id = $3`
	c, err := scanInventoryCount(r.q.QueryRow(ctx, query, id, scope.CompanyID, scope.UserID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory count: %w", err)
	}
	return c, nil
}

func (r *InventoryCountRepo) List(ctx context.Context, scope repository.Scope, limit, offset int) ([]*entity.InventoryCount, error) {
	query := `SELECT ` + inventoryCountColumns + ` FROM inventory_counts
		WHERE company_id = $1 AND user_id = $2
		ORDER BY date DESC, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, scope.CompanyID, scope.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory counts: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryCount
	for rows.Next() {
		c, err := scanInventoryCount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *InventoryCountRepo) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return deleteScoped(ctx, r.q, "inventory_counts", scope, id)
}

func scanInventoryCount(row pgx.Row) (*entity.InventoryCount, error) {
	var c entity.InventoryCount
	err := row.Scan(&c.ID, &c.CompanyID, &c.UserID, &c.Name, &c.Date, &c.Notes, &c.Items, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func inventoryItemsOrEmpty(items []entity.InventoryItem) []entity.InventoryItem {
	if items == nil {
		return []entity.InventoryItem{}
	}
	return items
}
