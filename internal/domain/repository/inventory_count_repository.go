package repository

import (
	"context"

	"github.com/jhoicas/desossa-api/internal/domain/entity"
)

// InventoryCountRepository persistencia de inventarios físicos (ítems en JSONB).
// GetByID devuelve (nil, nil) si no existe en el scope.
type InventoryCountRepository interface {
	Create(ctx context.Context, c *entity.InventoryCount) error
	Update(ctx context.Context, c *entity.InventoryCount) error
	GetByID(ctx context.Context, scope Scope, id string) (*entity.InventoryCount, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.InventoryCount, error)
	Delete(ctx context.Context, scope Scope, id string) error
}
