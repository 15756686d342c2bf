package repository

import (
	"context"

	"github.com/jhoicas/desossa-api/internal/domain/entity"
)

// BreakdownRepository persistencia de desossas. GetByID devuelve (nil, nil) si no existe en el scope.
type BreakdownRepository interface {
	Create(ctx context.Context, b *entity.Breakdown) error
	Update(ctx context.Context, b *entity.Breakdown) error
	GetByID(ctx context.Context, scope Scope, id string) (*entity.Breakdown, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.Breakdown, error)
	Delete(ctx context.Context, scope Scope, id string) error
}
