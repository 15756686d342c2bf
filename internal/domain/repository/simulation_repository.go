package repository

import (
	"context"

	"github.com/jhoicas/desossa-api/internal/domain/entity"
)

// SimulationRepository persistencia de simulaciones de precio.
type SimulationRepository interface {
	Create(ctx context.Context, s *entity.PriceSimulation) error
	Update(ctx context.Context, s *entity.PriceSimulation) error
	GetByID(ctx context.Context, scope Scope, id string) (*entity.PriceSimulation, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.PriceSimulation, error)
	Delete(ctx context.Context, scope Scope, id string) error
}
