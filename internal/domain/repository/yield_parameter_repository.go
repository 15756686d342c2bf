package repository

import (
	"context"

	"github.com/jhoicas/desossa-api/internal/domain/entity"
)

// YieldParameterRepository persistencia del catálogo de rendimiento.
// Create/Update devuelven domain.ErrDuplicate si el código de pieza ya existe en la empresa.
type YieldParameterRepository interface {
	Create(ctx context.Context, p *entity.YieldParameter) error
	Update(ctx context.Context, p *entity.YieldParameter) error
	GetByID(ctx context.Context, scope Scope, id string) (*entity.YieldParameter, error)
	// ListAll devuelve todo el catálogo ordenado por código de pieza; search filtra por código o nombre.
	ListAll(ctx context.Context, scope Scope, search string) ([]*entity.YieldParameter, error)
	Delete(ctx context.Context, scope Scope, id string) error
}
