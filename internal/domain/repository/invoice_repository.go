package repository

import (
	"context"

	"github.com/jhoicas/desossa-api/internal/domain/entity"
)

// InvoiceRepository persistencia de notas fiscales de compra (ítems en JSONB).
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	Update(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, scope Scope, id string) (*entity.Invoice, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*entity.Invoice, error)
	Delete(ctx context.Context, scope Scope, id string) error
}
