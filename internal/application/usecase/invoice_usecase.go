package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/pkg/cnpj"
)

// InvoiceUseCase notas fiscais de compra (origen de la siembra de simulaciones).
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo}
}

// Create registra una nota fiscal calculando los totales de cada línea.
func (uc *InvoiceUseCase) Create(ctx context.Context, scope repository.Scope, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	now := time.Now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID,
		UserID:    scope.UserID,
		CreatedAt: now,
	}
	if err := fillInvoice(inv, in, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("nota fiscal: guardar: %w", err)
	}
	return toInvoiceResponse(inv), nil
}

// Update reemplaza cabecera e ítems.
func (uc *InvoiceUseCase) Update(ctx context.Context, scope repository.Scope, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := fillInvoice(inv, in, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("nota fiscal: actualizar: %w", err)
	}
	return toInvoiceResponse(inv), nil
}

// GetByID devuelve una nota fiscal del scope.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, scope repository.Scope, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// List lista notas fiscales, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, scope repository.Scope, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("nota fiscal: listar: %w", err)
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina una nota fiscal.
func (uc *InvoiceUseCase) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return uc.repo.Delete(ctx, scope, id)
}

func (uc *InvoiceUseCase) load(ctx context.Context, scope repository.Scope, id string) (*entity.Invoice, error) {
	inv, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("nota fiscal: obtener: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func fillInvoice(inv *entity.Invoice, in dto.InvoiceRequest, now time.Time) error {
	if strings.TrimSpace(in.Number) == "" {
		return fmt.Errorf("%w: número da nota é obrigatório", domain.ErrInvalidInput)
	}
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		desc := strings.TrimSpace(it.Description)
		q, qerr := dto.ParseNumber(it.Quantity)
		u, uerr := dto.ParseNumber(it.UnitValue)
		if desc == "" || qerr != nil || uerr != nil || q < 0 || u < 0 {
			return fmt.Errorf("%w: item %d da nota com descrição, quantidade ou valor unitário inválido", domain.ErrInvalidInput, i+1)
		}
		line := entity.InvoiceItem{
			ProductCode: strings.TrimSpace(it.ProductCode),
			Description: desc,
			Quantity:    dto.ToDecimalExact(q),
			UnitValue:   dto.ToDecimalExact(u),
			BodyPart:    strings.TrimSpace(it.BodyPart),
		}
		line.Total = line.Quantity.Mul(line.UnitValue).Round(2)
		total = total.Add(line.Total)
		items = append(items, line)
	}

	inv.Number = strings.TrimSpace(in.Number)
	inv.Date = now
	if in.Date != nil {
		inv.Date = *in.Date
	}
	inv.IssuerCNPJ = cnpj.Normalize(in.IssuerCNPJ)
	inv.IssuerName = in.IssuerName
	inv.Notes = in.Notes
	inv.Items = items
	inv.Total = total
	inv.UpdatedAt = now
	return nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ProductCode: it.ProductCode,
			Description: it.Description,
			Quantity:    it.Quantity.StringFixed(3),
			UnitValue:   it.UnitValue.StringFixed(2),
			Total:       it.Total.StringFixed(2),
			BodyPart:    it.BodyPart,
		})
	}
	return &dto.InvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		Date:       inv.Date,
		IssuerCNPJ: inv.IssuerCNPJ,
		IssuerName: inv.IssuerName,
		Notes:      inv.Notes,
		Items:      items,
		Total:      inv.Total.StringFixed(2),
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
}
