package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, user_id, number, date, issuer_cnpj, issuer_name, notes, items, total, created_at, updated_at`

// Create persiste la nota fiscal con sus ítems.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.UserID, inv.Number, inv.Date, inv.IssuerCNPJ, inv.IssuerName, inv.Notes,
		invoiceItemsOrEmpty(inv.Items), inv.Total, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update reemplaza cabecera e ítems.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	const query = `
		UPDATE invoices
		   SET number = $4, date = $5, issuer_cnpj = $6, issuer_name = $7, notes = $8,
		       items = $9, total = $10, updated_at = $11
		 WHERE id = $1 AND company_id = $2 AND user_id = $3`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.UserID, inv.Number, inv.Date, inv.IssuerCNPJ, inv.IssuerName, inv.Notes,
		invoiceItemsOrEmpty(inv.Items), inv.Total, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe en el scope.
func (r *InvoiceRepo) GetByID(ctx context.Context, scope repository.Scope, id string) (*entity.Invoice, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND company_id = $2 AND user_id = $3`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id, scope.CompanyID, scope.UserID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List notas fiscales del scope, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, scope repository.Scope, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 AND user_id = $2
		ORDER BY date DESC, id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, scope.CompanyID, scope.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Delete elimina una nota fiscal del scope.
func (r *InvoiceRepo) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return deleteScoped(ctx, r.q, "invoices", scope, id)
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.UserID, &inv.Number, &inv.Date, &inv.IssuerCNPJ, &inv.IssuerName, &inv.Notes,
		&inv.Items, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func invoiceItemsOrEmpty(items []entity.InvoiceItem) []entity.InvoiceItem {
	if items == nil {
		return []entity.InvoiceItem{}
	}
	return items
}
