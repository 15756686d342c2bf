// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y en desarrollo con DB_DRIVER=memory; no sobrevive a un reinicio.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository        = (*CompanyRepo)(nil)
	_ repository.UserRepository           = (*UserRepo)(nil)
	_ repository.BreakdownRepository      = (*BreakdownRepo)(nil)
	_ repository.SimulationRepository     = (*SimulationRepo)(nil)
	_ repository.YieldParameterRepository = (*YieldParameterRepo)(nil)
	_ repository.InvoiceRepository        = (*InvoiceRepo)(nil)
	_ repository.InventoryCountRepository = (*InventoryCountRepo)(nil)
)

// Store guarda todos los registros bajo un único mutex.
type Store struct {
	mu          sync.RWMutex
	companies   map[string]entity.Company
	modules     map[string]map[string]bool
	users       map[string]entity.User
	breakdowns  map[string]entity.Breakdown
	simulations map[string]entity.PriceSimulation
	params      map[string]entity.YieldParameter
	invoices    map[string]entity.Invoice
	inventories map[string]entity.InventoryCount
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		companies:   make(map[string]entity.Company),
		modules:     make(map[string]map[string]bool),
		users:       make(map[string]entity.User),
		breakdowns:  make(map[string]entity.Breakdown),
		simulations: make(map[string]entity.PriceSimulation),
		params:      make(map[string]entity.YieldParameter),
		invoices:    make(map[string]entity.Invoice),
		inventories: make(map[string]entity.InventoryCount),
	}
}

// Companies devuelve el adaptador CompanyRepository.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s} }

// Users devuelve el adaptador UserRepository.
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

// Breakdowns devuelve el adaptador BreakdownRepository.
func (s *Store) Breakdowns() *BreakdownRepo { return &BreakdownRepo{s} }

// Simulations devuelve el adaptador SimulationRepository.
func (s *Store) Simulations() *SimulationRepo { return &SimulationRepo{s} }

// YieldParameters devuelve el adaptador YieldParameterRepository.
func (s *Store) YieldParameters() *YieldParameterRepo { return &YieldParameterRepo{s} }

// Invoices devuelve el adaptador InvoiceRepository.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s} }

// InventoryCounts devuelve el adaptador InventoryCountRepository.
func (s *Store) InventoryCounts() *InventoryCountRepo { return &InventoryCountRepo{s} }

func inScope(companyID, userID string, scope repository.Scope) bool {
	return companyID == scope.CompanyID && userID == scope.UserID
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// ── Companies ────────────────────────────────────────────────────────────────

// CompanyRepo empresas y módulos.
type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.companies {
		if existing.CNPJ == c.CNPJ {
			return domain.ErrDuplicate
		}
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.companies {
		if c.CNPJ == cnpj {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *CompanyRepo) ActivateModules(_ context.Context, companyID string, modules []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.modules[companyID] == nil {
		r.s.modules[companyID] = make(map[string]bool)
	}
	for _, m := range modules {
		r.s.modules[companyID][m] = true
	}
	return nil
}

func (r *CompanyRepo) HasActiveModule(_ context.Context, companyID, moduleName string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.modules[companyID][moduleName], nil
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo usuarios.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil || u == nil || u.CompanyID != companyID {
		return nil, err
	}
	return u, nil
}

// ── Breakdowns ───────────────────────────────────────────────────────────────

// BreakdownRepo desossas.
type BreakdownRepo struct{ s *Store }

func (r *BreakdownRepo) Create(_ context.Context, b *entity.Breakdown) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.breakdowns[b.ID] = cloneBreakdown(*b)
	return nil
}

func (r *BreakdownRepo) Update(_ context.Context, b *entity.Breakdown) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.breakdowns[b.ID]
	if !ok || !inScope(old.CompanyID, old.UserID, repository.Scope{CompanyID: b.CompanyID, UserID: b.UserID}) {
		return domain.ErrNotFound
	}
	r.s.breakdowns[b.ID] = cloneBreakdown(*b)
	return nil
}

func (r *BreakdownRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*entity.Breakdown, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.breakdowns[id]
	if !ok || !inScope(b.CompanyID, b.UserID, scope) {
		return nil, nil
	}
	b = cloneBreakdown(b)
	return &b, nil
}

func (r *BreakdownRepo) List(_ context.Context, scope repository.Scope, limit, offset int) ([]*entity.Breakdown, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Breakdown
	for _, b := range r.s.breakdowns {
		if inScope(b.CompanyID, b.UserID, scope) {
			b = cloneBreakdown(b)
			list = append(list, &b)
		}
	}
	sort.Slice(list, func(i, j int) bool { return newer(list[i].Date, list[j].Date, list[i].ID, list[j].ID) })
	return page(list, limit, offset), nil
}

func (r *BreakdownRepo) Delete(_ context.Context, scope repository.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.breakdowns[id]
	if !ok || !inScope(b.CompanyID, b.UserID, scope) {
		return domain.ErrNotFound
	}
	delete(r.s.breakdowns, id)
	return nil
}

func cloneBreakdown(b entity.Breakdown) entity.Breakdown {
	b.Cuts = append([]entity.BreakdownCut(nil), b.Cuts...)
	return b
}

// ── Simulations ──────────────────────────────────────────────────────────────

// SimulationRepo simulaciones de precio.
type SimulationRepo struct{ s *Store }

func (r *SimulationRepo) Create(_ context.Context, sim *entity.PriceSimulation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.simulations[sim.ID] = cloneSimulation(*sim)
	return nil
}

func (r *SimulationRepo) Update(_ context.Context, sim *entity.PriceSimulation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.simulations[sim.ID]
	if !ok || !inScope(old.CompanyID, old.UserID, repository.Scope{CompanyID: sim.CompanyID, UserID: sim.UserID}) {
		return domain.ErrNotFound
	}
	r.s.simulations[sim.ID] = cloneSimulation(*sim)
	return nil
}

func (r *SimulationRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*entity.PriceSimulation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sim, ok := r.s.simulations[id]
	if !ok || !inScope(sim.CompanyID, sim.UserID, scope) {
		return nil, nil
	}
	sim = cloneSimulation(sim)
	return &sim, nil
}

func (r *SimulationRepo) List(_ context.Context, scope repository.Scope, limit, offset int) ([]*entity.PriceSimulation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.PriceSimulation
	for _, sim := range r.s.simulations {
		if inScope(sim.CompanyID, sim.UserID, scope) {
			sim = cloneSimulation(sim)
			list = append(list, &sim)
		}
	}
	sort.Slice(list, func(i, j int) bool { return newer(list[i].Date, list[j].Date, list[i].ID, list[j].ID) })
	return page(list, limit, offset), nil
}

func (r *SimulationRepo) Delete(_ context.Context, scope repository.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sim, ok := r.s.simulations[id]
	if !ok || !inScope(sim.CompanyID, sim.UserID, scope) {
		return domain.ErrNotFound
	}
	delete(r.s.simulations, id)
	return nil
}

func cloneSimulation(s entity.PriceSimulation) entity.PriceSimulation {
	s.Items = append([]entity.SimulationLine(nil), s.Items...)
	return s
}

// ── Yield parameters ─────────────────────────────────────────────────────────

// YieldParameterRepo catálogo de rendimiento (código de pieza único por empresa).
type YieldParameterRepo struct{ s *Store }

func (r *YieldParameterRepo) Create(_ context.Context, p *entity.YieldParameter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.codeTaken(p) {
		return domain.ErrDuplicate
	}
	r.s.params[p.ID] = *p
	return nil
}

func (r *YieldParameterRepo) Update(_ context.Context, p *entity.YieldParameter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.params[p.ID]
	if !ok || !inScope(old.CompanyID, old.UserID, repository.Scope{CompanyID: p.CompanyID, UserID: p.UserID}) {
		return domain.ErrNotFound
	}
	if r.codeTaken(p) {
		return domain.ErrDuplicate
	}
	r.s.params[p.ID] = *p
	return nil
}

func (r *YieldParameterRepo) codeTaken(p *entity.YieldParameter) bool {
	for id, existing := range r.s.params {
		if id != p.ID && existing.CompanyID == p.CompanyID && existing.PieceCode == p.PieceCode {
			return true
		}
	}
	return false
}

func (r *YieldParameterRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*entity.YieldParameter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.params[id]
	if !ok || !inScope(p.CompanyID, p.UserID, scope) {
		return nil, nil
	}
	return &p, nil
}

func (r *YieldParameterRepo) ListAll(_ context.Context, scope repository.Scope, search string) ([]*entity.YieldParameter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(search))
	var list []*entity.YieldParameter
	for _, p := range r.s.params {
		if !inScope(p.CompanyID, p.UserID, scope) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.PieceCode), q) && !strings.Contains(strings.ToLower(p.PieceName), q) {
			continue
		}
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PieceCode < list[j].PieceCode })
	return list, nil
}

func (r *YieldParameterRepo) Delete(_ context.Context, scope repository.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.params[id]
	if !ok || !inScope(p.CompanyID, p.UserID, scope) {
		return domain.ErrNotFound
	}
	delete(r.s.params, id)
	return nil
}

// ── Invoices ─────────────────────────────────────────────────────────────────

// InvoiceRepo notas fiscales de compra.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.invoices[inv.ID]
	if !ok || !inScope(old.CompanyID, old.UserID, repository.Scope{CompanyID: inv.CompanyID, UserID: inv.UserID}) {
		return domain.ErrNotFound
	}
	r.s.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok || !inScope(inv.CompanyID, inv.UserID, scope) {
		return nil, nil
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

func (r *InvoiceRepo) List(_ context.Context, scope repository.Scope, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inScope(inv.CompanyID, inv.UserID, scope) {
			inv = cloneInvoice(inv)
			list = append(list, &inv)
		}
	}
	sort.Slice(list, func(i, j int) bool { return newer(list[i].Date, list[j].Date, list[i].ID, list[j].ID) })
	return page(list, limit, offset), nil
}

func (r *InvoiceRepo) Delete(_ context.Context, scope repository.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || !inScope(inv.CompanyID, inv.UserID, scope) {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	return nil
}

func cloneInvoice(inv entity.Invoice) entity.Invoice {
	inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return inv
}

// ── Inventory counts ─────────────────────────────────────────────────────────

// InventoryCountRepo inventarios físicos guardados.
type InventoryCountRepo struct{ s *Store }

func (r *InventoryCountRepo) Create(_ context.Context, c *entity.InventoryCount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.inventories[c.ID] = cloneInventoryCount(*c)
	return nil
}

func (r *InventoryCountRepo) Update(_ context.Context, c *entity.InventoryCount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.inventories[c.ID]
	if !ok || !inScope(old.CompanyID, old.UserID, repository.Scope{CompanyID: c.CompanyID, UserID: c.UserID}) {
		return domain.ErrNotFound
	}
	r.s.inventories[c.ID] = cloneInventoryCount(*c)
	return nil
}

func (r *InventoryCountRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*entity.InventoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.inventories[id]
	if !ok || !inScope(c.CompanyID, c.UserID, scope) {
		return nil, nil
	}
	c = cloneInventoryCount(c)
	return &c, nil
}

func (r *InventoryCountRepo) List(_ context.Context, scope repository.Scope, limit, offset int) ([]*entity.InventoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.InventoryCount
	for _, c := range r.s.inventories {
		if inScope(c.CompanyID, c.UserID, scope) {
			c = cloneInventoryCount(c)
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return newer(list[i].Date, list[j].Date, list[i].ID, list[j].ID) })
	return page(list, limit, offset), nil
}

func (r *InventoryCountRepo) Delete(_ context.Context, scope repository.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.inventories[id]
	if !ok || !inScope(c.CompanyID, c.UserID, scope) {
		return domain.ErrNotFound
	}
	delete(r.s.inventories, id)
	return nil
}

func cloneInventoryCount(c entity.InventoryCount) entity.InventoryCount {
	c.Items = append([]entity.InventoryItem(nil), c.Items...)
	return c
}

// newer ordena por fecha descendente y desempata por ID para un orden estable.
func newer(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA < idB
}
