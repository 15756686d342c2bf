package entity

import "time"

// Company representa una empresa/tenant del sistema (titular del CNPJ).
type Company struct {
	ID        string
	Name      string
	CNPJ      string // con o sin máscara; se persiste solo con dígitos
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Módulos disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleDesossa    = "desossa"
	ModuleSimulacao  = "simulacao"
	ModuleRendimento = "rendimento"
	ModuleNotas      = "notas_fiscais"
	ModuleInventario = "inventario"
)

// AllModules módulos activados por defecto al crear una empresa.
var AllModules = []string{ModuleDesossa, ModuleSimulacao, ModuleRendimento, ModuleNotas, ModuleInventario}

// CompanyModule activación de un módulo en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
