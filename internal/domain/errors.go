package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// Códigos de validación de los calculadores de desossa, simulación, rendimiento e inventario.
const (
	CodeInvalidBatchTotals      = "invalid-batch-totals"
	CodeInvalidCutFields        = "invalid-cut-fields"
	CodeZeroOrNegativeRevenue   = "zero-or-negative-revenue"
	CodeInvalidMargin           = "invalid-margin"
	CodeInvalidSimulationField  = "invalid-simulation-field"
	CodeInvalidProjectionWeight = "invalid-projection-weight"
	CodeInvalidInventoryItem    = "invalid-inventory-item"
)

// ValidationError error de entrada determinista de un calculador.
// El mensaje se muestra tal cual al usuario (pt-BR); Code identifica la categoría.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is compara por Code, de modo que un error con mensaje detallado sigue
// coincidiendo con el sentinel correspondiente en errors.Is.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

// NewValidationError construye un error de validación con mensaje propio.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// Sentinels de validación (usar con errors.Is).
var (
	ErrInvalidBatchTotals = NewValidationError(CodeInvalidBatchTotals,
		"Peso inicial e custo total da carcaça são obrigatórios: o peso deve ser maior que zero e o custo não pode ser negativo.")
	ErrInvalidCutFields = NewValidationError(CodeInvalidCutFields,
		"Verifique se todos os cortes têm nome, peso e preço de venda (exceto descarte) preenchidos com valores não negativos.")
	ErrZeroOrNegativeRevenue = NewValidationError(CodeZeroOrNegativeRevenue,
		"A receita total de venda é zero ou negativa. Não é possível calcular o rateio de custos.")
	ErrInvalidMargin = NewValidationError(CodeInvalidMargin,
		"A nova margem deve estar entre 0% e menos de 100%.")
	ErrInvalidSimulationField = NewValidationError(CodeInvalidSimulationField,
		"Campo ou valor inválido para a simulação.")
	ErrInvalidProjectionWeight = NewValidationError(CodeInvalidProjectionWeight,
		"Informe um peso de carcaça válido, maior que zero.")
	ErrInvalidInventoryItem = NewValidationError(CodeInvalidInventoryItem,
		"Verifique se todos os itens têm código, nome e quantidades e custos numéricos não negativos.")
)

// AsValidationError devuelve el *ValidationError contenido en err, si lo hay.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
