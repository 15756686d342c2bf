package repository

// Scope owner + tenant de un registro. Toda lectura y escritura filtra por ambos.
type Scope struct {
	CompanyID string
	UserID    string
}
