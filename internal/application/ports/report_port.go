package ports

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
)

// ReportHeader datos de cabecera comunes a todos los reportes.
type ReportHeader struct {
	CompanyName string
	CNPJ        string
	Title       string
	GeneratedAt time.Time
}

// YieldReport catálogo de parámetros y, opcionalmente, la última proyección.
type YieldReport struct {
	Parameters []dto.YieldParameterResponse
	Projection *dto.ProjectionResponse
}

// ReportPDFGenerator puerto de salida para los reportes PDF (implementado con maroto).
type ReportPDFGenerator interface {
	BreakdownPDF(ctx context.Context, h ReportHeader, b *dto.BreakdownResponse) ([]byte, error)
	SimulationPDF(ctx context.Context, h ReportHeader, s *dto.SimulationResponse) ([]byte, error)
	YieldPDF(ctx context.Context, h ReportHeader, r *YieldReport) ([]byte, error)
}

// SpreadsheetCodec puerto de salida para planillas xlsx (filas <-> registros).
type SpreadsheetCodec interface {
	BreakdownXLSX(b *dto.BreakdownResponse) ([]byte, error)
	SimulationXLSX(s *dto.SimulationResponse) ([]byte, error)
	YieldXLSX(r *YieldReport) ([]byte, error)
	// ReadCuts lee cortes de la primera hoja: nome, código, peso, preço/kg, parte.
	ReadCuts(r io.Reader) ([]dto.CutInput, error)
}

// CompanyLookup lectura mínima de la empresa para armar la cabecera.
type CompanyLookup interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

// NewReportHeader arma la cabecera con el nombre de la empresa del tenant.
// Si la empresa no se puede leer, el reporte sale igual con cabecera genérica.
func NewReportHeader(ctx context.Context, companies CompanyLookup, companyID, title string) ReportHeader {
	h := ReportHeader{Title: title, GeneratedAt: time.Now()}
	if companies == nil {
		return h
	}
	if c, err := companies.GetByID(ctx, companyID); err == nil && c != nil {
		h.CompanyName = c.Name
		h.CNPJ = c.CNPJ
	}
	return h
}
