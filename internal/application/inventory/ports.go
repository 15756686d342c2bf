package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
)

// ReportGenerator PDF de la análisis de quebras (implementado con maroto).
type ReportGenerator interface {
	InventoryPDF(ctx context.Context, h ports.ReportHeader, c *dto.InventoryCountResponse) ([]byte, error)
}

// SheetCodec planillas del inventario (implementado con excelize).
type SheetCodec interface {
	InventoryXLSX(c *dto.InventoryCountResponse) ([]byte, error)
	// InventoryTemplateXLSX planilla modelo con la cabecera de importación y dos ejemplos.
	InventoryTemplateXLSX() ([]byte, error)
	// ReadInventoryItems lee la primera hoja por nombre de columna; filas sin código se saltan.
	ReadInventoryItems(r io.Reader) ([]dto.InventoryItemRequest, error)
}
