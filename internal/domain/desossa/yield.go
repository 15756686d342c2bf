package desossa

// PieceParam parámetro de rendimiento de una pieza del catálogo.
type PieceParam struct {
	Code                 string
	Name                 string
	BodyPart             string
	ExpectedYieldPercent float64
	SalePricePerKg       float64
}

// ProjectedPiece pieza proyectada para un peso de carcaça.
type ProjectedPiece struct {
	PieceParam
	ProjectedWeightKg float64
	PieceValue        float64
	WeightShare       float64 // fracción del peso proyectado total
	RevenueShare      float64 // fracción de la receita proyectada total
	ResidualCost      float64
	CostPerKg         float64
	MarginPercent     float64
}

// Project proyecta peso, costo residual y margen por pieza.
//
// No hay costo de carcaça: el costo de cada pieza es (1 - participación en la venta) * valor
// de la pieza. Es una heurística distinta del rateio de Allocate y no deben unificarse.
// Devuelve nil si el peso proyectado total es 0.
func Project(pieces []PieceParam, totalWeightKg float64) []ProjectedPiece {
	out := make([]ProjectedPiece, len(pieces))
	var totalWeight, totalRevenue float64
	for i, p := range pieces {
		w := p.ExpectedYieldPercent / 100 * totalWeightKg
		out[i] = ProjectedPiece{PieceParam: p, ProjectedWeightKg: w, PieceValue: w * p.SalePricePerKg}
		totalWeight += w
		totalRevenue += out[i].PieceValue
	}
	if totalWeight == 0 {
		return nil
	}

	for i := range out {
		pp := &out[i]
		pp.WeightShare = pp.ProjectedWeightKg / totalWeight
		if totalRevenue > 0 {
			pp.RevenueShare = pp.PieceValue / totalRevenue
		}
		pp.ResidualCost = (1 - pp.RevenueShare) * pp.PieceValue
		if pp.ProjectedWeightKg > 0 {
			pp.CostPerKg = pp.ResidualCost / pp.ProjectedWeightKg
		}
		if pp.SalePricePerKg > 0 {
			pp.MarginPercent = (pp.SalePricePerKg - pp.CostPerKg) / pp.SalePricePerKg * 100
		}
	}
	return out
}

// FilterPiecesByPart filtra por nombre de parte; AnimalAll ("todos") o vacío devuelve todo.
func FilterPiecesByPart(pieces []PieceParam, part string) []PieceParam {
	if part == "" || part == AnimalAll {
		return pieces
	}
	out := make([]PieceParam, 0, len(pieces))
	for _, p := range pieces {
		if p.BodyPart == part {
			out = append(out, p)
		}
	}
	return out
}

// AvailableParts nombres de parte distintos y no vacíos, en orden de primera aparición.
func AvailableParts(pieces []PieceParam) []string {
	seen := make(map[string]bool)
	var parts []string
	for _, p := range pieces {
		if p.BodyPart == "" || seen[p.BodyPart] {
			continue
		}
		seen[p.BodyPart] = true
		parts = append(parts, p.BodyPart)
	}
	return parts
}
