package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost custo médio ponderado tras una entrada (servicio de dominio).
// NuevoCosto = ((Estoque * CustoAtual) + (QtdEntrada * CustoEntrada)) / (Estoque + QtdEntrada)
func WeightedAverageCost(stock, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := stock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
