// Package metrics expone contadores Prometheus de los calculadores.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculadores instrumentados.
const (
	CalculatorBreakdown  = "desossa"
	CalculatorSimulation = "simulacao"
	CalculatorDashboard  = "dashboard"
	CalculatorProjection = "rendimento"
	CalculatorInventory  = "inventario"
)

// Resultados posibles de un cálculo.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Recorder registra cálculos; lo consume la capa HTTP.
type Recorder interface {
	Calculation(calculator, outcome string)
}

// Metrics contadores sobre un registro propio (no el global).
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
}

// New crea el registro con los collectors de proceso y Go más los contadores de cálculo.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	calc := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "desossa_calculations_total",
		Help: "Cálculos ejecutados por calculador y resultado.",
	}, []string{"calculator", "outcome"})

	reg.MustRegister(
		calc,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{registry: reg, calculations: calc}
}

// Calculation incrementa desossa_calculations_total{calculator, outcome}.
func (m *Metrics) Calculation(calculator, outcome string) {
	m.calculations.WithLabelValues(calculator, outcome).Inc()
}

// Registry expone el registro para tests y collectors adicionales.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler net/http para GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Nop no registra nada.
type Nop struct{}

// Calculation no hace nada.
func (Nop) Calculation(string, string) {}
