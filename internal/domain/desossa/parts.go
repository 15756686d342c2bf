package desossa

import "strings"

// PartDiscard es la parte reservada para hueso/desperdicio: precio forzado a 0,
// fuera de la receita y del peso comercial.
const PartDiscard = "descarte"

// PartUndefined agrupa los cortes sin parte asignada en el análisis por parte.
const PartUndefined = "nao_definida"

// Tipos de animal y filtro "todos".
const (
	AnimalBovino = "bovino"
	AnimalSuino  = "suino"
	AnimalAll    = "todos"
)

// PartOption entrada del catálogo de partes.
type PartOption struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

var bovinoParts = []PartOption{
	{"dianteiro", "Dianteiro"},
	{"traseiro", "Traseiro"},
	{"serrote", "Serrote"},
	{"boi_inteiro", "Boi Inteiro"},
	{"ponta_de_agulha", "Ponta de Agulha"},
	{"costela", "Costela"},
}

var suinoParts = []PartOption{
	{"pernil", "Pernil"},
	{"paleta", "Paleta"},
	{"lombo", "Lombo"},
	{"costela_suino", "Costela Suína"},
	{"panceta", "Panceta (Barriga)"},
	{"copa", "Copa"},
	{"papada", "Papada"},
	{"pe", "Pé"},
	{"rabo", "Rabo"},
	{"suino_inteiro", "Suíno Inteiro"},
}

var commonParts = []PartOption{
	{PartDiscard, "Descarte"},
	{"outro", "Outro"},
}

var partLabels = func() map[string]string {
	m := map[string]string{PartUndefined: "Não Definida", "pé": "Pé"}
	for _, list := range [][]PartOption{bovinoParts, suinoParts, commonParts} {
		for _, p := range list {
			m[p.Slug] = p.Label
		}
	}
	return m
}()

// PartsFor devuelve el catálogo de partes de un tipo de animal (bovino por defecto),
// incluyendo descarte y outro al final.
func PartsFor(animal string) []PartOption {
	var base []PartOption
	switch animal {
	case AnimalSuino:
		base = suinoParts
	default:
		base = bovinoParts
	}
	out := make([]PartOption, 0, len(base)+len(commonParts))
	out = append(out, base...)
	return append(out, commonParts...)
}

// PartLabel etiqueta para mostrar; si la parte no está en el catálogo devuelve el slug.
func PartLabel(part string) string {
	if part == "" {
		return partLabels[PartUndefined]
	}
	if l, ok := partLabels[strings.ToLower(part)]; ok {
		return l
	}
	return part
}

// IsBovinePart indica si la parte pertenece al catálogo bovino.
func IsBovinePart(part string) bool { return inList(bovinoParts, part) }

// IsPorcinePart indica si la parte pertenece al catálogo suíno.
func IsPorcinePart(part string) bool {
	return inList(suinoParts, part) || strings.EqualFold(part, "pé")
}

func inList(list []PartOption, part string) bool {
	p := strings.ToLower(part)
	for _, o := range list {
		if o.Slug == p {
			return true
		}
	}
	return false
}

// FilterPartsByAnimal filtra agregados por tipo de animal.
// bovino incluye además las partes que no son ni bovinas ni suínas (descarte, outro...).
func FilterPartsByAnimal(parts []PartAggregate, animal string) []PartAggregate {
	out := make([]PartAggregate, 0, len(parts))
	for _, p := range parts {
		switch animal {
		case AnimalBovino:
			if IsBovinePart(p.Part) || !IsPorcinePart(p.Part) {
				out = append(out, p)
			}
		case AnimalSuino:
			if IsPorcinePart(p.Part) {
				out = append(out, p)
			}
		default:
			out = append(out, p)
		}
	}
	return out
}
