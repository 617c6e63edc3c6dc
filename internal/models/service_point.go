package models

import (
	"sort"
	"strings"
)

// ServicePoint is a physical office addressed by an integer id in the scheduling API
type ServicePoint struct {
	ID    int    `json:"servicePointId"`
	Label string `json:"city"`
}

// servicePoints maps the city label produced by city detection to its service point id
var servicePoints = map[string]int{
	"Salvador - BA":             1,
	"Feira de Santana - BA":     2,
	"Vitória da Conquista - BA": 3,
	"XiqueXique - BA":           4,
	"Lauro de Freitas - BA":     5,
}

// ServicePointID returns the service point for a city label
func ServicePointID(city string) (int, bool) {
	id, ok := servicePoints[strings.TrimSpace(city)]
	return id, ok
}

// ServicePoints returns the whole table ordered by id
func ServicePoints() []ServicePoint {
	out := make([]ServicePoint, 0, len(servicePoints))
	for label, id := range servicePoints {
		out = append(out, ServicePoint{ID: id, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
