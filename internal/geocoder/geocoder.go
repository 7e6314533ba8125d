package geocoder

import (
	"strings"

	"github.com/silentvoice/anonymous_reporting_system/internal/models"
)

// Geocoder преобразует свободный текст местоположения в координаты.
// Вторым значением возвращается false, если стратегия не смогла распознать место.
type Geocoder interface {
	Geocode(location string) (models.Coordinates, bool)
}

// Static - справочник известных мест кампуса. Сопоставление идёт по
// нормализованному названию (нижний регистр, обрезанные пробелы).
type Static struct {
	places map[string]models.Coordinates
}

func NewStatic(places map[string]models.Coordinates) *Static {
	normalized := make(map[string]models.Coordinates, len(places))
	for name, coords := range places {
		normalized[normalizeName(name)] = coords
	}
	return &Static{places: normalized}
}

func (s *Static) Geocode(location string) (models.Coordinates, bool) {
	coords, ok := s.places[normalizeName(location)]
	return coords, ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultCampusPlaces возвращает стартовый справочник мест вокруг центра кампуса
func DefaultCampusPlaces(center models.Coordinates) map[string]models.Coordinates {
	return map[string]models.Coordinates{
		"Main Library":    {Lat: center.Lat + 0.0012, Lng: center.Lng - 0.0008},
		"Student Center":  {Lat: center.Lat - 0.0006, Lng: center.Lng + 0.0021},
		"Main Gate":       {Lat: center.Lat + 0.0034, Lng: center.Lng + 0.0005},
		"Parking Lot B":   {Lat: center.Lat - 0.0041, Lng: center.Lng - 0.0027},
		"Sports Complex":  {Lat: center.Lat + 0.0058, Lng: center.Lng - 0.0049},
		"Dormitory Block": {Lat: center.Lat - 0.0022, Lng: center.Lng + 0.0063},
	}
}

// Pseudo - детерминированная запасная стратегия: 32-битный скользящий хэш
// строки местоположения смещает точку в пределах ~1км от центра кампуса.
// Одинаковый текст всегда даёт одну и ту же точку.
type Pseudo struct {
	center models.Coordinates
}

func NewPseudo(center models.Coordinates) *Pseudo {
	return &Pseudo{center: center}
}

func (p *Pseudo) Geocode(location string) (models.Coordinates, bool) {
	var hash int32
	for _, r := range location {
		hash = hash<<5 - hash + int32(r)
	}

	latOffset := float64(hash%1000) / 1000 * 0.01
	lngOffset := float64((hash>>4)%1000) / 1000 * 0.01

	return models.Coordinates{
		Lat: p.center.Lat + latOffset,
		Lng: p.center.Lng + lngOffset,
	}, true
}

// Chain опрашивает стратегии по порядку и возвращает первый успешный результат
type Chain []Geocoder

func (c Chain) Geocode(location string) (models.Coordinates, bool) {
	for _, g := range c {
		if coords, ok := g.Geocode(location); ok {
			return coords, true
		}
	}
	return models.Coordinates{}, false
}
