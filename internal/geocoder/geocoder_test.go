package geocoder

import (
	"math"
	"testing"

	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var campusCenter = models.Coordinates{Lat: 37.4275, Lng: -122.1697}

func TestStatic_KnownPlace(t *testing.T) {
	// Подготовка
	geo := NewStatic(DefaultCampusPlaces(campusCenter))

	// Действие
	coords, ok := geo.Geocode("Main Library")

	// Проверки
	require.True(t, ok)
	assert.InDelta(t, campusCenter.Lat+0.0012, coords.Lat, 1e-9)
	assert.InDelta(t, campusCenter.Lng-0.0008, coords.Lng, 1e-9)
}

func TestStatic_NameNormalized(t *testing.T) {
	// Подготовка
	geo := NewStatic(DefaultCampusPlaces(campusCenter))

	canonical, ok := geo.Geocode("Student Center")
	require.True(t, ok)

	// Действие: регистр и пробелы не влияют на распознавание
	variants := []string{"student center", "STUDENT CENTER", "  Student Center  "}
	for _, v := range variants {
		coords, ok := geo.Geocode(v)

		// Проверки
		require.True(t, ok, v)
		assert.Equal(t, canonical, coords)
	}
}

func TestStatic_UnknownPlace(t *testing.T) {
	// Подготовка
	geo := NewStatic(DefaultCampusPlaces(campusCenter))

	// Действие
	_, ok := geo.Geocode("Chemistry Annex")

	// Проверки
	assert.False(t, ok)
}

func TestPseudo_Deterministic(t *testing.T) {
	// Подготовка
	geo := NewPseudo(campusCenter)

	// Действие
	first, ok1 := geo.Geocode("behind the old gym")
	second, ok2 := geo.Geocode("behind the old gym")

	// Проверки: одинаковый текст всегда даёт одну и ту же точку
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestPseudo_StaysNearCenter(t *testing.T) {
	// Подготовка
	geo := NewPseudo(campusCenter)

	locations := []string{
		"",
		"a",
		"behind the old gym",
		"corridor between blocks C and D",
		"Общежитие, третий этаж",
		"somewhere very very very far away from everything",
	}

	for _, loc := range locations {
		// Действие
		coords, ok := geo.Geocode(loc)

		// Проверки: смещение не выходит за пределы ~1км от центра
		require.True(t, ok, loc)
		assert.Less(t, math.Abs(coords.Lat-campusCenter.Lat), 0.01, loc)
		assert.Less(t, math.Abs(coords.Lng-campusCenter.Lng), 0.01, loc)
	}
}

func TestPseudo_DifferentInputsSpread(t *testing.T) {
	// Подготовка
	geo := NewPseudo(campusCenter)

	// Действие
	first, _ := geo.Geocode("library entrance")
	second, _ := geo.Geocode("parking lot exit")

	// Проверки
	assert.NotEqual(t, first, second)
}

func TestChain_PrefersFirstMatch(t *testing.T) {
	// Подготовка: справочник перекрывает запасную стратегию
	static := NewStatic(DefaultCampusPlaces(campusCenter))
	chain := Chain{static, NewPseudo(campusCenter)}

	expected, ok := static.Geocode("Main Gate")
	require.True(t, ok)

	// Действие
	coords, ok := chain.Geocode("Main Gate")

	// Проверки
	require.True(t, ok)
	assert.Equal(t, expected, coords)
}

func TestChain_FallsThrough(t *testing.T) {
	// Подготовка
	pseudo := NewPseudo(campusCenter)
	chain := Chain{NewStatic(DefaultCampusPlaces(campusCenter)), pseudo}

	expected, _ := pseudo.Geocode("unmapped alley")

	// Действие: неизвестное место уходит в запасную стратегию
	coords, ok := chain.Geocode("unmapped alley")

	// Проверки
	require.True(t, ok)
	assert.Equal(t, expected, coords)
}

func TestChain_Empty(t *testing.T) {
	// Действие
	coords, ok := Chain{}.Geocode("anywhere")

	// Проверки
	assert.False(t, ok)
	assert.True(t, coords.Zero())
}
