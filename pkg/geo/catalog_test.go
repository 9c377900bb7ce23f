package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Len(t, c.States(), 51)
	assert.NotEmpty(t, c.TopCities(100))
	assert.Equal(t, "Illinois", c.StateName("il"))
}

func TestNew_UnknownState(t *testing.T) {
	_, err := New([]byte("states:\n  IL: Illinois\ncities:\n  - {name: Nowhere, state: ZZ, population: 1}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state")

	_, err = New([]byte("cities: ["))
	require.Error(t, err)
}

func TestCatalog_StateCode(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"IL", "IL", true},
		{"il", "IL", true},
		{"Illinois", "IL", true},
		{" new york ", "NY", true},
		{"Narnia", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		code, ok := c.StateCode(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, code, tt.in)
	}
}

func TestCatalog_Normalize(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	city, state, ok := c.Normalize("  springfield ", "Illinois")
	assert.True(t, ok)
	assert.Equal(t, "Springfield", city)
	assert.Equal(t, "IL", state)

	city, state, ok = c.Normalize("Smallville", "ks")
	assert.True(t, ok, "unknown city in a known state is kept")
	assert.Equal(t, "Smallville", city)
	assert.Equal(t, "KS", state)

	_, _, ok = c.Normalize("Springfield", "XX")
	assert.False(t, ok)
	_, _, ok = c.Normalize("", "IL")
	assert.False(t, ok)
}

func TestCatalog_CitiesInState(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	cities := c.CitiesInState("Illinois")
	require.NotEmpty(t, cities)
	assert.Equal(t, "Chicago", cities[0].Name, "largest first")
	for i := 1; i < len(cities); i++ {
		assert.GreaterOrEqual(t, cities[i-1].Population, cities[i].Population)
		assert.Equal(t, "IL", cities[i].State)
	}
	assert.Nil(t, c.CitiesInState("nowhere"))
}

func TestCatalog_CitiesInDistrict(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	cities := c.CitiesInDistrict("IL", 13)
	require.Len(t, cities, 1)
	assert.Equal(t, "Springfield", cities[0].Name)
	assert.Empty(t, c.CitiesInDistrict("IL", 99))
}

func TestCatalog_TopCities(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	top := c.TopCities(3)
	require.Len(t, top, 3)
	assert.Equal(t, "New York", top[0].Name)
	assert.Equal(t, "Los Angeles", top[1].Name)
	assert.Equal(t, "Chicago", top[2].Name)
	assert.Nil(t, c.TopCities(0))

	top[0].Name = "changed"
	assert.Equal(t, "New York", c.TopCities(1)[0].Name, "result is a copy")
}

func TestCatalog_ByPopulation(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	cities := c.ByPopulation(100000, 200000, 0)
	require.NotEmpty(t, cities)
	for _, ct := range cities {
		assert.GreaterOrEqual(t, ct.Population, 100000)
		assert.LessOrEqual(t, ct.Population, 200000)
	}

	assert.Len(t, c.ByPopulation(100000, 200000, 2), 2)
	big := c.ByPopulation(2000000, 0, 0)
	assert.Len(t, big, 4)
}

func TestCatalog_Suggest(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	res := c.Suggest("spring", 10)
	require.Len(t, res, 5, "four Springfields and Colorado Springs")
	assert.Equal(t, "Springfield", res[0].Name, "prefix matches first")
	assert.Equal(t, "Colorado Springs", res[len(res)-1].Name)

	res = c.Suggest("springfield, mo", 10)
	require.Len(t, res, 1)
	assert.Equal(t, "MO", res[0].State)

	assert.Len(t, c.Suggest("san", 2), 2)
	assert.Nil(t, c.Suggest("  ", 5))
	assert.Empty(t, c.Suggest("zzzz", 5))
}
