package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pla(t *testing.T) Material {
	t.Helper()
	m, err := DefaultCatalog().Lookup("PLA")
	require.NoError(t, err)
	return m
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	assert.Equal(t, []string{"PLA", "ABS", "PETG", "TPU", "Nylon"}, c.Names())

	nylon, err := c.Lookup(" nylon ")
	require.NoError(t, err)
	assert.Equal(t, 1.14, nylon.Density)
	assert.Equal(t, 0.15, nylon.PricePerGram)
}

func TestLookupUnknown(t *testing.T) {
	_, err := DefaultCatalog().Lookup("wood")
	require.ErrorIs(t, err, ErrUnknownMaterial)
	assert.Contains(t, err.Error(), "PLA, ABS")
}

func TestWeight(t *testing.T) {
	m := pla(t)
	tests := []struct {
		name   string
		infill float64
		want   float64
	}{
		{"shell only", 0, 12.4},
		{"default infill", 20, 34.72},
		{"solid", 100, 124},
		{"clamped high", 150, 124},
		{"clamped low", -10, 12.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Weight(100, tt.infill), 1e-9)
		})
	}
}

func TestSurcharge(t *testing.T) {
	s := Settings{InfillSurchargeEnabled: true, InfillSurchargeRate: 0.02}
	assert.Equal(t, 0.0, s.Surcharge(20))
	assert.Equal(t, 0.0, s.Surcharge(10))
	assert.InDelta(t, 0.6, s.Surcharge(50), 1e-9)
	assert.InDelta(t, 1.6, s.Surcharge(200), 1e-9)

	s.InfillSurchargeEnabled = false
	assert.Equal(t, 0.0, s.Surcharge(100))
}

func TestNewQuote_MinimumPrice(t *testing.T) {
	q := NewQuote(pla(t), 10, 20, Settings{MinimumPrice: 5})

	assert.Equal(t, "PLA", q.Material)
	assert.Equal(t, 3.47, q.WeightGrams)
	assert.Equal(t, 0.17, q.MaterialPrice)
	assert.True(t, q.MinimumApplied)
	assert.Equal(t, 5.0, q.Total)
}

func TestNewQuote_FullBreakdown(t *testing.T) {
	s := Settings{MinimumPrice: 5, SetupFee: 2, InfillSurchargeEnabled: true, InfillSurchargeRate: 0.02}
	q := NewQuote(pla(t), 100, 100, s)

	assert.Equal(t, 124.0, q.WeightGrams)
	assert.Equal(t, 6.2, q.MaterialPrice)
	assert.Equal(t, 1.6, q.InfillSurcharge)
	assert.Equal(t, 2.0, q.SetupFee)
	assert.False(t, q.MinimumApplied)
	assert.InDelta(t, 9.8, q.Total, 1e-9)
}

func TestNewQuote_SurchargeRoundedOnlyInTotal(t *testing.T) {
	s := Settings{SetupFee: 1.004, InfillSurchargeEnabled: true, InfillSurchargeRate: 0.001}
	q := NewQuote(pla(t), 0, 23, s)

	// 1.004 + 0.003 rounds up; rounding the surcharge first would give 1.00
	assert.Equal(t, 0.0, q.InfillSurcharge)
	assert.Equal(t, 1.01, q.Total)
}

func TestNewQuote_RoundsVolume(t *testing.T) {
	q := NewQuote(pla(t), 0.123456789, 20, Settings{})
	assert.Equal(t, 0.1235, q.VolumeCM3)
	assert.Equal(t, 0.0, q.Total)
}

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog_Default(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), c)
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := writeCatalog(t, "materials.yaml", `
materials:
  - name: Resin
    density: 1.1
    price_per_gram: 0.2
    color: "#FFFFFF"
  - name: PLA
    density: 1.24
    price_per_gram: 0.04
`)
	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Resin", "PLA"}, c.Names())

	resin, err := c.Lookup("resin")
	require.NoError(t, err)
	assert.Equal(t, 1.1, resin.Density)
	assert.Equal(t, "#FFFFFF", resin.Color)
}

func TestLoadCatalog_TOML(t *testing.T) {
	path := writeCatalog(t, "materials.toml", `
[[materials]]
name = "PETG"
density = 1.27
price_per_gram = 0.08

[[materials]]
name = "CF-Nylon"
density = 1.2
price_per_gram = 0.3
description = "Carbon filled"
`)
	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, "Carbon filled", c[1].Description)
	assert.Equal(t, 0.08, c[0].PricePerGram)
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown yaml key", "m.yml", "materials:\n  - name: PLA\n    density: 1.2\n    price_per_gram: 0.1\n    weight: 3\n"},
		{"unknown toml key", "m.toml", "[[materials]]\nname = \"PLA\"\ndensity = 1.2\nprice_per_gram = 0.1\nweight = 3\n"},
		{"zero density", "m.yaml", "materials:\n  - name: PLA\n    density: 0\n    price_per_gram: 0.1\n"},
		{"duplicate", "m.yaml", "materials:\n  - {name: PLA, density: 1, price_per_gram: 1}\n  - {name: pla, density: 1, price_per_gram: 1}\n"},
		{"empty", "m.yaml", "materials: []\n"},
		{"wrong extension", "m.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(writeCatalog(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog_Missing(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
