package pricing

import "math"

const (
	// shellFactor is the share of the volume printed solid regardless of infill
	shellFactor = 0.10

	// surchargeBaseInfill is the infill percentage included in the base price
	surchargeBaseInfill = 20.0
)

// Settings are the shop-wide pricing rules
type Settings struct {
	MinimumPrice           float64
	SetupFee               float64
	InfillSurchargeEnabled bool
	InfillSurchargeRate    float64
}

// Quote is the price breakdown for one part
type Quote struct {
	Material        string  `json:"material"`
	VolumeCM3       float64 `json:"volume_cm3"`
	InfillPercent   float64 `json:"infill_percent"`
	WeightGrams     float64 `json:"weight_grams"`
	MaterialPrice   float64 `json:"material_price"`
	SetupFee        float64 `json:"setup_fee"`
	InfillSurcharge float64 `json:"infill_surcharge"`
	MinimumApplied  bool    `json:"minimum_applied"`
	Total           float64 `json:"total"`
}

// Weight returns the printed weight in grams. Infill is clamped to 0-100.
func (m Material) Weight(volumeCM3, infill float64) float64 {
	infill = ClampInfill(infill)
	return volumeCM3 * m.Density * (shellFactor + infill/100*(1-shellFactor))
}

// ClampInfill limits an infill percentage to 0-100
func ClampInfill(infill float64) float64 {
	return math.Max(0, math.Min(100, infill))
}

// Surcharge returns the extra charged for infill above the base percentage
func (s Settings) Surcharge(infill float64) float64 {
	infill = ClampInfill(infill)
	if !s.InfillSurchargeEnabled || infill <= surchargeBaseInfill {
		return 0
	}
	return (infill - surchargeBaseInfill) * s.InfillSurchargeRate
}

// NewQuote prices a part of the given volume printed in m
func NewQuote(m Material, volumeCM3, infill float64, s Settings) Quote {
	infill = ClampInfill(infill)
	weight := round2(m.Weight(volumeCM3, infill))
	materialPrice := round2(m.Weight(volumeCM3, infill) * m.PricePerGram)
	surcharge := s.Surcharge(infill)

	total := materialPrice + s.SetupFee + surcharge
	minimum := total < s.MinimumPrice
	if minimum {
		total = s.MinimumPrice
	}

	return Quote{
		Material:        m.Name,
		VolumeCM3:       math.Round(volumeCM3*1e4) / 1e4,
		InfillPercent:   infill,
		WeightGrams:     weight,
		MaterialPrice:   materialPrice,
		SetupFee:        s.SetupFee,
		InfillSurcharge: round2(surcharge),
		MinimumApplied:  minimum,
		Total:           round2(total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
