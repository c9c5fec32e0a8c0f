// Package pricing computes the financial breakdown for a wool batch: gross
// revenue from the wool-type base price and quality adjustments, service fees
// for the inspector, mill and platform, and the farmer's net earnings.
package pricing

import (
	"math"

	"wooltrace/internal/domain"
)

// Base prices per kg by wool type.
var basePrices = map[domain.WoolType]float64{
	domain.WoolFineMerino: 25,
	domain.WoolMerino:     20,
	domain.WoolCorriedale: 15,
	domain.WoolCrossbred:  12,
	domain.WoolLincoln:    10,
}

const (
	// DefaultBasePricePerKg applies to wool types missing from the table.
	DefaultBasePricePerKg = 10

	inspectionFee      = 50   // flat, per batch
	processingFeePerKg = 2    // mill operator revenue
	platformFeeRate    = 0.05 // share of gross

	yieldBonusRate   = 0.10
	fineFiberRate    = 0.20
	highYieldPercent = 70
	lowYieldPercent  = 50
	fineFiberMicrons = 19
)

// BasePriceFor returns the per-kg base price for a wool type, falling back to
// the default for unknown types.
func BasePriceFor(woolType domain.WoolType) float64 {
	if price, ok := basePrices[woolType]; ok {
		return price
	}
	return DefaultBasePricePerKg
}

// ComputeFinancials derives the full Financials block for a batch snapshot.
// The quality report may be nil (no inspection yet). It never persists
// anything; storing the result on the batch is the caller's responsibility.
//
// The yield and fiber-diameter adjustments are independent, so a high-yield
// fine-fiber lot earns both. The quality modifier feeds gross revenue
// unrounded; only the returned values are rounded to cents. The stored
// QualityBonus is the rounded display value.
func ComputeFinancials(weight float64, woolType domain.WoolType, report *domain.QualityReport) (*domain.Financials, error) {
	if weight <= 0 {
		return nil, domain.ErrInvalidWeight
	}

	basePrice := BasePriceFor(woolType)

	qualityModifier := 0.0
	if report != nil {
		if report.CleanWoolYield != nil {
			if *report.CleanWoolYield > highYieldPercent {
				qualityModifier += basePrice * yieldBonusRate
			} else if *report.CleanWoolYield < lowYieldPercent {
				qualityModifier -= basePrice * yieldBonusRate
			}
		}
		if report.FiberDiameter != nil && *report.FiberDiameter < fineFiberMicrons {
			qualityModifier += basePrice * fineFiberRate
		}
	}

	grossRevenue := (basePrice + qualityModifier) * weight
	processingFee := weight * processingFeePerKg
	platformFee := grossRevenue * platformFeeRate
	netFarmerEarnings := grossRevenue - inspectionFee - processingFee - platformFee

	return &domain.Financials{
		BasePricePerKg: round2(basePrice),
		QualityBonus:   round2(qualityModifier),
		GrossRevenue:   round2(grossRevenue),
		ServiceFees: domain.ServiceFees{
			Inspection: inspectionFee,
			Processing: round2(processingFee),
			Platform:   round2(platformFee),
		},
		NetFarmerEarnings: round2(netFarmerEarnings),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
