package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wooltrace/internal/domain"
	"wooltrace/internal/pricing"
)

func fptr(v float64) *float64 { return &v }

func TestComputeFinancials_PremiumMerino(t *testing.T) {
	// High yield (+10%) and fine fiber (+20%) both apply.
	report := &domain.QualityReport{
		CleanWoolYield: fptr(75),
		FiberDiameter:  fptr(18),
	}

	fin, err := pricing.ComputeFinancials(500, domain.WoolMerino, report)
	require.NoError(t, err)

	assert.Equal(t, 20.0, fin.BasePricePerKg)
	assert.Equal(t, 6.0, fin.QualityBonus)
	assert.Equal(t, 13000.0, fin.GrossRevenue)
	assert.Equal(t, 50.0, fin.ServiceFees.Inspection)
	assert.Equal(t, 1000.0, fin.ServiceFees.Processing)
	assert.Equal(t, 650.0, fin.ServiceFees.Platform)
	assert.Equal(t, 11300.0, fin.NetFarmerEarnings)
}

func TestComputeFinancials_LowYieldCorriedale(t *testing.T) {
	// Yield below 50 penalizes; diameter 22 earns no premium.
	report := &domain.QualityReport{
		CleanWoolYield: fptr(40),
		FiberDiameter:  fptr(22),
	}

	fin, err := pricing.ComputeFinancials(350, domain.WoolCorriedale, report)
	require.NoError(t, err)

	assert.Equal(t, 15.0, fin.BasePricePerKg)
	assert.Equal(t, -1.5, fin.QualityBonus)
	assert.Equal(t, 4725.0, fin.GrossRevenue)
	assert.Equal(t, 50.0, fin.ServiceFees.Inspection)
	assert.Equal(t, 700.0, fin.ServiceFees.Processing)
	assert.Equal(t, 236.25, fin.ServiceFees.Platform)
	assert.Equal(t, 3738.75, fin.NetFarmerEarnings)
}

func TestComputeFinancials_UnknownWoolTypeUsesDefault(t *testing.T) {
	fin, err := pricing.ComputeFinancials(100, domain.WoolType("Alpaca"), nil)
	require.NoError(t, err)

	assert.Equal(t, float64(pricing.DefaultBasePricePerKg), fin.BasePricePerKg)
	assert.Equal(t, 0.0, fin.QualityBonus)
	assert.Equal(t, 1000.0, fin.GrossRevenue)
}

func TestComputeFinancials_NoReportNoAdjustment(t *testing.T) {
	fin, err := pricing.ComputeFinancials(200, domain.WoolLincoln, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, fin.QualityBonus)
	assert.Equal(t, 2000.0, fin.GrossRevenue)
	// 2000 - 50 - 400 - 100
	assert.Equal(t, 1450.0, fin.NetFarmerEarnings)
}

func TestComputeFinancials_MidYieldNoAdjustment(t *testing.T) {
	report := &domain.QualityReport{
		CleanWoolYield: fptr(60),
		FiberDiameter:  fptr(21),
	}

	fin, err := pricing.ComputeFinancials(100, domain.WoolMerino, report)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fin.QualityBonus)
	assert.Equal(t, 2000.0, fin.GrossRevenue)
}

func TestComputeFinancials_NonPositiveWeightRejected(t *testing.T) {
	for _, weight := range []float64{0, -5} {
		fin, err := pricing.ComputeFinancials(weight, domain.WoolMerino, nil)
		assert.Nil(t, fin)
		assert.ErrorIs(t, err, domain.ErrInvalidWeight)
	}
}

func TestComputeFinancials_Idempotent(t *testing.T) {
	report := &domain.QualityReport{
		CleanWoolYield: fptr(72.5),
		FiberDiameter:  fptr(18.4),
	}

	first, err := pricing.ComputeFinancials(333.33, domain.WoolFineMerino, report)
	require.NoError(t, err)
	second, err := pricing.ComputeFinancials(333.33, domain.WoolFineMerino, report)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeFinancials_GrossUsesUnroundedModifier(t *testing.T) {
	// Crossbred base 12: fine fiber premium is 2.4, yield penalty -1.2, net 1.2.
	// Gross must come from the exact modifier, not its rounded display value.
	report := &domain.QualityReport{
		CleanWoolYield: fptr(45),
		FiberDiameter:  fptr(17),
	}

	fin, err := pricing.ComputeFinancials(77.7, domain.WoolCrossbred, report)
	require.NoError(t, err)

	assert.Equal(t, 1.2, fin.QualityBonus)
	assert.Equal(t, 1025.64, fin.GrossRevenue) // 13.2 * 77.7
}
