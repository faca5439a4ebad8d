package invoice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateDerivesTotals(t *testing.T) {
	totals := Calculate(1000, 10, 18, StatusUnpaid)

	require.InDelta(t, 900, totals.TotalWithoutGST, 1e-9)
	require.InDelta(t, 81, totals.CGST, 1e-9)
	require.InDelta(t, 81, totals.SGST, 1e-9)
	require.InDelta(t, 1062, totals.TotalWithGST, 1e-9)
	require.Zero(t, totals.PaidAmount)
	require.InDelta(t, 1062, totals.RemainingAmount, 1e-9)
}

func TestCalculateSplitsGSTEvenly(t *testing.T) {
	totals := Calculate(12345.67, 7.5, 28, StatusUnpaid)
	require.Equal(t, totals.CGST, totals.SGST)
	require.InDelta(t, totals.CGST+totals.SGST, totals.TotalWithGST-totals.TotalWithoutGST, 1e-9)
}

func TestCalculatePaidInvoiceOwesNothing(t *testing.T) {
	totals := Calculate(1000, 10, 18, StatusPaid)

	require.InDelta(t, 1062, totals.PaidAmount, 1e-9)
	require.Zero(t, totals.RemainingAmount)
}

func TestCalculateZeroAmount(t *testing.T) {
	totals := Calculate(0, 0, 18, StatusUnpaid)

	require.Zero(t, totals.TotalWithoutGST)
	require.Zero(t, totals.TotalWithGST)
	require.Zero(t, totals.RemainingAmount)
}

func TestCalculateZeroRateLeavesAmountUntouched(t *testing.T) {
	totals := Calculate(500, 0, 0, StatusUnpaid)

	require.InDelta(t, 500, totals.TotalWithoutGST, 1e-9)
	require.InDelta(t, 500, totals.TotalWithGST, 1e-9)
}

func TestCalculateFullDiscount(t *testing.T) {
	totals := Calculate(1000, 100, 18, StatusUnpaid)

	require.Zero(t, totals.TotalWithoutGST)
	require.Zero(t, totals.TotalWithGST)
}

func TestCalculateLegacyPaidInvoiceStillReportsGrandTotal(t *testing.T) {
	totals := CalculateLegacy(1000, 10, 18, StatusPaid)

	require.InDelta(t, 1062, totals.PaidAmount, 1e-9)
	require.InDelta(t, 1062, totals.RemainingAmount, 1e-9)
}

func TestCalculateLegacyMatchesCalculateWhenUnpaid(t *testing.T) {
	a := Calculate(2500, 5, 12, StatusUnpaid)
	b := CalculateLegacy(2500, 5, 12, StatusUnpaid)
	require.Equal(t, a, b)
}

func TestParseAmountCoercesMalformedInputToZero(t *testing.T) {
	require.Zero(t, ParseAmount(""))
	require.Zero(t, ParseAmount("abc"))
	require.Zero(t, ParseAmount("12abc"))
	require.InDelta(t, 12.5, ParseAmount("12.5"), 1e-9)
	require.InDelta(t, -3, ParseAmount("-3"), 1e-9)
}
