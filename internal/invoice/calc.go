package invoice

import "strconv"

// Totals carries the derived monetary values of one invoice.
type Totals struct {
	TotalWithoutGST float64
	CGST            float64
	SGST            float64
	TotalWithGST    float64
	PaidAmount      float64
	RemainingAmount float64
}

// Calculate derives totals from the commercial inputs. Discount and GST are
// percentages. The arithmetic is unchecked; callers coerce malformed numeric
// input to zero first (see ParseAmount) and validate the GST slab upstream.
func Calculate(amount, discountPct, gstRatePct float64, status Status) Totals {
	discountAmount := amount * discountPct / 100
	totalWithoutGST := amount - discountAmount
	gst := totalWithoutGST * gstRatePct / 100

	t := Totals{
		TotalWithoutGST: totalWithoutGST,
		CGST:            gst / 2,
		SGST:            gst / 2,
		TotalWithGST:    totalWithoutGST + gst,
	}
	if status == StatusPaid {
		t.PaidAmount = t.TotalWithGST
	}
	t.RemainingAmount = t.TotalWithGST - t.PaidAmount
	return t
}

// CalculateLegacy matches Calculate except that the remaining amount is never
// reduced by the paid amount, so a fully paid invoice still reports its grand
// total as outstanding. The quick-entry create path has always behaved this
// way and downstream reports depend on it; kept verbatim until the billing
// owner settles on one rule.
func CalculateLegacy(amount, discountPct, gstRatePct float64, status Status) Totals {
	t := Calculate(amount, discountPct, gstRatePct, status)
	t.RemainingAmount = t.TotalWithGST
	return t
}

// ParseAmount converts free-form numeric field input to a float64, coercing
// empty or malformed values to zero. Every numeric form field goes through
// this before reaching Calculate.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
