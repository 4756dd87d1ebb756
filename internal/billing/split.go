package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

const defaultPercent = 50.0

// RuleSource is the read capability the split calculator depends on. The
// second return reports whether a rule exists for the pair.
type RuleSource interface {
	FindRule(ctx context.Context, treatmentID, doctorID int64) (SplitRule, bool, error)
}

// ComputeSplit divides a payment's net amount between clinic and doctor.
//
// net = total - discounts + taxes. Each share is net * percent / 100 rounded
// half away from zero to 2 decimals. With no rule for the pair, or with no
// treatment/doctor reference at all (walk-in), both percentages default to 50.
// A stored percentage of zero is treated as unset and also falls back to 50;
// that matches the historical behaviour and is relied on by callers.
//
// Shares are not normalised: when the configured percentages do not sum to
// 100 the two shares will not sum to net.
func ComputeSplit(ctx context.Context, rules RuleSource, treatmentID, doctorID *int64, total, discounts, taxes float64) (clinicShare, doctorShare float64, err error) {
	clinicPct := defaultPercent
	doctorPct := defaultPercent

	if rules != nil && treatmentID != nil && doctorID != nil {
		rule, ok, err := rules.FindRule(ctx, *treatmentID, *doctorID)
		if err != nil {
			return 0, 0, err
		}
		if ok {
			if rule.ClinicPercent != 0 {
				clinicPct = rule.ClinicPercent
			}
			if rule.DoctorPercent != 0 {
				doctorPct = rule.DoctorPercent
			}
		}
	}

	net := decimal.NewFromFloat(total).
		Sub(decimal.NewFromFloat(discounts)).
		Add(decimal.NewFromFloat(taxes))

	clinicShare = roundShare(net, clinicPct)
	doctorShare = roundShare(net, doctorPct)
	return clinicShare, doctorShare, nil
}

func roundShare(net decimal.Decimal, percent float64) float64 {
	share := net.Mul(decimal.NewFromFloat(percent)).Div(decimal.NewFromInt(100)).Round(2)
	f, _ := share.Float64()
	return f
}
