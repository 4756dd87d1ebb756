package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticRules struct {
	rules map[[2]int64]SplitRule
}

func (s *staticRules) FindRule(ctx context.Context, treatmentID, doctorID int64) (SplitRule, bool, error) {
	rule, ok := s.rules[[2]int64{treatmentID, doctorID}]
	return rule, ok, nil
}

func ruleTable(rules ...SplitRule) *staticRules {
	table := &staticRules{rules: make(map[[2]int64]SplitRule)}
	for _, r := range rules {
		table.rules[[2]int64{r.TreatmentID, r.DoctorID}] = r
	}
	return table
}

func int64p(v int64) *int64 { return &v }

func TestComputeSplitDefaultsWithoutRule(t *testing.T) {
	ctx := context.Background()
	rules := ruleTable()

	clinic, doctor, err := ComputeSplit(ctx, rules, int64p(1), int64p(1), 200, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 100.00, clinic)
	require.Equal(t, 100.00, doctor)
}

func TestComputeSplitWalkInDefaults(t *testing.T) {
	ctx := context.Background()
	rules := ruleTable(SplitRule{TreatmentID: 1, DoctorID: 1, ClinicPercent: 80, DoctorPercent: 20})

	// No treatment/doctor references at all: the configured rule is irrelevant.
	clinic, doctor, err := ComputeSplit(ctx, rules, nil, nil, 1000, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 500.00, clinic)
	require.Equal(t, 500.00, doctor)
}

func TestComputeSplitConfiguredWithDiscountAndTax(t *testing.T) {
	ctx := context.Background()
	rules := ruleTable(SplitRule{TreatmentID: 1, DoctorID: 1, ClinicPercent: 60, DoctorPercent: 40})

	// net = 100 - 10 + 5 = 95
	clinic, doctor, err := ComputeSplit(ctx, rules, int64p(1), int64p(1), 100, 10, 5)
	require.NoError(t, err)
	require.Equal(t, 57.00, clinic)
	require.Equal(t, 38.00, doctor)
}

func TestComputeSplitDoesNotNormalise(t *testing.T) {
	ctx := context.Background()
	rules := ruleTable(SplitRule{TreatmentID: 1, DoctorID: 1, ClinicPercent: 70, DoctorPercent: 40})

	clinic, doctor, err := ComputeSplit(ctx, rules, int64p(1), int64p(1), 100, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 70.00, clinic)
	require.Equal(t, 40.00, doctor)
	// Shares exceed net by 10%: the calculator must not correct this.
	require.Equal(t, 110.00, clinic+doctor)
}

func TestComputeSplitZeroPercentTreatedAsUnset(t *testing.T) {
	ctx := context.Background()
	rules := ruleTable(SplitRule{TreatmentID: 1, DoctorID: 1, ClinicPercent: 70, DoctorPercent: 0})

	clinic, doctor, err := ComputeSplit(ctx, rules, int64p(1), int64p(1), 100, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 70.00, clinic)
	// An explicit 0 falls back to 50; the other side keeps its configured value.
	require.Equal(t, 50.00, doctor)
}

func TestComputeSplitRoundsHalfAwayFromZero(t *testing.T) {
	ctx := context.Background()
	rules := ruleTable()

	clinic, doctor, err := ComputeSplit(ctx, rules, int64p(9), int64p(9), 0.05, 0, 0)
	require.NoError(t, err)
	// 0.025 rounds up to 0.03 on both sides.
	require.Equal(t, 0.03, clinic)
	require.Equal(t, 0.03, doctor)
}

func TestComputeSplitNegativeAmountsAccepted(t *testing.T) {
	ctx := context.Background()
	rules := ruleTable()

	clinic, doctor, err := ComputeSplit(ctx, rules, nil, nil, -200, 0, 0)
	require.NoError(t, err)
	require.Equal(t, -100.00, clinic)
	require.Equal(t, -100.00, doctor)
}
