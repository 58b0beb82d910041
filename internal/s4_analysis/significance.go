package s4_analysis

import (
	"errors"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/stats"
)

const (
	TTestName = "T-TEST: Extreme Fear vs Extreme Greed"
	ANOVAName = "ANOVA: All Sentiment Groups"
)

// extremeTTest pooled-variance t-test of Extreme Fear vs Extreme Greed PnL
func extremeTTest(fear, greed []contracts.EnrichedTrade) SignificanceTest {
	test := SignificanceTest{Name: TTestName, Groups: 2}

	if len(fear) <= 1 || len(greed) <= 1 {
		test.Skipped = true
		test.Reason = "insufficient data for t-test (each group needs more than one trade)"
		return test
	}

	res, err := stats.TTestInd(pnlOf(fear), pnlOf(greed))
	if err != nil {
		test.Skipped = true
		test.Reason = skipReason(err)
		return test
	}

	test.Statistic = res.Statistic
	test.PValue = res.PValue
	test.DF1 = res.DF1
	test.Significant = res.PValue < SignificanceLevel
	return test
}

// sentimentANOVA one-way ANOVA over every label with at least one trade
func sentimentANOVA(groups map[contracts.Sentiment][]contracts.EnrichedTrade) SignificanceTest {
	test := SignificanceTest{Name: ANOVAName}

	var samples [][]float64
	total := 0
	for _, s := range contracts.AllSentiments() {
		if g := groups[s]; len(g) > 0 {
			samples = append(samples, pnlOf(g))
			total += len(g)
		}
	}
	test.Groups = len(samples)

	if len(samples) < 2 || total-len(samples) <= 0 {
		test.Skipped = true
		test.Reason = "insufficient sentiment groups for ANOVA"
		return test
	}

	res, err := stats.OneWayANOVA(samples...)
	if err != nil {
		test.Skipped = true
		test.Reason = skipReason(err)
		return test
	}

	test.Statistic = res.Statistic
	test.PValue = res.PValue
	test.DF1 = res.DF1
	test.DF2 = res.DF2
	test.Significant = res.PValue < SignificanceLevel
	return test
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, stats.ErrZeroVariance):
		return "PnL has no variance within groups, statistic undefined"
	case errors.Is(err, stats.ErrInsufficientData):
		return "insufficient data"
	default:
		return err.Error()
	}
}
