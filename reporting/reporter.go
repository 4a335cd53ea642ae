package reporting

import (
	"fmt"

	"github.com/attestor-eth/attestor/logging"
	"github.com/attestor-eth/attestor/logging/colors"
	"github.com/attestor-eth/attestor/verification"
	"golang.org/x/exp/slices"
)

// Summary aggregates the verdict counts of a reported batch.
type Summary struct {
	Matched    int
	Mismatched int
	Errored    int
}

// Failed returns whether any descriptor in the batch did not match.
func (s Summary) Failed() bool {
	return s.Mismatched > 0 || s.Errored > 0
}

// Reporter is the result sink for verification outcomes. It presents failures and mismatches before successes so
// that the verdicts needing attention surface first, and optionally renders a bounded diagnostic diff for
// creation-code mismatches.
type Reporter struct {
	// diffDisabled describes whether diagnostic diffs are skipped entirely.
	diffDisabled bool

	// maxDiffChars bounds how many hex characters of each operand participate in a diagnostic diff.
	maxDiffChars int

	// logger describes the Reporter's log object that can be used to log outcome events
	logger *logging.Logger
}

// NewReporter creates a Reporter with the provided diff policy.
func NewReporter(diffDisabled bool, maxDiffChars int) *Reporter {
	return &Reporter{
		diffDisabled: diffDisabled,
		maxDiffChars: maxDiffChars,
		logger:       logging.GlobalLogger.NewSubLogger("module", "reporting"),
	}
}

// Report presents every outcome of a batch and returns the aggregated summary. The input slice is not modified;
// outcomes are presented errored first, then mismatched, then matched, keeping registry order within each class.
func (r *Reporter) Report(outcomes []verification.Outcome) Summary {
	ordered := slices.Clone(outcomes)
	slices.SortStableFunc(ordered, func(a verification.Outcome, b verification.Outcome) int {
		return statusRank(a.Status) - statusRank(b.Status)
	})

	var summary Summary
	for _, outcome := range ordered {
		switch outcome.Status {
		case verification.StatusMatched:
			summary.Matched++
			r.logger.Info(colors.GreenBold, "✓ ", colors.Reset, outcome.Descriptor.Name(),
				colors.DarkGray, fmt.Sprintf(" matched (%s)", outcome.Route))
		case verification.StatusMismatched:
			summary.Mismatched++
			r.logger.Error(colors.RedBold, "✗ ", colors.Reset, outcome.Descriptor.Name(),
				colors.Red, " bytecode mismatch")
			if diff := r.mismatchDiff(outcome); diff != "" {
				r.logger.Info(diff)
			}
		case verification.StatusErrored:
			summary.Errored++
			r.logger.Error(colors.RedBold, "! ", colors.Reset, outcome.Descriptor.Name(),
				colors.Red, fmt.Sprintf(" could not be verified: %s", outcome.ErrKind), outcome.Err)
		}
	}

	r.logger.Info("Verified ", len(outcomes), " contract(s): ",
		colors.GreenBold, summary.Matched, " matched", colors.Reset, ", ",
		colors.RedBold, summary.Mismatched, " mismatched", colors.Reset, ", ",
		colors.RedBold, summary.Errored, " errored", colors.Reset)
	return summary
}

// mismatchDiff produces the diagnostic diff for a creation-code mismatch, honoring the reporter's diff policy.
// This is a reporting aid only and plays no part in the pass/fail verdict.
func (r *Reporter) mismatchDiff(outcome verification.Outcome) string {
	if r.diffDisabled || outcome.CreationInput == "" || outcome.CreationCompiled == "" {
		return ""
	}
	return formatDiff(outcome.CreationInput, outcome.CreationCompiled, r.maxDiffChars)
}

// statusRank orders statuses for presentation: failures surface before successes.
func statusRank(status verification.Status) int {
	switch status {
	case verification.StatusErrored:
		return 0
	case verification.StatusMismatched:
		return 1
	default:
		return 2
	}
}
