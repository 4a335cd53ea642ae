package reporting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/attestor-eth/attestor/logging"
	"github.com/attestor-eth/attestor/registry"
	"github.com/attestor-eth/attestor/verification"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testOutcome builds an outcome with the given contract name and status.
func testOutcome(name string, status verification.Status) verification.Outcome {
	return verification.Outcome{
		Descriptor: registry.Descriptor{
			ContractName: name,
			Address:      common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		},
		Status: status,
	}
}

// TestReportOrdersFailuresFirst verifies errored and mismatched outcomes are presented before matches, and that
// the summary counts every outcome. Not parallel: it swaps the global logger to capture output.
func TestReportOrdersFailuresFirst(t *testing.T) {
	var buffer bytes.Buffer
	previousLogger := logging.GlobalLogger
	logging.GlobalLogger = logging.NewLogger(zerolog.Disabled)
	logging.GlobalLogger.AddWriter(&buffer, logging.UNSTRUCTURED)
	logging.GlobalLogger.SetLevel(zerolog.InfoLevel)
	defer func() { logging.GlobalLogger = previousLogger }()

	outcomes := []verification.Outcome{
		testOutcome("First", verification.StatusMatched),
		testOutcome("Second", verification.StatusMismatched),
		testOutcome("Third", verification.StatusErrored),
		testOutcome("Fourth", verification.StatusMatched),
	}

	summary := NewReporter(true, 0).Report(outcomes)
	assert.Equal(t, Summary{Matched: 2, Mismatched: 1, Errored: 1}, summary)
	assert.True(t, summary.Failed())

	output := buffer.String()
	require.Contains(t, output, "Third")
	require.Contains(t, output, "Second")
	assert.Less(t, strings.Index(output, "Third"), strings.Index(output, "Second"))
	assert.Less(t, strings.Index(output, "Second"), strings.Index(output, "First"))

	// Registry order is preserved within a class.
	assert.Less(t, strings.Index(output, "First"), strings.Index(output, "Fourth"))
}

// TestSummaryFailed verifies an all-matched batch is not a failure.
func TestSummaryFailed(t *testing.T) {
	t.Parallel()

	assert.False(t, Summary{Matched: 3}.Failed())
	assert.True(t, Summary{Matched: 3, Errored: 1}.Failed())
	assert.True(t, Summary{Mismatched: 1}.Failed())
}

// TestFormatDiff verifies differing operands produce a unified diff and identical operands produce none.
func TestFormatDiff(t *testing.T) {
	t.Parallel()

	diff := formatDiff("60806040", "608060ff", 0)
	assert.Contains(t, diff, "-60806040")
	assert.Contains(t, diff, "+608060ff")

	assert.Equal(t, "", formatDiff("6080", "6080", 0))
}

// TestFormatDiffBounded verifies operands are truncated to the configured bound before diffing.
func TestFormatDiffBounded(t *testing.T) {
	t.Parallel()

	// The operands differ only beyond the bound, so the bounded diff sees identical prefixes.
	a := strings.Repeat("aa", 64) + "11"
	b := strings.Repeat("aa", 64) + "22"

	assert.Equal(t, "", formatDiff(a, b, 128))
	assert.NotEqual(t, "", formatDiff(a, b, 0))
}
