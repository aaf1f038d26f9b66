package records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfjeldsa/ocr-giro-codec/internal/types"
)

func TestSpecificationsFromTextSplitsLinesIntoTwoFragments(t *testing.T) {
	specs, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1, "Foo bar",
	)

	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, 1, specs[0].LineNumber)
	assert.Equal(t, 1, specs[0].ColumnNumber)
	assert.Equal(t, "Foo bar"+strings.Repeat(" ", 33), specs[0].Text)

	assert.Equal(t, 1, specs[1].LineNumber)
	assert.Equal(t, 2, specs[1].ColumnNumber)
	assert.Equal(t, strings.Repeat(" ", 40), specs[1].Text)
}

func TestSpecificationsFromTextOfEmptyTextIsEmpty(t *testing.T) {
	specs, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1, "",
	)

	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestSpecificationsFromTextIgnoresTrailingNewline(t *testing.T) {
	specs, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1, "Foo bar\n",
	)

	require.NoError(t, err)
	assert.Len(t, specs, 2)
}

func TestSpecificationsFromTextAtLineLimit(t *testing.T) {
	text := strings.TrimSuffix(strings.Repeat("line\n", 42), "\n")

	specs, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1, text,
	)

	require.NoError(t, err)
	assert.Len(t, specs, 84)
}

func TestSpecificationsFromTextRejectsTooManyLines(t *testing.T) {
	text := strings.TrimSuffix(strings.Repeat("line\n", 43), "\n")

	_, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1, text,
	)

	var boundsErr *types.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Contains(t, err.Error(), "max 42 specification lines allowed, got 43")
}

func TestSpecificationsFromTextRejectsOverlongLine(t *testing.T) {
	_, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1,
		strings.Repeat("x", 81),
	)

	var boundsErr *types.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Contains(t, err.Error(), "max 80 chars")
}

func TestSpecificationsToTextReassemblesInOrder(t *testing.T) {
	// Fragments deliberately out of wire order.
	specs := []*TransactionSpecification{
		{Number: 1, LineNumber: 2, ColumnNumber: 1, Text: "second line" + strings.Repeat(" ", 29)},
		{Number: 1, LineNumber: 1, ColumnNumber: 2, Text: strings.Repeat(" ", 40)},
		{Number: 1, LineNumber: 1, ColumnNumber: 1, Text: "first line" + strings.Repeat(" ", 30)},
		{Number: 1, LineNumber: 2, ColumnNumber: 2, Text: strings.Repeat(" ", 40)},
	}

	text, err := SpecificationsToText(specs)

	require.NoError(t, err)
	want := "first line" + strings.Repeat(" ", 70) + "\n" +
		"second line" + strings.Repeat(" ", 69) + "\n"
	assert.Equal(t, want, text)
}

func TestSpecificationsToTextRejectsTooManyRecords(t *testing.T) {
	specs := make([]*TransactionSpecification, 85)
	for i := range specs {
		specs[i] = &TransactionSpecification{
			Number:       1,
			LineNumber:   i/2 + 1,
			ColumnNumber: i%2 + 1,
			Text:         strings.Repeat(" ", 40),
		}
	}

	_, err := SpecificationsToText(specs)

	var boundsErr *types.BoundsError
	require.ErrorAs(t, err, &boundsErr)
	assert.Contains(t, err.Error(), "max 84 specification records allowed, got 85")
}

func TestSpecificationTextRoundTrips(t *testing.T) {
	specs, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1,
		"Gjelder Faktura: 168837\nDato: 19/03/04",
	)
	require.NoError(t, err)
	require.Len(t, specs, 4)

	text, err := SpecificationsToText(specs)
	require.NoError(t, err)

	reSplit, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1, text,
	)
	require.NoError(t, err)
	require.Len(t, reSplit, 4)

	for i := range specs {
		assert.Equal(t, specs[i].Text, reSplit[i].Text)
		assert.Equal(t, specs[i].LineNumber, reSplit[i].LineNumber)
		assert.Equal(t, specs[i].ColumnNumber, reSplit[i].ColumnNumber)
	}
}

func TestSpecificationRecordsRoundTripThroughWire(t *testing.T) {
	specs, err := SpecificationsFromText(
		types.TransactionTypeAvtaleGiroWithBankNotification, 1, "Foo bar",
	)
	require.NoError(t, err)

	for _, spec := range specs {
		line := spec.ToOCR()
		require.Len(t, line, LineLength)

		parsed, err := ParseLine(line)
		require.NoError(t, err)
		assert.Equal(t, line, parsed.ToOCR())
	}
}
