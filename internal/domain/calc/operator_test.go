package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorSymbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+", OperatorAdd.Symbol())
	assert.Equal(t, "-", OperatorSubtract.Symbol())
	assert.Equal(t, "*", OperatorMultiply.Symbol())
	assert.Equal(t, "/", OperatorDivide.Symbol())
	assert.Equal(t, "", OperatorNone.Symbol())
	assert.Equal(t, "", Operator(99).Symbol())
}

func TestOperatorIsValid(t *testing.T) {
	t.Parallel()

	for _, op := range Operators {
		assert.True(t, op.IsValid(), op.String())
	}
	assert.False(t, OperatorNone.IsValid())
	assert.False(t, Operator(-1).IsValid())
}

func TestParseOperator(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in       string
		expected Operator
		wantErr  bool
	}{
		{in: "+", expected: OperatorAdd},
		{in: "add", expected: OperatorAdd},
		{in: " - ", expected: OperatorSubtract},
		{in: "Subtract", expected: OperatorSubtract},
		{in: "*", expected: OperatorMultiply},
		{in: "x", expected: OperatorMultiply},
		{in: "/", expected: OperatorDivide},
		{in: "DIVIDE", expected: OperatorDivide},
		{in: "", wantErr: true},
		{in: "%", wantErr: true},
		{in: "pow", wantErr: true},
	}

	for _, tc := range testCases {
		op, err := ParseOperator(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidOperator, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.expected, op, "input %q", tc.in)
	}
}

func TestOperatorMarshalText(t *testing.T) {
	t.Parallel()

	text, err := OperatorDivide.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "/", string(text))

	text, err = OperatorNone.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "", string(text))

	_, err = Operator(12).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidOperator)
}
