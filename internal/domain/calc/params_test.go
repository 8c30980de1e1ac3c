package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()

	p := NewDefaultParams()
	assert.Equal(t, 8, p.MaxOperandLength)
	assert.Equal(t, 15, p.MaxResultLength)
}

func TestNewParams(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		config   ParamsConfig
		expected Params
	}{
		{
			name:     "zero config keeps defaults",
			config:   ParamsConfig{},
			expected: Params{MaxOperandLength: 8, MaxResultLength: 15},
		},
		{
			name:     "overrides both",
			config:   ParamsConfig{MaxOperandLength: 12, MaxResultLength: 20},
			expected: Params{MaxOperandLength: 12, MaxResultLength: 20},
		},
		{
			name:     "negative values are ignored",
			config:   ParamsConfig{MaxOperandLength: -1, MaxResultLength: 10},
			expected: Params{MaxOperandLength: 8, MaxResultLength: 10},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, *NewParams(tc.config))
		})
	}
}
