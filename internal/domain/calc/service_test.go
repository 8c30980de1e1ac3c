package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	require.NotNil(t, service)
	assert.Equal(t, NewDefaultParams(), service.Params())

	next := service.Apply(st("2", OperatorAdd, "3"), Compute{})
	assert.Equal(t, st("5.0", OperatorNone, ""), next)
}

func TestNewServiceWithParams(t *testing.T) {
	t.Parallel()

	service := NewServiceWithParams(NewParams(ParamsConfig{MaxOperandLength: 2}))

	s := NewState()
	for _, d := range []int{1, 2, 3} {
		s = service.Apply(s, EnterDigit{Digit: d})
	}
	assert.Equal(t, "12", s.Number1)

	assert.Equal(t, NewDefaultParams(), NewServiceWithParams(nil).Params())
}

func TestServiceParamsReturnsCopy(t *testing.T) {
	t.Parallel()

	service := NewDefaultService()
	p := service.Params()
	p.MaxOperandLength = 1

	assert.Equal(t, DefaultMaxOperandLength, service.Params().MaxOperandLength)
}
