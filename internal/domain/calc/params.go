package calc

// Default limits.
const (
	DefaultMaxOperandLength = 8
	DefaultMaxResultLength  = 15
)

// Params defines the configurable limits of the calculator
type Params struct {
	// MaxOperandLength caps how many characters the user may type into one
	// operand.
	MaxOperandLength int

	// MaxResultLength caps the length of a computed result. Longer result text
	// is cut, not rounded.
	MaxResultLength int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MaxOperandLength int
	MaxResultLength  int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MaxOperandLength: DefaultMaxOperandLength,
		MaxResultLength:  DefaultMaxResultLength,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Non-positive values keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxOperandLength > 0 {
		params.MaxOperandLength = config.MaxOperandLength
	}
	if config.MaxResultLength > 0 {
		params.MaxResultLength = config.MaxResultLength
	}

	return params
}
