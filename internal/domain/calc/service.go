package calc

// Service applies actions to calculator states under a fixed set of Params.
type Service interface {
	// Apply returns the state following state after action. It has the same
	// contract as Reduce: pure, total, and a no-op for inapplicable actions.
	Apply(state State, action Action) State

	// Params returns the limits the service was built with.
	Params() *Params
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new calculator service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new calculator service with custom parameters.
// A nil params falls back to the defaults.
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// Apply implements Service.
func (s *defaultService) Apply(state State, action Action) State {
	return Reduce(state, action, s.params)
}

// Params implements Service. The returned value is a copy.
func (s *defaultService) Params() *Params {
	p := *s.params
	return &p
}
