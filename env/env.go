package env

// Space describes an observation or action space in the gym style. Discrete
// spaces set N to the number of choices; box spaces set Shape.
type Space struct {
	N     int
	Shape []int
}

// Environment is the gym-like contract the training loop drives. Reset
// starts a new episode and returns the initial observation; Step applies a
// discrete action and reports the transition.
type Environment interface {
	Reset() []float32
	Step(action int) (obs []float32, reward float32, done bool, info map[string]interface{})
	ObservationSpace() Space
	ActionSpace() Space
}

// ActionDim resolves the action dimensionality of a space: N for discrete
// spaces, the leading shape entry otherwise.
func ActionDim(s Space) int {
	if s.N > 0 {
		return s.N
	}
	return s.Shape[0]
}
