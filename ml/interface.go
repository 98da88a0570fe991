package ml

// SourceTask is a pre-trained external policy: it maps a raw state vector to
// an action-output vector of length Config.ActionDim. Source tasks are fixed
// black boxes; they are consulted, never trained.
type SourceTask func(state []float32) []float32

// Agent is what the entry point drives: one full episode of interaction and
// joint optimization per call, returning the accumulated reward.
type Agent interface {
	TrainEpisode() float32
}
