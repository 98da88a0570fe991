package ml

import "github.com/pkg/errors"

// Config fixes the dimensions shared by all four networks plus the training
// hyperparameters. The latent, source-task, and action sizes must agree
// across components, so they are checked once up front instead of surfacing
// as shape errors in the middle of an episode.
type Config struct {
	StateDim    int // environment observation dimensionality
	LatentDim   int // VAE latent size
	HiddenDim   int // hidden layer width of every sub-network
	ActionDim   int // action-value output size
	NumSources  int // number of source-task policies available
	SelectCount int // source tasks consulted per step (M)

	LR      float64 // learning rate shared by the four Adam optimizers
	Gamma   float64 // TD discount factor
	Epsilon float64 // robustness perturbation std
	Seed    uint64
}

func (c Config) Validate() error {
	if c.StateDim <= 0 {
		return errors.Errorf("config: state dim must be positive, got %d", c.StateDim)
	}
	if c.LatentDim <= 0 {
		return errors.Errorf("config: latent dim must be positive, got %d", c.LatentDim)
	}
	if c.HiddenDim <= 0 {
		return errors.Errorf("config: hidden dim must be positive, got %d", c.HiddenDim)
	}
	if c.ActionDim <= 0 {
		return errors.Errorf("config: action dim must be positive, got %d", c.ActionDim)
	}
	if c.NumSources <= 0 {
		return errors.Errorf("config: need at least one source task, got %d", c.NumSources)
	}
	if c.SelectCount <= 0 {
		return errors.Errorf("config: select count must be positive, got %d", c.SelectCount)
	}
	if c.LR <= 0 {
		return errors.Errorf("config: learning rate must be positive, got %v", c.LR)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return errors.Errorf("config: gamma must be in [0, 1], got %v", c.Gamma)
	}
	if c.Epsilon < 0 {
		return errors.Errorf("config: epsilon must be non-negative, got %v", c.Epsilon)
	}
	return nil
}
