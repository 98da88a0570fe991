package main

import "gatn/ml"

// Fixed cart-pole controllers standing in for pre-trained source-task
// policies. Each scores both actions from one feature of the state; the
// agent learns how much weight each one deserves.
func cartPoleSources(actionDim int) []ml.SourceTask {
	angle := func(state []float32) []float32 {
		// push in the direction the pole is leaning
		out := make([]float32, actionDim)
		if state[2] > 0 {
			out[1] = 1
		} else {
			out[0] = 1
		}
		return out
	}
	spin := func(state []float32) []float32 {
		// counter the angular velocity
		out := make([]float32, actionDim)
		if state[3] > 0 {
			out[1] = 1
		} else {
			out[0] = 1
		}
		return out
	}
	drift := func(state []float32) []float32 {
		// brake the cart before it runs off the track
		out := make([]float32, actionDim)
		if state[1] > 0 {
			out[0] = 1
		} else {
			out[1] = 1
		}
		return out
	}
	return []ml.SourceTask{angle, spin, drift}
}
