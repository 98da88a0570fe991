package ml

import (
	"math"
	"testing"

	torch "github.com/wangkuiyi/gotorch"
)

func TestExpMatchesMath(t *testing.T) {
	in := []float32{-3, -0.5, 0, 0.5, 3}
	got := toFloats(exp(torch.NewTensor(in)))
	for i, x := range in {
		want := float32(math.Exp(float64(x)))
		if diff := got[i] - want; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("exp(%v): got %v, want %v", x, got[i], want)
		}
	}
	// exp(0) must be exactly 1 so the KL term vanishes at the standard normal
	if got[2] != 1 {
		t.Errorf("exp(0): got %v, want exactly 1", got[2])
	}
}

func TestSoftmaxIsSimplex(t *testing.T) {
	probs := toFloats(softmax(torch.NewTensor([]float32{2, -1, 0.5})))
	sum := float32(0)
	for i, p := range probs {
		if p < 0 {
			t.Errorf("negative probability %v at %d", p, i)
		}
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("softmax sums to %v, want 1", sum)
	}
	if !(probs[0] > probs[2] && probs[2] > probs[1]) {
		t.Errorf("softmax did not preserve logit order: %v", probs)
	}
}
