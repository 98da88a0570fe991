package ml

import (
	"testing"

	"gatn/env"
	torch "github.com/wangkuiyi/gotorch"
)

// stubEnv terminates after a fixed number of steps with constant reward 1.
type stubEnv struct {
	maxSteps int
	steps    int
	calls    int
}

func (s *stubEnv) Reset() []float32 {
	s.steps = 0
	return []float32{0.1, -0.1}
}

func (s *stubEnv) Step(action int) ([]float32, float32, bool, map[string]interface{}) {
	s.calls++
	s.steps++
	return []float32{0.1, -0.1}, 1, s.steps >= s.maxSteps, nil
}

func (s *stubEnv) ObservationSpace() env.Space { return env.Space{Shape: []int{2}} }

func (s *stubEnv) ActionSpace() env.Space { return env.Space{N: 3} }

func fixedSources() []SourceTask {
	a := func(state []float32) []float32 { return []float32{1, 0, 0} }
	b := func(state []float32) []float32 { return []float32{0, 0.5, 0.5} }
	return []SourceTask{a, b}
}

func testConfig() Config {
	return Config{
		StateDim:    2,
		LatentDim:   4,
		HiddenDim:   8,
		ActionDim:   3,
		NumSources:  2,
		SelectCount: 2,
		LR:          0.01,
		Gamma:       0.9,
		Epsilon:     0.05,
		Seed:        7,
	}
}

func TestTrainEpisodeRunsToTermination(t *testing.T) {
	e := &stubEnv{maxSteps: 5}
	g, err := New(testConfig(), e, fixedSources(), torch.NewDevice("cpu"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	total := g.TrainEpisode()
	if e.calls != 5 {
		t.Errorf("expected 5 env steps, got %d", e.calls)
	}
	if total != 5 {
		t.Errorf("expected total reward 5, got %v", total)
	}
}

func TestJointStepUpdatesAllComponents(t *testing.T) {
	e := &stubEnv{maxSteps: 5}
	g, err := New(testConfig(), e, fixedSources(), torch.NewDevice("cpu"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	before := map[string][][]float32{
		"vae":       snapshot(g.vae.Parameters()),
		"base":      snapshot(g.base.Parameters()),
		"scheduler": snapshot(g.sched.Parameters()),
		"adapter":   snapshot(g.adapter.Parameters()),
	}
	g.TrainEpisode()
	after := map[string][][]float32{
		"vae":       snapshot(g.vae.Parameters()),
		"base":      snapshot(g.base.Parameters()),
		"scheduler": snapshot(g.sched.Parameters()),
		"adapter":   snapshot(g.adapter.Parameters()),
	}

	for name, b := range before {
		if !changed(b, after[name]) {
			t.Errorf("%s parameters did not change after a joint step", name)
		}
	}
}

func TestNewRejectsMismatches(t *testing.T) {
	cpu := torch.NewDevice("cpu")
	e := &stubEnv{maxSteps: 5}

	if _, err := New(testConfig(), e, fixedSources()[:1], cpu); err == nil {
		t.Error("expected error for source count mismatch")
	}

	cfg := testConfig()
	cfg.StateDim = 3
	if _, err := New(cfg, e, fixedSources(), cpu); err == nil {
		t.Error("expected error for observation dim mismatch")
	}

	cfg = testConfig()
	cfg.ActionDim = 4
	if _, err := New(cfg, e, fixedSources(), cpu); err == nil {
		t.Error("expected error for action dim mismatch")
	}
}

func TestRobustnessLossZeroEpsilon(t *testing.T) {
	cfg := testConfig()
	cfg.Epsilon = 0
	e := &stubEnv{maxSteps: 5}
	g, err := New(cfg, e, fixedSources(), torch.NewDevice("cpu"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	state := e.Reset()
	st := g.tensor(state)
	mu, _ := g.vae.Encode(st)
	baseOut := g.base.Forward(st)
	// compare against a no-source forward: with epsilon=0 the perturbed pass
	// sees the identical state, so the deterministic paths must agree
	combined, _ := g.adapter.Forward(mu, torch.Tensor{}, nil, nil, baseOut)

	loss := g.robustnessLoss(state, combined)
	if v := loss.Item().(float32); v > 1e-6 {
		t.Errorf("expected near-zero robustness loss with epsilon=0, got %v", v)
	}
}

func snapshot(params []torch.Tensor) [][]float32 {
	out := make([][]float32, len(params))
	for i, p := range params {
		out[i] = toFloats(p.Detach().View(-1))
	}
	return out
}

func changed(before, after [][]float32) bool {
	for i := range before {
		for j := range before[i] {
			if before[i][j] != after[i][j] {
				return true
			}
		}
	}
	return false
}
