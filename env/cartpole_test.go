package env

import "testing"

func TestCartPoleSpaces(t *testing.T) {
	c := NewCartPole(1)
	if got := c.ObservationSpace().Shape[0]; got != 4 {
		t.Errorf("observation dim: got %d, want 4", got)
	}
	if got := c.ActionSpace().N; got != 2 {
		t.Errorf("action count: got %d, want 2", got)
	}
	if got := ActionDim(c.ActionSpace()); got != 2 {
		t.Errorf("ActionDim: got %d, want 2", got)
	}
}

func TestCartPoleResetBounds(t *testing.T) {
	c := NewCartPole(1)
	obs := c.Reset()
	if len(obs) != 4 {
		t.Fatalf("reset observation length: got %d, want 4", len(obs))
	}
	for i, v := range obs {
		if v < -0.05 || v > 0.05 {
			t.Errorf("reset state[%d] = %v outside [-0.05, 0.05]", i, v)
		}
	}
}

func TestCartPoleConstantPushTerminates(t *testing.T) {
	c := NewCartPole(1)
	c.Reset()
	steps := 0
	for {
		obs, reward, done, _ := c.Step(1)
		steps++
		if len(obs) != 4 {
			t.Fatalf("step observation length: got %d, want 4", len(obs))
		}
		if reward != 1 {
			t.Fatalf("reward: got %v, want 1", reward)
		}
		if done {
			break
		}
		if steps > 500 {
			t.Fatal("episode did not terminate within the step limit")
		}
	}
	// always pushing one way has to topple the pole well before the limit
	if steps >= 500 {
		t.Errorf("constant push survived %d steps", steps)
	}
}

func TestCartPoleResetClearsStepCount(t *testing.T) {
	c := NewCartPole(1)
	c.Reset()
	for i := 0; i < 3; i++ {
		c.Step(1)
	}
	c.Reset()
	if c.steps != 0 {
		t.Errorf("reset left step counter at %d", c.steps)
	}
}
