package env

import (
	"github.com/goki/mat32"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Classic cart-pole balancing task: 4-dimensional observation
// (position, velocity, angle, angular velocity), two discrete actions
// (push left, push right), reward 1 per step until the pole falls over,
// the cart leaves the track, or the step limit is hit.

const (
	gravity     = 9.8
	cartMass    = 1.0
	poleMass    = 0.1
	poleHalfLen = 0.5
	forceMag    = 10.0
	tau         = 0.02

	xLimit     = 2.4
	thetaLimit = 12 * 2 * 3.14159265358979 / 360
)

type CartPole struct {
	state    [4]float32
	steps    int
	maxSteps int
	start    distuv.Uniform
}

func NewCartPole(seed uint64) *CartPole {
	return &CartPole{
		maxSteps: 500,
		start:    distuv.Uniform{Min: -0.05, Max: 0.05, Src: rand.NewSource(seed)},
	}
}

func (c *CartPole) ObservationSpace() Space { return Space{Shape: []int{4}} }

func (c *CartPole) ActionSpace() Space { return Space{N: 2} }

func (c *CartPole) Reset() []float32 {
	for i := range c.state {
		c.state[i] = float32(c.start.Rand())
	}
	c.steps = 0
	return c.obs()
}

func (c *CartPole) Step(action int) ([]float32, float32, bool, map[string]interface{}) {
	x, xDot, theta, thetaDot := c.state[0], c.state[1], c.state[2], c.state[3]

	force := float32(forceMag)
	if action == 0 {
		force = -force
	}
	cosT := mat32.Cos(theta)
	sinT := mat32.Sin(theta)

	totalMass := float32(cartMass + poleMass)
	poleMassLen := float32(poleMass * poleHalfLen)
	temp := (force + poleMassLen*thetaDot*thetaDot*sinT) / totalMass
	thetaAcc := (gravity*sinT - cosT*temp) /
		(poleHalfLen * (4.0/3.0 - poleMass*cosT*cosT/totalMass))
	xAcc := temp - poleMassLen*thetaAcc*cosT/totalMass

	c.state[0] = x + tau*xDot
	c.state[1] = xDot + tau*xAcc
	c.state[2] = theta + tau*thetaDot
	c.state[3] = thetaDot + tau*thetaAcc
	c.steps++

	done := c.state[0] < -xLimit || c.state[0] > xLimit ||
		c.state[2] < -thetaLimit || c.state[2] > thetaLimit ||
		c.steps >= c.maxSteps
	return c.obs(), 1, done, nil
}

func (c *CartPole) obs() []float32 {
	out := make([]float32, len(c.state))
	copy(out, c.state[:])
	return out
}
