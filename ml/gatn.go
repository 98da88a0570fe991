package ml

import (
	"fmt"

	"gatn/env"
	"gatn/util"

	"github.com/pkg/errors"
	torch "github.com/wangkuiyi/gotorch"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// GATN owns the four sub-networks and their optimizers and runs the joint
// training loop: one environment transition, one shared backward pass, one
// step of every optimizer.
type GATN struct {
	cfg     Config
	device  torch.Device
	env     env.Environment
	sources []SourceTask

	vae     *VAE
	base    *Base
	sched   *Scheduler
	adapter *PolicyAdapter

	vaeOpt     torch.Optimizer
	baseOpt    torch.Optimizer
	schedOpt   torch.Optimizer
	adapterOpt torch.Optimizer

	src rand.Source
}

// New validates the configuration eagerly and wires the four components to
// their own Adam optimizers. After construction, per-step numerical issues
// propagate raw.
func New(cfg Config, e env.Environment, sources []SourceTask, device torch.Device) (*GATN, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(sources) != cfg.NumSources {
		return nil, errors.Errorf("gatn: config declares %d source tasks, got %d", cfg.NumSources, len(sources))
	}
	obs := e.ObservationSpace()
	if len(obs.Shape) == 0 || obs.Shape[0] != cfg.StateDim {
		return nil, errors.Errorf("gatn: environment observation space %v does not match state dim %d", obs, cfg.StateDim)
	}
	if got := env.ActionDim(e.ActionSpace()); got != cfg.ActionDim {
		return nil, errors.Errorf("gatn: environment action dim %d does not match config action dim %d", got, cfg.ActionDim)
	}

	g := &GATN{
		cfg:     cfg,
		device:  device,
		env:     e,
		sources: sources,
		vae:     MakeVAE(cfg, device),
		base:    MakeBase(cfg, device),
		sched:   MakeScheduler(cfg, device),
		adapter: MakePolicyAdapter(cfg, device),
		src:     rand.NewSource(cfg.Seed),
	}
	g.vaeOpt = torch.Adam(cfg.LR, 0.9, 0.999, 0)
	g.vaeOpt.AddParameters(g.vae.Parameters())
	g.baseOpt = torch.Adam(cfg.LR, 0.9, 0.999, 0)
	g.baseOpt.AddParameters(g.base.Parameters())
	g.schedOpt = torch.Adam(cfg.LR, 0.9, 0.999, 0)
	g.schedOpt.AddParameters(g.sched.Parameters())
	g.adapterOpt = torch.Adam(cfg.LR, 0.9, 0.999, 0)
	g.adapterOpt.AddParameters(g.adapter.Parameters())
	return g, nil
}

// TrainEpisode runs one episode to termination, doing a joint gradient step
// on every transition, and returns the accumulated reward. An environment
// that never reports done keeps the loop running.
func (g *GATN) TrainEpisode() float32 {
	state := g.env.Reset()
	total := float32(0)

	for {
		st := g.tensor(state)
		recon, mu, logvar := g.vae.Forward(st)
		vaeLoss := g.vae.Loss(recon, st, mu, logvar)

		probs := g.sched.Forward(mu)
		tasks := g.sched.SelectSourceTasks(probs, g.cfg.SelectCount, g.src)
		sourceOuts := make([]torch.Tensor, len(tasks))
		for i, task := range tasks {
			sourceOuts[i] = g.tensor(g.sources[task](state))
		}

		baseOut := g.base.Forward(st)
		combined, gate := g.adapter.Forward(mu, probs, tasks, sourceOuts, baseOut)

		action := int(combined.Argmax().Item().(int64))
		next, reward, done, _ := g.env.Step(action)

		target := reward + float32(g.cfg.Gamma)*g.nextValue(next)
		tdLoss := g.tdLoss(combined, target)
		robustLoss := g.robustnessLoss(state, combined)

		loss := torch.Add(torch.Add(vaeLoss, tdLoss, 1), robustLoss, 1)

		g.vaeOpt.ZeroGrad()
		g.baseOpt.ZeroGrad()
		g.schedOpt.ZeroGrad()
		g.adapterOpt.ZeroGrad()
		loss.Backward()
		// one shared backward; the step order below is fixed so runs with the
		// same seed reproduce
		g.vaeOpt.Step()
		g.baseOpt.Step()
		g.schedOpt.Step()
		g.adapterOpt.Step()

		total += reward
		state = next
		if done {
			util.Debug(fmt.Sprintf("gate weights at episode end: %v", toFloats(gate)))
			break
		}
	}
	return total
}

// nextValue is the bootstrap term max_a Base(next)[a]. It is computed outside
// the graph, so no gradient flows through the target side.
func (g *GATN) nextValue(next []float32) float32 {
	vals := toFloats(g.base.Forward(g.tensor(next)))
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// tdLoss regresses the whole combined vector onto the scalar target,
// broadcast across all action dimensions. This pushes every coordinate
// toward the same value rather than doing a per-action update.
func (g *GATN) tdLoss(combined torch.Tensor, target float32) torch.Tensor {
	tgt := make([]float32, g.cfg.ActionDim)
	for i := range tgt {
		tgt[i] = target
	}
	return mse(combined, g.tensor(tgt))
}

// robustnessLoss perturbs the raw state with Gaussian noise, re-encodes it,
// and recomputes the combined output with an empty source selection and the
// perturbed base output, penalizing drift from the unperturbed output.
func (g *GATN) robustnessLoss(state []float32, combined torch.Tensor) torch.Tensor {
	perturbed := make([]float32, len(state))
	copy(perturbed, state)
	if g.cfg.Epsilon > 0 {
		noise := distuv.Normal{Mu: 0, Sigma: g.cfg.Epsilon, Src: g.src}
		for i := range perturbed {
			perturbed[i] += float32(noise.Rand())
		}
	}
	pst := g.tensor(perturbed)
	pmu, _ := g.vae.Encode(pst)
	pbase := g.base.Forward(pst)
	pcombined, _ := g.adapter.Forward(pmu, torch.Tensor{}, nil, nil, pbase)
	return mse(pcombined, combined)
}

func (g *GATN) tensor(v []float32) torch.Tensor {
	t := torch.NewTensor(v)
	return t.To(g.device, t.Dtype())
}
