package ml

import (
	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
	F "github.com/wangkuiyi/gotorch/nn/functional"
)

type adapterNet struct {
	nn.Module
	Gate  *nn.LinearModule
	Lat   *nn.LinearModule
	Slots *nn.LinearModule
	Out   *nn.LinearModule
}

// PolicyAdapter combines the candidate outputs into the final action-value
// vector. Candidates live in fixed slots, one per source task plus one for
// the base network: a selected task's output is scaled by its selection
// probability and accumulated into its slot (duplicate draws stack),
// unselected slots stay zero. The combiner is a dense mapping over the
// latent vector and the flattened slots; the gate distribution over
// (NumSources+1) candidates is a side output for inspection only and is
// never multiplied into the result.
type PolicyAdapter struct {
	net        *adapterNet
	device     torch.Device
	numSources int
	actionDim  int
}

func MakePolicyAdapter(cfg Config, device torch.Device) *PolicyAdapter {
	slots := int64(cfg.NumSources+1) * int64(cfg.ActionDim)
	net := &adapterNet{
		Gate:  nn.Linear(int64(cfg.LatentDim), int64(cfg.NumSources+1), true),
		Lat:   nn.Linear(int64(cfg.LatentDim), int64(cfg.HiddenDim), true),
		Slots: nn.Linear(slots, int64(cfg.HiddenDim), true),
		Out:   nn.Linear(int64(cfg.HiddenDim), int64(cfg.ActionDim), true),
	}
	net.Init(net)
	net.To(device)
	return &PolicyAdapter{
		net:        net,
		device:     device,
		numSources: cfg.NumSources,
		actionDim:  cfg.ActionDim,
	}
}

// Forward consumes the latent vector (the VAE mean), the scheduler
// distribution, the selected task indices with their outputs, and the base
// output. An empty selection is legal: all source slots stay zero.
func (p *PolicyAdapter) Forward(latent, probs torch.Tensor, tasks []int, sourceOuts []torch.Tensor, baseOut torch.Tensor) (combined, gateWeights torch.Tensor) {
	zero := torch.Full([]int64{int64(p.actionDim)}, 0, false)
	zero = zero.To(p.device, zero.Dtype())

	slots := make([]torch.Tensor, p.numSources+1)
	for i := range slots {
		slots[i] = zero
	}
	for i, task := range tasks {
		// scaling by the selection probability keeps the scheduler in the
		// gradient graph; index sampling alone would cut it out
		w := torch.Sum(torch.Mul(probs, p.onehot(task)))
		slots[task] = torch.Add(slots[task], torch.Mul(sourceOuts[i], w), 1)
	}
	slots[p.numSources] = baseOut

	flat := torch.Stack(slots, 0).View(-1)
	h := F.Relu(torch.Add(p.net.Lat.Forward(latent), p.net.Slots.Forward(flat), 1), false)
	combined = p.net.Out.Forward(h)

	gateWeights = softmax(p.net.Gate.Forward(latent))
	return combined, gateWeights
}

func (p *PolicyAdapter) Parameters() []torch.Tensor { return p.net.Parameters() }

func (p *PolicyAdapter) onehot(task int) torch.Tensor {
	v := make([]float32, p.numSources)
	v[task] = 1
	t := torch.NewTensor(v)
	return t.To(p.device, t.Dtype())
}
