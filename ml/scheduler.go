package ml

import (
	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
	F "github.com/wangkuiyi/gotorch/nn/functional"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

type schedulerNet struct {
	nn.Module
	FC1 *nn.LinearModule
	FC2 *nn.LinearModule
}

// Scheduler maps the latent mean to a categorical distribution over source
// tasks and samples which ones to consult.
type Scheduler struct {
	net    *schedulerNet
	device torch.Device
}

func MakeScheduler(cfg Config, device torch.Device) *Scheduler {
	net := &schedulerNet{
		FC1: nn.Linear(int64(cfg.LatentDim), int64(cfg.HiddenDim), true),
		FC2: nn.Linear(int64(cfg.HiddenDim), int64(cfg.NumSources), true),
	}
	net.Init(net)
	net.To(device)
	return &Scheduler{net: net, device: device}
}

// Forward returns the softmax-normalized task distribution.
func (s *Scheduler) Forward(mu torch.Tensor) torch.Tensor {
	return softmax(s.net.FC2.Forward(F.Relu(s.net.FC1.Forward(mu), false)))
}

// SelectSourceTasks draws m task indices from the distribution. Sampling is
// with replacement: the draws are independent, so duplicates can occur.
func (s *Scheduler) SelectSourceTasks(probs torch.Tensor, m int, src rand.Source) []int {
	p := toFloats(probs)
	weights := make([]float64, len(p))
	for i, v := range p {
		weights[i] = float64(v)
	}
	return sampleTasks(weights, m, src)
}

func (s *Scheduler) Parameters() []torch.Tensor { return s.net.Parameters() }

func sampleTasks(weights []float64, m int, src rand.Source) []int {
	cat := distuv.NewCategorical(weights, src)
	out := make([]int, m)
	for i := range out {
		out[i] = int(cat.Rand())
	}
	return out
}
