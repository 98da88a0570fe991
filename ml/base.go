package ml

import (
	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
	F "github.com/wangkuiyi/gotorch/nn/functional"
)

type baseNet struct {
	nn.Module
	FC1 *nn.LinearModule
	FC2 *nn.LinearModule
}

// Base is the direct state to action-value mapping. It acts both as a
// candidate output for the adapter and as the bootstrap source for the TD
// target.
type Base struct {
	net    *baseNet
	device torch.Device
}

func MakeBase(cfg Config, device torch.Device) *Base {
	net := &baseNet{
		FC1: nn.Linear(int64(cfg.StateDim), int64(cfg.HiddenDim), true),
		FC2: nn.Linear(int64(cfg.HiddenDim), int64(cfg.ActionDim), true),
	}
	net.Init(net)
	net.To(device)
	return &Base{net: net, device: device}
}

func (b *Base) Forward(x torch.Tensor) torch.Tensor {
	return b.net.FC2.Forward(F.Relu(b.net.FC1.Forward(x), false))
}

func (b *Base) Parameters() []torch.Tensor { return b.net.Parameters() }
