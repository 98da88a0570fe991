package ml

import (
	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
	F "github.com/wangkuiyi/gotorch/nn/functional"
)

type vaeNet struct {
	nn.Module
	Enc       *nn.LinearModule
	EncMu     *nn.LinearModule
	EncLogvar *nn.LinearModule
	Dec       *nn.LinearModule
	DecOut    *nn.LinearModule
}

// VAE maps raw states to a latent Gaussian and back. The latent mean feeds
// the scheduler and the policy adapter; the sampled latent only feeds the
// decoder.
type VAE struct {
	net    *vaeNet
	device torch.Device
}

func MakeVAE(cfg Config, device torch.Device) *VAE {
	net := &vaeNet{
		Enc:       nn.Linear(int64(cfg.StateDim), int64(cfg.HiddenDim), true),
		EncMu:     nn.Linear(int64(cfg.HiddenDim), int64(cfg.LatentDim), true),
		EncLogvar: nn.Linear(int64(cfg.HiddenDim), int64(cfg.LatentDim), true),
		Dec:       nn.Linear(int64(cfg.LatentDim), int64(cfg.HiddenDim), true),
		DecOut:    nn.Linear(int64(cfg.HiddenDim), int64(cfg.StateDim), true),
	}
	net.Init(net)
	net.To(device)
	return &VAE{net: net, device: device}
}

func (v *VAE) Encode(x torch.Tensor) (mu, logvar torch.Tensor) {
	h := F.Relu(v.net.Enc.Forward(x), false)
	// logvar is left unbounded; extreme inputs can overflow exp(logvar)
	return v.net.EncMu.Forward(h), v.net.EncLogvar.Forward(h)
}

// Reparameterize draws z = mu + eps*std with std = exp(0.5*logvar), keeping
// the sample differentiable w.r.t. mu and logvar.
func (v *VAE) Reparameterize(mu, logvar torch.Tensor) torch.Tensor {
	std := exp(scale(logvar, 0.5))
	eps := torch.RandN(mu.Shape(), false)
	return torch.Add(mu, torch.Mul(eps, std), 1)
}

func (v *VAE) Decode(z torch.Tensor) torch.Tensor {
	h := F.Relu(v.net.Dec.Forward(z), false)
	return v.net.DecOut.Forward(h)
}

func (v *VAE) Forward(x torch.Tensor) (recon, mu, logvar torch.Tensor) {
	mu, logvar = v.Encode(x)
	z := v.Reparameterize(mu, logvar)
	return v.Decode(z), mu, logvar
}

func (v *VAE) Parameters() []torch.Tensor { return v.net.Parameters() }

// Loss is reconstruction MSE plus the KL term, summed unweighted.
func (v *VAE) Loss(recon, state, mu, logvar torch.Tensor) torch.Tensor {
	return torch.Add(mse(recon, state), klDivergence(mu, logvar), 1)
}

// klDivergence is the closed form -0.5 * sum(1 + logvar - mu^2 - exp(logvar))
// of KL(N(mu, exp(logvar)) || N(0, I)).
func klDivergence(mu, logvar torch.Tensor) torch.Tensor {
	one := torch.Full(mu.Shape(), 1, false)
	inner := torch.Sub(
		torch.Add(one, logvar, 1),
		torch.Add(torch.Mul(mu, mu), exp(logvar), 1),
		1,
	)
	return scale(torch.Sum(inner), -0.5)
}
