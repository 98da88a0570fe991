package ml

import (
	torch "github.com/wangkuiyi/gotorch"
	F "github.com/wangkuiyi/gotorch/nn/functional"
)

// toFloats copies a 1-D tensor back into Go floats. Item() only works on
// scalars, so each coordinate is reduced against a basis vector. The result
// is detached; nothing read this way re-enters the gradient graph.
func toFloats(t torch.Tensor) []float32 {
	d := t.Detach()
	d = d.To(torch.NewDevice("cpu"), d.Dtype())
	n := int(d.Shape()[0])
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		basis := make([]float32, n)
		basis[i] = 1
		out[i] = torch.Sum(torch.Mul(d, torch.NewTensor(basis))).Item().(float32)
	}
	return out
}

// scale multiplies a tensor by a Go scalar, staying in the graph.
func scale(t torch.Tensor, s float32) torch.Tensor {
	return torch.Mul(t, torch.NewTensor([]float32{s}))
}

// exp is elementwise e^x through the identity e^x = sigmoid(x)/sigmoid(-x);
// the library exposes no exponential op. Overflow for large x surfaces as
// Inf, same as a direct exp would.
func exp(t torch.Tensor) torch.Tensor {
	return torch.Div(torch.Sigmoid(t), torch.Sigmoid(scale(t, -1)))
}

// softmax normalizes 1-D logits into a simplex.
func softmax(logits torch.Tensor) torch.Tensor {
	return exp(F.LogSoftmax(logits, 0))
}

// mse is the mean squared difference of two same-shaped tensors.
func mse(a, b torch.Tensor) torch.Tensor {
	diff := torch.Sub(a, b, 1)
	return torch.Mean(torch.Mul(diff, diff))
}
