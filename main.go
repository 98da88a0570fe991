package main

import (
	"flag"
	"log"

	"gatn/env"
	"gatn/ml"
	"gatn/util"

	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn/initializer"
)

var device torch.Device

func makeAgent(seed uint64, latent, hidden, selectCount int, lr, gamma, epsilon float64) ml.Agent {
	if torch.IsCUDAAvailable() {
		log.Println("CUDA is valid")
		device = torch.NewDevice("cuda")
	} else {
		log.Println("No CUDA found; CPU only")
		device = torch.NewDevice("cpu")
	}
	initializer.ManualSeed(int64(seed))

	e := env.NewCartPole(seed)
	actionDim := env.ActionDim(e.ActionSpace())
	sources := cartPoleSources(actionDim)

	cfg := ml.Config{
		StateDim:    e.ObservationSpace().Shape[0],
		LatentDim:   latent,
		HiddenDim:   hidden,
		ActionDim:   actionDim,
		NumSources:  len(sources),
		SelectCount: selectCount,
		LR:          lr,
		Gamma:       gamma,
		Epsilon:     epsilon,
		Seed:        seed,
	}
	agent, err := ml.New(cfg, e, sources, device)
	if err != nil {
		log.Fatalf("Cannot construct GATN agent: %v", err)
	}
	return agent
}

func main() {
	episodes := flag.Int("episodes", 1000, "number of training episodes")
	lr := flag.Float64("lr", .001, "learning rate for all four optimizers")
	gamma := flag.Float64("gamma", .99, "TD discount factor")
	epsilon := flag.Float64("epsilon", .01, "robustness perturbation std")
	latent := flag.Int("latent", 8, "latent dimensionality")
	hidden := flag.Int("hidden", 64, "hidden layer width")
	selectCount := flag.Int("select", 2, "source tasks consulted per step")
	seed := flag.Uint64("seed", 1, "RNG seed")
	flag.Parse()

	util.InitLogger("gatn")
	util.InitPlotLogger("reward")

	agent := makeAgent(*seed, *latent, *hidden, *selectCount, *lr, *gamma, *epsilon)
	util.Logger.Println("made model and began training")
	defer torch.FinishGC()

	for ep := 0; ep < *episodes; ep++ {
		reward := agent.TrainEpisode()
		util.PlotLogger.Println(ep, reward)
		if ep%100 == 0 {
			log.Printf("Episode: %d, Reward: %.1f", ep, reward)
		}
	}
}
