package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"autobattle/internal/battle"
	"autobattle/internal/config"
	"autobattle/internal/util"
)

func main() {
	var cfgDir, out string
	var seed int64
	var n int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.Parse()

	units, abilities, stage, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if n <= 1 {
		in, err := battle.BuildInput(units, abilities, stage)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		in.Rng = util.New(seed)
		in.Record = saveLog

		state, err := battle.Run(in)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := os.WriteFile(out, battle.MarshalPretty(state), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Single battle finished. Winner=%s, Ticks=%d, Waves=%d/%d, Events=%d -> %s\n",
			state.Winner, state.Tick, state.CurrentWave, state.TotalWaves, len(state.Events), out)
		return
	}

	type stat struct {
		HeroWins  int
		SumTicks  int
		ByUnit    map[string]float64
		ByAbility map[string]float64
	}
	st := stat{
		ByUnit:    map[string]float64{},
		ByAbility: map[string]float64{},
	}
	var mu sync.Mutex
	var wg sync.WaitGroup
	workers := 8
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				// fresh input per run: units are mutated in place
				in, err := battle.BuildInput(units, abilities, stage)
				if err != nil {
					continue
				}
				in.Rng = util.New(seed + int64(workerID)*7919 + int64(i))
				in.Record = false

				state, err := battle.Run(in)
				if err != nil {
					continue
				}

				mu.Lock()
				if state.Winner == battle.WinnerHeroes {
					st.HeroWins++
				}
				st.SumTicks += state.Tick
				for k, v := range state.DamageByUnit {
					st.ByUnit[k] += v
				}
				for k, v := range state.DamageByAbility {
					st.ByAbility[k] += v
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	totalDmg := 0.0
	for _, v := range st.ByUnit {
		totalDmg += v
	}
	percent := func(m map[string]float64) map[string]any {
		out := map[string]any{}
		for k, v := range m {
			share := 0.0
			if totalDmg > 0 {
				share = v / totalDmg
			}
			out[k] = map[string]any{"total": v, "ratio": share}
		}
		return out
	}

	summary := map[string]any{
		"runs":         n,
		"win_rate":     float64(st.HeroWins) / float64(n),
		"avg_ticks":    float64(st.SumTicks) / float64(n),
		"total_damage": totalDmg,
		"by_unit":      percent(st.ByUnit),
		"by_ability":   percent(st.ByAbility),
	}
	if err := os.WriteFile(out, battle.MarshalPretty(summary), 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}
