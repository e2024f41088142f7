package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"flightsim/internal/core"
	"flightsim/internal/logging"
	"flightsim/internal/terrain"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type job struct {
	seed int64
	mode terrain.Mode
}

type seedResult struct {
	seed       int64
	mode       terrain.Mode
	peak       float64
	mean       float64
	borderMax  float64
	normalMinY float64
	nanNormals int
	nodes      int
	elapsed    time.Duration
}

func (r seedResult) String() string {
	return fmt.Sprintf("seed=%d mode=%s peak=%.2f mean=%.2f border=%.3g normalMinY=%.3f nan=%d nodes=%d elapsed=%s",
		r.seed, r.mode, r.peak, r.mean, r.borderMax, r.normalMinY, r.nanNormals, r.nodes, r.elapsed.Round(time.Microsecond))
}

func main() {
	seeds := flag.Int("seeds", 64, "number of consecutive seeds to generate")
	from := flag.Int64("from", 1, "first seed")
	meshes := flag.Int("meshes", 3, "mountains per world")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	modes := flag.String("mode", "both", "normal mode: strict, corrected or both")
	top := flag.Int("top", 5, "how many of the tallest worlds to list")
	level := flag.String("log", "INFO", "log level")
	var overrides kvList
	flag.Var(&overrides, "set", "terrain override in key=value form (repeatable)")
	flag.Parse()

	log := logging.New(os.Stderr, logging.ParseLevel(*level))
	if *workers < 1 {
		log.Warn().Int("workers", *workers).Msg("need at least one worker, using 1")
	}

	params := map[string]string{}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Warn().Str("override", kv).Msg("ignoring override without '='")
			continue
		}
		params[key] = value
	}
	cfg := terrain.FromMap(params)

	var sweepModes []terrain.Mode
	switch *modes {
	case "both":
		sweepModes = []terrain.Mode{terrain.ModeStrict, terrain.ModeCorrected}
	default:
		mode, ok := terrain.ParseMode(*modes)
		if !ok {
			log.Fatal().Str("mode", *modes).Msg("unknown normal mode")
		}
		sweepModes = []terrain.Mode{mode}
	}

	var jobs []job
	for i := 0; i < *seeds; i++ {
		for _, mode := range sweepModes {
			jobs = append(jobs, job{seed: *from + int64(i), mode: mode})
		}
	}

	fmt.Printf("Generating %d worlds (%d meshes of %dx%d, %d workers)\n", len(jobs), *meshes, cfg.Size, cfg.Size, max(*workers, 1))

	start := time.Now()
	all := sweep(cfg, jobs, *meshes, *workers)
	for _, res := range all {
		if res.borderMax != 0 || res.nanNormals > 0 {
			log.Warn().Int64("seed", res.seed).Str("mode", res.mode.String()).
				Float64("border", res.borderMax).Int("nan", res.nanNormals).
				Msg("world breaks terrain guarantees")
		}
		log.Debug().Int64("seed", res.seed).Str("mode", res.mode.String()).Dur("elapsed", res.elapsed).Msg("world generated")
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].peak != all[j].peak {
			return all[i].peak > all[j].peak
		}
		return all[i].seed < all[j].seed
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d worlds by peak (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		fmt.Printf("%2d) %s\n", i+1, all[i])
	}

	summary := summarize(all)
	fmt.Printf("\nAcross %d worlds: mean peak %.2f, min normal y %.3f, worst border %.3g, nan normals %d\n",
		len(all), summary.peak, summary.normalMinY, summary.borderMax, summary.nanNormals)
}

// sweep generates every job on a pool of at least one worker and returns the
// results in completion order.
func sweep(cfg terrain.Config, jobs []job, meshes, workers int) []seedResult {
	workers = max(workers, 1)
	queue := make(chan job)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				results <- runSeed(cfg, j, meshes)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobs {
			queue <- j
		}
		close(queue)
	}()

	var all []seedResult
	for res := range results {
		all = append(all, res)
	}
	return all
}

// runSeed builds one world and folds its mesh summaries together.
func runSeed(base terrain.Config, j job, meshes int) seedResult {
	cfg := base
	cfg.Mode = j.mode
	start := time.Now()
	world := terrain.BuildWorld(cfg, meshes, core.NewRNG(j.seed))
	res := seedResult{seed: j.seed, mode: j.mode, normalMinY: math.Inf(1), elapsed: time.Since(start)}
	for _, m := range world {
		s := terrain.Summarize(m)
		res.peak = math.Max(res.peak, s.Peak)
		res.mean += s.Mean / float64(len(world))
		res.borderMax = math.Max(res.borderMax, s.BorderMax)
		res.normalMinY = math.Min(res.normalMinY, s.NormalMinY)
		res.nanNormals += s.NaNNormals
		res.nodes += m.Stats().Nodes
	}
	return res
}

// summarize averages peaks and keeps the worst case of every other figure.
func summarize(all []seedResult) seedResult {
	out := seedResult{normalMinY: math.Inf(1)}
	if len(all) == 0 {
		return out
	}
	for _, r := range all {
		out.peak += r.peak / float64(len(all))
		out.borderMax = math.Max(out.borderMax, r.borderMax)
		out.normalMinY = math.Min(out.normalMinY, r.normalMinY)
		out.nanNormals += r.nanNormals
	}
	return out
}
