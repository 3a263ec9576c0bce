package replay

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/sarchlab/rrip/mem/cache"
)

// Config describes one replay run.
type Config struct {
	Policy    cache.PolicyKind
	RPVMax    int
	NumSets   int
	NumWays   int
	BlockSize uint64
	Workload  WorkloadConfig
	Logger    logrus.FieldLogger
}

// DefaultConfig returns a 64-set, 16-way cache with 64-byte blocks running
// SRRIP on the mixed workload.
func DefaultConfig() Config {
	return Config{
		Policy:    cache.PolicySRRIP,
		RPVMax:    3,
		NumSets:   64,
		NumWays:   16,
		BlockSize: 64,
		Workload: WorkloadConfig{
			Pattern:     PatternMixed,
			NumAccesses: 100000,
			WorkingSet:  768,
			WriteRatio:  0.2,
			Seed:        1,
		},
	}
}

// Result summarizes a replay run.
type Result struct {
	RunID         string
	Policy        string
	Workload      string
	NumSets       int
	NumWays       int
	RPVMax        int
	Accesses      uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	HitRate       float64
	SetMissMean   float64
	SetMissStdDev float64
}

// Run replays the workload on a directory managed by the configured policy.
func Run(cfg Config) (Result, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	policy, err := cache.MakeBuilder().
		WithPolicy(cfg.Policy).
		WithNumLines(cfg.NumSets * cfg.NumWays).
		WithRPVMax(cfg.RPVMax).
		WithLogger(log).
		Build()
	if err != nil {
		return Result{}, err
	}

	dir, err := NewDirectory(cfg.NumSets, cfg.NumWays, cfg.BlockSize, policy)
	if err != nil {
		return Result{}, err
	}

	wl := cfg.Workload
	wl.BlockSize = cfg.BlockSize

	runID := xid.New().String()
	log.WithFields(logrus.Fields{
		"run":      runID,
		"policy":   cfg.Policy,
		"workload": wl.Pattern,
		"accesses": wl.NumAccesses,
	}).Info("replay started")

	for access := range Generate(wl) {
		if _, err := dir.Access(access); err != nil {
			return Result{}, fmt.Errorf("access %s: %w", access.ID, err)
		}
	}

	res := summarize(dir)
	res.RunID = runID
	res.Policy = cfg.Policy.String()
	res.Workload = wl.Pattern.String()
	res.NumSets = cfg.NumSets
	res.NumWays = cfg.NumWays
	res.RPVMax = cfg.RPVMax

	log.WithFields(logrus.Fields{
		"run":     runID,
		"hitRate": res.HitRate,
	}).Info("replay finished")

	return res, nil
}

func summarize(dir *Directory) Result {
	res := Result{
		Accesses:  dir.Hits + dir.Misses,
		Hits:      dir.Hits,
		Misses:    dir.Misses,
		Evictions: dir.Evictions,
	}

	if res.Accesses > 0 {
		res.HitRate = float64(res.Hits) / float64(res.Accesses)
	}

	setMisses := make([]float64, len(dir.SetMisses))
	for i, m := range dir.SetMisses {
		setMisses[i] = float64(m)
	}

	if len(setMisses) > 1 {
		res.SetMissMean, res.SetMissStdDev = stat.MeanStdDev(setMisses, nil)
	} else if len(setMisses) == 1 {
		res.SetMissMean = setMisses[0]
	}

	return res
}
