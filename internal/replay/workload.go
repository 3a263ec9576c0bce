package replay

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sarchlab/rrip/mem/cache"
)

// A Pattern is a kind of synthetic address stream.
type Pattern int

// The supported access patterns.
const (
	// PatternSequential streams through memory and never reuses a block.
	PatternSequential Pattern = iota
	// PatternLoop cycles through a fixed working set.
	PatternLoop
	// PatternRandom picks blocks of the working set uniformly.
	PatternRandom
	// PatternMixed reuses a hot working set and is periodically interrupted
	// by bursts of blocks that are never touched again.
	PatternMixed
)

var patternNames = []string{"sequential", "loop", "random", "mixed"}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}

	return patternNames[p]
}

// Patterns lists all the supported patterns.
func Patterns() []Pattern {
	return []Pattern{PatternSequential, PatternLoop, PatternRandom, PatternMixed}
}

// ParsePattern converts a pattern name to a Pattern.
func ParsePattern(name string) (Pattern, error) {
	for _, p := range Patterns() {
		if strings.EqualFold(name, p.String()) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown workload %q", name)
}

const (
	scanPeriod = 1024
	scanLength = 256
	scanBase   = uint64(1) << 40
)

// WorkloadConfig describes a synthetic workload.
type WorkloadConfig struct {
	Pattern     Pattern
	NumAccesses int
	BlockSize   uint64
	WorkingSet  int
	WriteRatio  float64
	Seed        uint64
}

// Generate returns the accesses of the workload. The same configuration
// always generates the same accesses.
func Generate(cfg WorkloadConfig) iter.Seq[*cache.AccessContext] {
	return func(yield func(*cache.AccessContext) bool) {
		rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
		workingSet := max(cfg.WorkingSet, 1)
		scanned := uint64(0)

		for i := 0; i < cfg.NumAccesses; i++ {
			var block uint64

			switch cfg.Pattern {
			case PatternSequential:
				block = uint64(i)
			case PatternLoop:
				block = uint64(i % workingSet)
			case PatternRandom:
				block = uint64(rng.IntN(workingSet))
			case PatternMixed:
				if i%scanPeriod < scanLength {
					block = scanBase + scanned
					scanned++
				} else {
					block = uint64(rng.IntN(workingSet))
				}
			}

			access := &cache.AccessContext{
				ID:      strconv.Itoa(i),
				Address: block * cfg.BlockSize,
				IsWrite: rng.Float64() < cfg.WriteRatio,
			}

			if !yield(access) {
				return
			}
		}
	}
}
