package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/rrip/internal/replay"
)

const envPrefix = "RRIPSIM_"

type options struct {
	policy     string
	workload   string
	sets       int
	ways       int
	blockSize  uint64
	rpvMax     int
	accesses   int
	workingSet int
	writeRatio float64
	seed       uint64
	db         string
	logLevel   string
}

// defaultOptions returns the built-in defaults, overridden by RRIPSIM_*
// environment variables.
func defaultOptions() options {
	d := replay.DefaultConfig()

	return options{
		policy:     envString("POLICY", d.Policy.String()),
		workload:   envString("WORKLOAD", d.Workload.Pattern.String()),
		sets:       envInt("SETS", d.NumSets),
		ways:       envInt("WAYS", d.NumWays),
		blockSize:  envUint("BLOCK_SIZE", d.BlockSize),
		rpvMax:     envInt("RPV_MAX", d.RPVMax),
		accesses:   envInt("ACCESSES", d.Workload.NumAccesses),
		workingSet: envInt("WORKING_SET", d.Workload.WorkingSet),
		writeRatio: envFloat("WRITE_RATIO", d.Workload.WriteRatio),
		seed:       envUint("SEED", d.Workload.Seed),
		db:         envString("DB", ""),
		logLevel:   envString("LOG_LEVEL", "info"),
	}
}

func (o *options) bindFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.workload, "workload", o.workload,
		"access pattern: sequential, loop, random or mixed")
	f.IntVar(&o.sets, "sets", o.sets, "number of cache sets")
	f.IntVar(&o.ways, "ways", o.ways, "number of ways per set")
	f.Uint64Var(&o.blockSize, "block-size", o.blockSize, "cache block size in bytes")
	f.IntVar(&o.rpvMax, "rpv-max", o.rpvMax, "SRRIP re-reference prediction value ceiling")
	f.IntVar(&o.accesses, "accesses", o.accesses, "number of accesses to replay")
	f.IntVar(&o.workingSet, "working-set", o.workingSet, "working set size in blocks")
	f.Float64Var(&o.writeRatio, "write-ratio", o.writeRatio, "fraction of accesses that are writes")
	f.Uint64Var(&o.seed, "seed", o.seed, "workload random seed")
	f.StringVar(&o.db, "db", o.db, "SQLite database to record results to")
	f.StringVar(&o.logLevel, "log-level", o.logLevel, "log level")
}

func envString(name, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		return v
	}

	return fallback
}

func envInt(name string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(envPrefix + name))
	if err != nil {
		return fallback
	}

	return v
}

func envUint(name string, fallback uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(envPrefix+name), 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func envFloat(name string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(envPrefix+name), 64)
	if err != nil {
		return fallback
	}

	return v
}
