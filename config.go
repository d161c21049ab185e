package clustree

import "fmt"

const (
	// DefaultBranchingFactor is used if Config.BranchingFactor is left at 0.
	DefaultBranchingFactor = 5
	// DefaultClosenessThreshold is used if Config.ClosenessThreshold is left at 0.
	DefaultClosenessThreshold = 10
	// MaxBranchingFactor bounds the fan-out. The flat node array grows with
	// (BranchingFactor+1)^height.
	MaxBranchingFactor = 64
)

// Config configures a clustering tree. Both parameters are fixed for the
// lifetime of a tree.
type Config struct {
	// BranchingFactor is the maximum number of clusters per leaf and the
	// maximum number of children per internal node. Must be at least 2.
	BranchingFactor int
	// ClosenessThreshold controls absorption: a value is merged into its
	// closest cluster iff their distance is strictly less than the threshold.
	ClosenessThreshold int
}

func (cfg Config) normalized() Config {
	if cfg.BranchingFactor == 0 {
		cfg.BranchingFactor = DefaultBranchingFactor
	}
	if cfg.ClosenessThreshold == 0 {
		cfg.ClosenessThreshold = DefaultClosenessThreshold
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.BranchingFactor < 2 || cfg.BranchingFactor > MaxBranchingFactor {
		return fmt.Errorf("%w: branching factor must be in [2,%d], is %d",
			ErrIllegalArguments, MaxBranchingFactor, cfg.BranchingFactor)
	}
	if cfg.ClosenessThreshold < 1 {
		return fmt.Errorf("%w: closeness threshold must be positive, is %d",
			ErrIllegalArguments, cfg.ClosenessThreshold)
	}
	return nil
}
