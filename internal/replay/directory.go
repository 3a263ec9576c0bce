package replay

import (
	"errors"
	"fmt"

	"github.com/sarchlab/rrip/mem/cache"
)

// ErrNoVictim is returned when every block of the accessed set is locked.
var ErrNoVictim = errors.New("no victim available")

// Stats counts what happened in a directory.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	SetMisses []uint64
}

// A Directory is a set-associative tag directory. It does not model data or
// timing. It only decides whether an access hits and which block a miss
// replaces.
type Directory struct {
	numSets   int
	numWays   int
	blockSize uint64
	sets      []*cache.Set
	finder    *cache.PolicyVictimFinder

	Stats
}

// NewDirectory creates a directory with numSets sets of numWays blocks. The
// policy must track at least numSets*numWays slots.
func NewDirectory(
	numSets, numWays int,
	blockSize uint64,
	policy cache.ReplPolicy,
) (*Directory, error) {
	if numSets <= 0 || numWays <= 0 || blockSize == 0 {
		return nil, fmt.Errorf(
			"%w: %d sets, %d ways, block size %d",
			cache.ErrInvalidConfig, numSets, numWays, blockSize)
	}

	d := &Directory{
		numSets:   numSets,
		numWays:   numWays,
		blockSize: blockSize,
		sets:      make([]*cache.Set, numSets),
		finder:    cache.NewPolicyVictimFinder(policy),
	}
	d.SetMisses = make([]uint64, numSets)

	for i := range d.sets {
		d.sets[i] = cache.NewSet(i, numWays)
	}

	return d, nil
}

// NumLines returns the number of blocks in the directory.
func (d *Directory) NumLines() int {
	return d.numSets * d.numWays
}

// Set returns the set with the given ID.
func (d *Directory) Set(id int) *cache.Set {
	return d.sets[id]
}

// Access looks up the address in the directory and fills it on a miss.
func (d *Directory) Access(access *cache.AccessContext) (bool, error) {
	blockAddr := access.Address / d.blockSize
	setID := int(blockAddr % uint64(d.numSets))
	set := d.sets[setID]

	if block, found := set.Lookup(blockAddr); found {
		d.Hits++

		if err := d.finder.OnHit(block, access); err != nil {
			return false, err
		}

		if access.IsWrite {
			block.IsDirty = true
		}

		return true, nil
	}

	d.Misses++
	d.SetMisses[setID]++

	victim := d.finder.FindVictimWithContext(set, access)
	if victim == nil {
		return false, fmt.Errorf("%w: set %d", ErrNoVictim, setID)
	}

	if victim.IsValid {
		d.Evictions++

		if err := d.finder.OnEvict(victim); err != nil {
			return false, err
		}
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = access.IsWrite

	if err := d.finder.OnFill(victim, access); err != nil {
		return false, err
	}

	return false, nil
}
