package cache

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// PolicyKind selects a replacement policy implementation.
type PolicyKind int

// The supported replacement policies.
const (
	PolicySRRIP PolicyKind = iota
	PolicyLRU
)

func (k PolicyKind) String() string {
	switch k {
	case PolicySRRIP:
		return "srrip"
	case PolicyLRU:
		return "lru"
	default:
		return fmt.Sprintf("PolicyKind(%d)", int(k))
	}
}

// PolicyKinds lists all the supported policies.
func PolicyKinds() []PolicyKind {
	return []PolicyKind{PolicySRRIP, PolicyLRU}
}

// ParsePolicyKind converts a policy name, such as "srrip", to a PolicyKind.
func ParsePolicyKind(name string) (PolicyKind, error) {
	for _, k := range PolicyKinds() {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// A Builder can build replacement policies.
type Builder struct {
	kind     PolicyKind
	numLines int
	rpvMax   int
	log      logrus.FieldLogger
}

// MakeBuilder returns a Builder with default parameters: an SRRIP policy with
// 2-bit RRPVs.
func MakeBuilder() Builder {
	return Builder{
		kind:   PolicySRRIP,
		rpvMax: 3,
	}
}

// WithPolicy sets the policy to build.
func (b Builder) WithPolicy(kind PolicyKind) Builder {
	b.kind = kind
	return b
}

// WithNumLines sets the number of slots the policy tracks.
func (b Builder) WithNumLines(n int) Builder {
	b.numLines = n
	return b
}

// WithRPVMax sets the saturation value of the SRRIP re-reference prediction
// values. It is ignored by other policies.
func (b Builder) WithRPVMax(rpvMax int) Builder {
	b.rpvMax = rpvMax
	return b
}

// WithLogger sets the logger that the policy reports its decisions to.
func (b Builder) WithLogger(log logrus.FieldLogger) Builder {
	b.log = log
	return b
}

// Build creates the policy.
func (b Builder) Build() (ReplPolicy, error) {
	switch b.kind {
	case PolicySRRIP:
		p, err := NewSRRIPPolicy(b.numLines, b.rpvMax)
		if err != nil {
			return nil, err
		}

		if b.log != nil {
			p.log = b.log
		}

		return p, nil
	case PolicyLRU:
		p, err := NewLRUPolicy(b.numLines)
		if err != nil {
			return nil, err
		}

		if b.log != nil {
			p.log = b.log
		}

		return p, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, b.kind)
	}
}
