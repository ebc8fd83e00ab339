// Package probe defines the geometric queries the locomotion core runs against
// the world: ground contact, step detection, climbable surfaces and melee hits.
package probe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Layer is a single collision category bit.
type Layer uint32

// LayerMask selects one or more layers.
type LayerMask = Layer

const (
	LayerDefault Layer = 1 << iota
	LayerGround
	LayerClimbable
	LayerDestructible
)

// AllLayers matches every category.
const AllLayers LayerMask = ^LayerMask(0)

var layerNames = map[string]Layer{
	"default":      LayerDefault,
	"ground":       LayerGround,
	"climbable":    LayerClimbable,
	"destructible": LayerDestructible,
}

// ParseLayer resolves a layer by name.
func ParseLayer(name string) (Layer, error) {
	l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("probe: unknown layer %q", name)
	}
	return l, nil
}

// ParseMask combines named layers into a mask. "all" selects every layer.
func ParseMask(names []string) (LayerMask, error) {
	var mask LayerMask
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), "all") {
			return AllLayers, nil
		}
		l, err := ParseLayer(n)
		if err != nil {
			return 0, err
		}
		mask |= l
	}
	return mask, nil
}

func (l Layer) String() string {
	if l == AllLayers {
		return "all"
	}
	var parts []string
	for name, bit := range layerNames {
		if l&bit != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// BodyID identifies a collidable body owned by the world.
type BodyID uint64

// Hit is the result of a successful ray cast.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Body     BodyID
}

// Querier answers read-only geometric queries. Implementations must not have
// side effects beyond the returned value.
type Querier interface {
	SphereOverlap(center mgl64.Vec3, radius float64, mask LayerMask) []BodyID
	Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask LayerMask) (Hit, bool)
}

// World is a Querier that also lets the core remove destroyed bodies.
type World interface {
	Querier
	Remove(id BodyID) bool
}
