// Package world is an in-memory scene of static boxes that answers the
// locomotion core's probe queries and resolves body contacts.
//
// Box footprints (their XZ extent) live in a Chipmunk space, which serves as
// the spatial index and layer filter. Exact 3-D tests run on the candidates
// it returns.
package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/probe"
	"go.uber.org/zap"
)

// Box is an axis-aligned static body.
type Box struct {
	ID    probe.BodyID
	Name  string
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer probe.Layer

	shape *cp.Shape
}

// Contains reports whether p lies inside or on the box.
func (b *Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// World owns the Chipmunk space and the boxes indexed in it.
type World struct {
	space  *cp.Space
	boxes  map[probe.BodyID]*Box
	nextID probe.BodyID
	log    *zap.Logger
}

// New creates an empty world.
func New(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	space := cp.NewSpace()
	return &World{
		space: space,
		boxes: make(map[probe.BodyID]*Box),
		log:   log.With(zap.String("component", "world")),
	}
}

// AddBox inserts a static box spanning min..max on the given layer.
func (w *World) AddBox(name string, min, max mgl64.Vec3, layer probe.Layer) probe.BodyID {
	if w == nil || w.space == nil {
		return 0
	}
	lo := mgl64.Vec3{math.Min(min[0], max[0]), math.Min(min[1], max[1]), math.Min(min[2], max[2])}
	hi := mgl64.Vec3{math.Max(min[0], max[0]), math.Max(min[1], max[1]), math.Max(min[2], max[2])}
	if layer == 0 {
		layer = probe.LayerDefault
	}

	w.nextID++
	box := &Box{ID: w.nextID, Name: name, Min: lo, Max: hi, Layer: layer}

	// footprint on the ground plane: X maps to cp X, Z maps to cp Y
	bb := cp.BB{L: lo[0], B: lo[2], R: hi[0], T: hi[2]}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	shape.UserData = box
	w.space.AddShape(shape)
	box.shape = shape

	w.boxes[box.ID] = box
	w.log.Debug("box added",
		zap.Uint64("id", uint64(box.ID)),
		zap.String("name", name),
		zap.Stringer("layer", layer))
	return box.ID
}

// Remove deletes a box. It returns false when the id is unknown.
func (w *World) Remove(id probe.BodyID) bool {
	if w == nil {
		return false
	}
	box, ok := w.boxes[id]
	if !ok {
		return false
	}
	if box.shape != nil && w.space != nil {
		w.space.RemoveShape(box.shape)
		box.shape = nil
	}
	delete(w.boxes, id)
	w.log.Debug("box removed", zap.Uint64("id", uint64(id)), zap.String("name", box.Name))
	return true
}

// Box returns a box by id.
func (w *World) Box(id probe.BodyID) (*Box, bool) {
	if w == nil {
		return nil, false
	}
	b, ok := w.boxes[id]
	return b, ok
}

// Len returns the number of boxes.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.boxes)
}

// candidates returns boxes whose footprint intersects the XZ rectangle
// spanned by lo..hi and whose layer is selected by mask.
func (w *World) candidates(lo, hi mgl64.Vec3, mask probe.LayerMask) []*Box {
	if w == nil || w.space == nil || len(w.boxes) == 0 {
		return nil
	}
	bb := cp.BB{
		L: math.Min(lo[0], hi[0]),
		B: math.Min(lo[2], hi[2]),
		R: math.Max(lo[0], hi[0]),
		T: math.Max(lo[2], hi[2]),
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	var out []*Box
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, data interface{}) {
		if box, ok := shape.UserData.(*Box); ok {
			out = append(out, box)
		}
	}, nil)
	return out
}

// Boxes returns every box ordered by id.
func (w *World) Boxes() []*Box {
	if w == nil {
		return nil
	}
	out := make([]*Box, 0, len(w.boxes))
	for _, b := range w.boxes {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
