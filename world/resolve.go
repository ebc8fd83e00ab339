package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/probe"
)

const resolvePasses = 4

// Resolve pushes the body's collider out of every box it penetrates, taking
// the axis of least penetration, and cancels velocity into the contact.
func (w *World) Resolve(b *physics.Body) {
	if w == nil || b == nil || b.Collider.Height <= 0 {
		return
	}
	for pass := 0; pass < resolvePasses; pass++ {
		lo, hi := bodyBounds(b)
		moved := false
		for _, box := range w.candidates(lo, hi, probe.AllLayers) {
			push, ok := penetration(lo, hi, box)
			if !ok {
				continue
			}
			b.Position = b.Position.Add(push)
			for i := 0; i < 3; i++ {
				if push[i] > 0 && b.Velocity[i] < 0 || push[i] < 0 && b.Velocity[i] > 0 {
					b.Velocity[i] = 0
				}
			}
			lo, hi = bodyBounds(b)
			moved = true
		}
		if !moved {
			return
		}
	}
}

func bodyBounds(b *physics.Body) (mgl64.Vec3, mgl64.Vec3) {
	r := b.Collider.Radius
	lo := mgl64.Vec3{b.Position[0] - r, b.Position[1] + b.Collider.Bottom(), b.Position[2] - r}
	hi := mgl64.Vec3{b.Position[0] + r, b.Position[1] + b.Collider.Top(), b.Position[2] + r}
	return lo, hi
}

// penetration returns the smallest translation separating lo..hi from box.
// Touching boxes do not count as penetrating.
func penetration(lo, hi mgl64.Vec3, box *Box) (mgl64.Vec3, bool) {
	best := math.Inf(1)
	var push mgl64.Vec3
	for i := 0; i < 3; i++ {
		neg := hi[i] - box.Min[i]
		pos := box.Max[i] - lo[i]
		if neg <= 0 || pos <= 0 {
			return mgl64.Vec3{}, false
		}
		if neg < best {
			best = neg
			push = mgl64.Vec3{}
			push[i] = -neg
		}
		if pos < best {
			best = pos
			push = mgl64.Vec3{}
			push[i] = pos
		}
	}
	return push, true
}
