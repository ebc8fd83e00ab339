package world

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/locomotion/probe"
)

// SphereOverlap returns the ids of boxes on mask that intersect the sphere,
// ordered by id.
func (w *World) SphereOverlap(center mgl64.Vec3, radius float64, mask probe.LayerMask) []probe.BodyID {
	if radius < 0 {
		return nil
	}
	ext := mgl64.Vec3{radius, radius, radius}
	var ids []probe.BodyID
	for _, box := range w.candidates(center.Sub(ext), center.Add(ext), mask) {
		if sphereIntersectsBox(center, radius, box) {
			ids = append(ids, box.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Raycast returns the nearest hit along direction within maxDistance. Boxes
// that contain the ray origin are ignored.
func (w *World) Raycast(origin, direction mgl64.Vec3, maxDistance float64, mask probe.LayerMask) (probe.Hit, bool) {
	if maxDistance <= 0 || direction.LenSqr() == 0 {
		return probe.Hit{}, false
	}
	dir := direction.Normalize()
	end := origin.Add(dir.Mul(maxDistance))

	best := probe.Hit{Distance: math.Inf(1)}
	found := false
	for _, box := range w.candidates(origin, end, mask) {
		if box.Contains(origin) {
			continue
		}
		t, normal, ok := rayBox(origin, dir, box)
		if !ok || t > maxDistance {
			continue
		}
		if t < best.Distance || (t == best.Distance && box.ID < best.Body) {
			best = probe.Hit{
				Point:    origin.Add(dir.Mul(t)),
				Normal:   normal,
				Distance: t,
				Body:     box.ID,
			}
			found = true
		}
	}
	if !found {
		return probe.Hit{}, false
	}
	return best, true
}

func sphereIntersectsBox(center mgl64.Vec3, radius float64, box *Box) bool {
	var d2 float64
	for i := 0; i < 3; i++ {
		v := center[i]
		if v < box.Min[i] {
			d2 += (box.Min[i] - v) * (box.Min[i] - v)
		} else if v > box.Max[i] {
			d2 += (v - box.Max[i]) * (v - box.Max[i])
		}
	}
	return d2 <= radius*radius
}

// rayBox is the slab test. dir must be normalized; origin outside the box.
func rayBox(origin, dir mgl64.Vec3, box *Box) (float64, mgl64.Vec3, bool) {
	tmin := 0.0
	tmax := math.Inf(1)
	var normal mgl64.Vec3
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < box.Min[i] || origin[i] > box.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (box.Min[i] - origin[i]) * inv
		t2 := (box.Max[i] - origin[i]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = mgl64.Vec3{}
			normal[i] = sign
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	return tmin, normal, true
}
