package probe

import "github.com/go-gl/mathgl/mgl64"

// Sphere is an overlap volume anchored relative to its owner.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
	Mask   LayerMask
}

// Grounded reports whether anything on the ground mask touches the detector sphere.
func Grounded(q Querier, detector Sphere) bool {
	if q == nil || detector.Radius <= 0 {
		return false
	}
	return len(q.SphereOverlap(detector.Center, detector.Radius, detector.Mask)) > 0
}

// StepBlocked casts two forward rays, one from the ground anchor and one raised
// by upperOffset. It returns true when only the lower ray is obstructed, i.e.
// the obstacle is low enough to step over.
func StepBlocked(q Querier, groundAnchor, upperOffset, forward mgl64.Vec3, distance float64) bool {
	if q == nil || distance <= 0 {
		return false
	}
	_, lower := q.Raycast(groundAnchor, forward, distance, AllLayers)
	if !lower {
		return false
	}
	_, upper := q.Raycast(groundAnchor.Add(upperOffset), forward, distance, AllLayers)
	return !upper
}

// ClimbSurface looks for a climbable surface straight ahead of the climb anchor.
func ClimbSurface(q Querier, anchor, forward mgl64.Vec3, distance float64, mask LayerMask) (Hit, bool) {
	if q == nil || distance <= 0 {
		return Hit{}, false
	}
	return q.Raycast(anchor, forward, distance, mask)
}

// MeleeTargets returns the destructible bodies inside the hit sphere.
func MeleeTargets(q Querier, hitbox Sphere) []BodyID {
	if q == nil || hitbox.Radius <= 0 {
		return nil
	}
	return q.SphereOverlap(hitbox.Center, hitbox.Radius, hitbox.Mask)
}
