package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveTowards moves current toward target by at most maxDelta without overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Repeat wraps t into [0, length).
func Repeat(t, length float64) float64 {
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest signed difference between two angles in degrees.
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// NormalizeAngle maps degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = Repeat(deg, 360)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// SmoothDamp is a critically damped spring toward target. velocity is carried
// between calls by the caller.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTo := target
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// never overshoot
	if (originalTo-current > 0) == (out > originalTo) {
		out = originalTo
		*velocity = (out - originalTo) / dt
	}
	return out
}

// SmoothDampAngle is SmoothDamp taking the shortest way around the circle.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, dt)
}
