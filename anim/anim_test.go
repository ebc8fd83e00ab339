package anim

import "testing"

func TestEmitterSkipsUnchangedBools(t *testing.T) {
	rec := NewRecorder()
	e := NewEmitter(rec)

	e.Grounded(true)
	e.Grounded(true)
	e.Grounded(false)
	e.Crouch(false)

	if got := rec.BoolWrites(IsGrounded); got != 2 {
		t.Fatalf("expected 2 isGrounded writes, got %d", got)
	}
	if got := rec.BoolWrites(IsCrouch); got != 1 {
		t.Fatalf("expected first isCrouch write to go through, got %d", got)
	}
	if rec.Bools[IsGrounded] {
		t.Fatalf("expected isGrounded=false")
	}
}

func TestEmitterWrites(t *testing.T) {
	rec := NewRecorder()
	e := NewEmitter(rec)

	e.Locomotion(3, 0.5, 1)
	e.Climbing(-1, 2)
	e.Combo(2)
	e.Combo(0)
	e.Trigger(Punch)
	e.Trigger(Punch)

	if rec.Floats[Velocity] != 3 || rec.Floats[VelocityX] != 0.5 || rec.Floats[VelocityZ] != 1 {
		t.Fatalf("unexpected locomotion floats: %v", rec.Floats)
	}
	if rec.Floats[ClimbVelocityX] != -1 || rec.Floats[ClimbVelocityY] != 2 {
		t.Fatalf("unexpected climb floats: %v", rec.Floats)
	}
	series := rec.IntegerSeries(Combo)
	if len(series) != 2 || series[0] != 2 || series[1] != 0 {
		t.Fatalf("unexpected combo series: %v", series)
	}
	if rec.Triggers[Punch] != 2 {
		t.Fatalf("expected 2 punch triggers, got %d", rec.Triggers[Punch])
	}
}

func TestNilEmitter(t *testing.T) {
	var e *Emitter
	e.Grounded(true)
	e.Locomotion(1, 1, 1)
	e.Trigger(Jump)

	NewEmitter(nil).Combo(1)
}
