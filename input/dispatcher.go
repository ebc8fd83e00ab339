package input

import "go.uber.org/zap"

// Dispatcher is a Source fed with frames. Frames queued between two Updates
// are merged and delivered once; handlers are called in a fixed order: move,
// sprint, jump, crouch, change POV, climb, glide, cancel climb, cancel glide,
// punch and finally main menu.
type Dispatcher struct {
	queue   Queue
	nextID  int
	players []subscription[Handler]
	systems []subscription[SystemHandler]
	log     *zap.Logger
}

type subscription[T any] struct {
	id int
	h  T
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log.With(zap.String("component", "input"))}
}

func (d *Dispatcher) Subscribe(h Handler) func() {
	if h == nil {
		return func() {}
	}
	d.nextID++
	id := d.nextID
	d.players = append(d.players, subscription[Handler]{id: id, h: h})
	return func() { d.players = remove(d.players, id) }
}

func (d *Dispatcher) SubscribeSystem(h SystemHandler) func() {
	if h == nil {
		return func() {}
	}
	d.nextID++
	id := d.nextID
	d.systems = append(d.systems, subscription[SystemHandler]{id: id, h: h})
	return func() { d.systems = remove(d.systems, id) }
}

// Subscribers returns the number of registered handlers of both kinds.
func (d *Dispatcher) Subscribers() int {
	return len(d.players) + len(d.systems)
}

// Push queues a frame for the next Update.
func (d *Dispatcher) Push(f Frame) {
	d.queue.Push(f)
}

// Update merges the queued frames and delivers the result, so handlers see
// one Move and one Sprint per step however many frames were pushed. dt is
// unused; it lets the dispatcher run as a frame system.
func (d *Dispatcher) Update(dt float64) {
	frames := d.queue.Drain()
	if len(frames) == 0 {
		return
	}
	f := frames[0]
	for _, next := range frames[1:] {
		f = f.Merge(next)
	}
	d.Dispatch(f)
}

// Dispatch delivers one frame immediately.
func (d *Dispatcher) Dispatch(f Frame) {
	players := append([]subscription[Handler](nil), d.players...)
	systems := append([]subscription[SystemHandler](nil), d.systems...)

	for _, s := range players {
		s.h.Move(f.Move)
		s.h.Sprint(f.Sprint)
		if f.Jump {
			s.h.Jump()
		}
		if f.Crouch {
			s.h.Crouch()
		}
	}
	if f.ChangePOV {
		d.log.Debug("change perspective")
		for _, s := range systems {
			s.h.ChangePOV()
		}
	}
	for _, s := range players {
		if f.Climb {
			s.h.Climb()
		}
		if f.Glide {
			s.h.Glide()
		}
		if f.CancelClimb {
			s.h.CancelClimb()
		}
		if f.CancelGlide {
			s.h.CancelGlide()
		}
		if f.Punch {
			s.h.Punch()
		}
	}
	if f.MainMenu {
		d.log.Debug("main menu")
		for _, s := range systems {
			s.h.MainMenu()
		}
	}
}

func remove[T any](subs []subscription[T], id int) []subscription[T] {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
