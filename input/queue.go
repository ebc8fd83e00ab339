package input

// Queue is a simple FIFO of frames.
type Queue struct {
	items []Frame
}

// Push adds a frame.
func (q *Queue) Push(f Frame) {
	if q == nil {
		return
	}
	q.items = append(q.items, f)
}

// Drain returns all frames and clears the queue.
func (q *Queue) Drain() []Frame {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued frames.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
