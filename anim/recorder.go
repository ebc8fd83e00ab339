package anim

import "fmt"

// Write is one parameter write captured by a Recorder.
type Write struct {
	Kind  string
	Name  string
	Value any
}

func (w Write) String() string {
	if w.Kind == "trigger" {
		return fmt.Sprintf("%s %s", w.Kind, w.Name)
	}
	return fmt.Sprintf("%s %s=%v", w.Kind, w.Name, w.Value)
}

// Recorder is a Sink that keeps the latest value of every parameter and the
// full write history. The sandbox HUD and tests read from it.
type Recorder struct {
	Floats   map[string]float64
	Bools    map[string]bool
	Integers map[string]int
	Triggers map[string]int
	History  []Write
}

func NewRecorder() *Recorder {
	return &Recorder{
		Floats:   make(map[string]float64),
		Bools:    make(map[string]bool),
		Integers: make(map[string]int),
		Triggers: make(map[string]int),
	}
}

func (r *Recorder) SetFloat(name string, v float64) {
	r.Floats[name] = v
	r.History = append(r.History, Write{Kind: "float", Name: name, Value: v})
}

func (r *Recorder) SetBool(name string, v bool) {
	r.Bools[name] = v
	r.History = append(r.History, Write{Kind: "bool", Name: name, Value: v})
}

func (r *Recorder) SetInteger(name string, v int) {
	r.Integers[name] = v
	r.History = append(r.History, Write{Kind: "int", Name: name, Value: v})
}

func (r *Recorder) SetTrigger(name string) {
	r.Triggers[name]++
	r.History = append(r.History, Write{Kind: "trigger", Name: name})
}

// IntegerSeries returns every value written to an int parameter, in order.
func (r *Recorder) IntegerSeries(name string) []int {
	var out []int
	for _, w := range r.History {
		if w.Kind == "int" && w.Name == name {
			out = append(out, w.Value.(int))
		}
	}
	return out
}

// BoolWrites counts writes to a bool parameter.
func (r *Recorder) BoolWrites(name string) int {
	n := 0
	for _, w := range r.History {
		if w.Kind == "bool" && w.Name == name {
			n++
		}
	}
	return n
}

// Reset clears the history but keeps the latest values.
func (r *Recorder) Reset() {
	r.History = r.History[:0]
}
