package carousel

// State is the mutable core of the controller
// Transitions return the next value; nothing else writes the fields
type State struct {
	// Target is the position the settle tween is heading to
	Target float64
	// Playhead is the currently rendered position
	Playhead float64
	// Iteration counts full cycles crossed through boundary wraps
	Iteration int
	Dragging  bool
	DragStart float64
}

// bind maps scroll progress into the current iteration
func (s State) bind(progress, cycle float64) State {
	if s.Dragging {
		return s
	}
	s.Target = (float64(s.Iteration) + progress) * cycle
	return s
}

// land pins the target to an exact position, bypassing scroll progress
func (s State) land(position float64) State {
	s.Target = position
	return s
}

func (s State) wrap(delta int) State {
	s.Iteration += delta
	return s
}

func (s State) beginDrag() State {
	s.Dragging = true
	s.DragStart = s.Target
	return s
}

// drag positions relative to the press; delta is the pointer travel,
// positive to the right, which pulls the strip backward
func (s State) drag(delta, scale float64) State {
	if !s.Dragging {
		return s
	}
	s.Target = s.DragStart - delta*scale
	return s
}

func (s State) endDrag() State {
	s.Dragging = false
	return s
}

func (s State) settle(playhead float64) State {
	s.Playhead = playhead
	return s
}
