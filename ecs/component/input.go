package component

// Input stores the actions whose key went down this frame. Held keys do not
// repeat.
type Input struct {
	Left        bool
	Right       bool
	Up          bool
	Down        bool
	RotateLeft  bool
	RotateRight bool
	Quit        bool
}

// Any reports whether a movement or rotation action fired.
func (in Input) Any() bool {
	return in.Left || in.Right || in.Up || in.Down || in.RotateLeft || in.RotateRight
}

var InputComponent = NewComponent[Input]()
