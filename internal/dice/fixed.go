package dice

// Fixed replays a caller-supplied sequence of integers in order. Each D6 or
// D8 roll consumes exactly one value from the sequence; each 2D6 roll
// consumes two consecutive values and returns their sum — so a scripted
// sequence such as [6, 6, 5, 4, 5, 5, 3, 3] reads as two D6 block dice
// followed by three 2D6 rolls (armour, injury, apothecary), matching how a
// test author would transcribe a rules trace by hand.
//
// Fixed fails loudly when exhausted: it panics with *ExhaustedError rather
// than returning a zero value, because a silent zero would look like a
// legal (if unlucky) roll and corrupt any determinism check built on top of
// it.
type Fixed struct {
	values []int
	cursor int
}

// NewFixed wraps a sequence of pre-scripted die values. The slice is not
// copied; callers that want isolation between runs must clone it themselves
// before passing it to NewFixed, per the engine's resource policy (§5).
func NewFixed(values []int) *Fixed {
	return &Fixed{values: values}
}

// Remaining reports how many scripted values are left unconsumed.
func (f *Fixed) Remaining() int {
	return len(f.values) - f.cursor
}

func (f *Fixed) next(kind string) int {
	if f.cursor >= len(f.values) {
		panic(&ExhaustedError{Kind: kind, Requested: f.cursor, Have: len(f.values)})
	}
	v := f.values[f.cursor]
	f.cursor++
	return v
}

func (f *Fixed) RollD6() int {
	return f.next("d6")
}

func (f *Fixed) RollD8() int {
	return f.next("d8")
}

func (f *Fixed) Roll2D6() int {
	a := f.next("2d6.a")
	b := f.next("2d6.b")
	return a + b
}
