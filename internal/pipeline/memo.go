package pipeline

// Memo caches the last Result. Callers bump the revision whenever any input
// changes; Get recomputes only when the revision moved.
type Memo struct {
	rev    uint64
	valid  bool
	result Result
	runs   int
}

func (m *Memo) Get(rev uint64, in func() Input) Result {
	if m.valid && m.rev == rev {
		return m.result
	}
	m.result = Run(in())
	m.rev = rev
	m.valid = true
	m.runs++
	return m.result
}

// Invalidate forces the next Get to recompute.
func (m *Memo) Invalidate() { m.valid = false }

// Runs reports how many times the pipeline actually executed.
func (m *Memo) Runs() int { return m.runs }
