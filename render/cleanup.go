package render

// releaser collects release actions while a group of resources is being
// acquired. Unwind runs them newest first.
type releaser struct {
	fns []func()
}

func (r *releaser) push(fn func()) {
	r.fns = append(r.fns, fn)
}

func (r *releaser) unwind() {
	for i := len(r.fns) - 1; i >= 0; i-- {
		r.fns[i]()
	}
	r.fns = nil
}

// keep drops the collected actions: ownership has moved to the caller.
func (r *releaser) keep() {
	r.fns = nil
}
