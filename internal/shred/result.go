package shred

// Result reports the outcome of shredding a single path. Errors are carried
// by value rather than propagated; callers aggregate results to decide the
// overall exit status.
type Result struct {
	// Path is the path as it was passed to the shredder
	Path string

	// Err is the first error encountered, nil on success
	Err error
}

// Success reports whether the path was fully shredded and removed
func (r Result) Success() bool {
	return r.Err == nil
}

// Reason returns a human-readable failure reason, empty on success
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
