package feed

// Outcome reports what happened to one cache key while handling an event.
// Callers can await Handle and inspect the list; there is no retry inside
// the router regardless of what the outcomes say.
type Outcome struct {
	View    ViewKind
	OwnerID string
	// Applied is true when the cached entry existed and was written back.
	// A cache miss leaves Applied false with a nil Err.
	Applied bool
	Err     error
}

// Key renders the cache key this outcome refers to, without the namespace
// prefix. Empty View marks a failure before any key was touched (e.g. the
// fan-out query itself failed).
func (o Outcome) Key() string {
	if o.View == "" {
		return ""
	}
	return string(o.View) + "_" + o.OwnerID
}
