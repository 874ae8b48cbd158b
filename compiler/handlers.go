package compiler

// Transform rewrites the resolved body of a nested invocation.
type Transform interface {
	Apply(data []byte, span Span) ([]byte, Span)
}

// TransformFunc adapts an ordinary function to a Transform.
type TransformFunc func(data []byte, span Span) ([]byte, Span)

// Apply calls f(data, span).
func (f TransformFunc) Apply(data []byte, span Span) ([]byte, Span) {
	return f(data, span)
}

// Handler binds a nested invocation name to a Transform.
type Handler struct {
	Name      string
	Transform Transform
}

// Registry is the ordered, read-only set of nested invocation handlers an
// entry point recognizes.
type Registry []Handler

// Lookup returns the transform registered under name. Names match exactly
// and case-sensitively; when a name is registered twice the first entry
// wins.
func (r Registry) Lookup(name string) (Transform, bool) {
	for _, h := range r {
		if h.Name == name {
			return h.Transform, true
		}
	}
	return nil, false
}

// Names lists the registered names in order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, h := range r {
		names[i] = h.Name
	}
	return names
}
