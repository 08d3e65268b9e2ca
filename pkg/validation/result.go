// Package validation holds the per-step validators for the rental application
// wizard. Validators are pure functions over the application document: the
// same input always yields the same Result, and user-input problems are
// reported as values, never as Go errors.
package validation

// FieldError pairs a dotted field path with a human-readable message.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the outcome of validating one step (or the whole document).
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ErrorsFor returns the messages recorded against a path.
func (r Result) ErrorsFor(path string) []string {
	var out []string
	for _, fe := range r.Errors {
		if fe.Path == path {
			out = append(out, fe.Message)
		}
	}
	return out
}

type collector struct {
	errors []FieldError
}

func (c *collector) add(path, message string) {
	c.errors = append(c.errors, FieldError{Path: path, Message: message})
}

func (c *collector) result() Result {
	if len(c.errors) == 0 {
		return Result{Valid: true}
	}
	return Result{Valid: false, Errors: c.errors}
}
