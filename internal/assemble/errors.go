package assemble

import "fmt"

// PropertyLoadError is the only error that crosses the assembler boundary:
// the property's input directory was missing or unreadable. Everything else
// degrades to fallback values inside the pipeline.
type PropertyLoadError struct {
	PropertyID string
	Err        error
}

func (e *PropertyLoadError) Error() string {
	return fmt.Sprintf("failed to load property %s: %v", e.PropertyID, e.Err)
}

func (e *PropertyLoadError) Unwrap() error {
	return e.Err
}
