package render

import "fmt"

// MissingTargetError reports a placeholder that does not exist on the canvas.
type MissingTargetError struct {
	Placeholder string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("placeholder %q not found", e.Placeholder)
}

// DataShapeError reports datasets that do not line up with the label sequence.
// Dataset is empty when the spec carries no dataset at all.
type DataShapeError struct {
	Placeholder string
	Dataset     string
	Want        int
	Got         int
}

func (e *DataShapeError) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("chart %q has no datasets", e.Placeholder)
	}
	return fmt.Sprintf("chart %q: dataset %q has %d values, want %d", e.Placeholder, e.Dataset, e.Got, e.Want)
}
