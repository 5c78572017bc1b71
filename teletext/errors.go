package teletext

import (
	"fmt"

	"teletext/dom"
)

// ParseStructureError reports that the document does not have the shape
// of a teletext page.
type ParseStructureError struct {
	Hop    string // which step of the walk failed, e.g. "body"
	Reason string
}

func (e *ParseStructureError) Error() string {
	return fmt.Sprintf("unexpected page structure at %s: %s", e.Hop, e.Reason)
}

// InvalidChildError reports a cell whose first child is neither text nor an
// element.
type InvalidChildError struct {
	Kind dom.NodeKind
}

func (e *InvalidChildError) Error() string {
	return fmt.Sprintf("cell has invalid %s child", e.Kind)
}

// MalformedColorError reports a color class with a bad hex payload. Only
// surfaced in strict mode.
type MalformedColorError struct {
	Class string
	Err   error
}

func (e *MalformedColorError) Error() string {
	return fmt.Sprintf("malformed color class %q", e.Class)
}

func (e *MalformedColorError) Unwrap() error { return e.Err }

// CellError locates a cell failure within the page grid.
type CellError struct {
	Row, Col int
	Err      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, cell %d: %v", e.Row, e.Col, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }
