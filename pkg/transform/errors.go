// pkg/transform/errors.go
package transform

import "fmt"

// SchemaError reports a column that is entirely absent from the input
// dataset. Per-record missing values are not schema errors; those
// records are dropped during cleaning instead.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset is missing expected column %q", e.Column)
}

// InvalidArgumentError reports a configuration value outside its
// allowed range.
type InvalidArgumentError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Name, e.Value, e.Reason)
}
