package converter

import "fmt"

// ParseError reports a field that could not be coerced to a number
type ParseError struct {
	Row    int
	Column int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %d: cannot parse %q as number: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseField runs parse over record field column, wrapping failures in a ParseError
func ParseField(parse Parser, row int, column int, value string) (float64, error) {
	f, err := parse(value)
	if err != nil {
		return 0, &ParseError{Row: row, Column: column, Value: value, Err: err}
	}
	return f, nil
}
