package extract

// Outcome classifies what happened when a field was pulled out of a
// listing node. Missing is not an error: callers leave the field empty
// and keep the record.
type Outcome int

const (
	// Found means a candidate selector produced a non-empty value.
	Found Outcome = iota
	// Missing means no candidate selector matched anything usable.
	Missing
	// ParseError means text was present but could not be normalized
	// into the field's value type.
	ParseError
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Missing:
		return "missing"
	case ParseError:
		return "parse_error"
	}
	return "unknown"
}

// Result is the typed outcome of one field extraction.
type Result struct {
	Outcome Outcome
	// Value holds the whitespace-collapsed text when Outcome is Found.
	Value string
	// Raw holds the original text when Outcome is ParseError.
	Raw string
}

// OK reports whether a value was found.
func (r Result) OK() bool { return r.Outcome == Found }
