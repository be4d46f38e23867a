package fields

// Source records where a field value came from.
type Source int

const (
	// SourceAuto marks a value produced by pattern extraction.
	SourceAuto Source = iota

	// SourceUserEdited marks a value set explicitly by the caller.
	SourceUserEdited
)

// String implements fmt.Stringer.
func (s Source) String() string {
	switch s {
	case SourceAuto:
		return "auto"
	case SourceUserEdited:
		return "user-edited"
	default:
		return "unknown"
	}
}

// Field is one scalar invoice value together with its provenance. The zero
// value is an empty auto field.
type Field struct {
	Value  string
	Source Source
}

// Set records a caller-supplied value. The field is marked user-edited and
// will no longer accept automatic values.
func (f *Field) Set(value string) {
	f.Value = value
	f.Source = SourceUserEdited
}

// AutoFill records an extracted value unless the field was user-edited. It
// reports whether the value was accepted.
func (f *Field) AutoFill(value string) bool {
	if f.Source == SourceUserEdited {
		return false
	}
	f.Value = value
	f.Source = SourceAuto
	return true
}

// FieldSet holds the scalar fields recovered from one document.
type FieldSet struct {
	InvoiceNumber Field
	Item          Field
	Price         Field
}
