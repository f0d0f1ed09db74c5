package venn

//go:generate go run ../tools/gen-enum -type Mode -generate-flag -generate-text

// Mode selects what a section is reported as.
type Mode int

const (
	// ModeSet reports the elements of the section.
	ModeSet Mode = iota + 1 // name=set
	// ModeCount reports the number of elements in the section.
	ModeCount // name=count
	// ModeFraction reports the number of elements in the section divided by
	// the number of distinct elements across all inputs.
	ModeFraction // name=fraction
)

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	_, ok := _Mode_type_to_string[m]
	return ok
}
