package node

//go:generate go tool stringer -type=DispatcherEnum -output=kind_string.go

// DispatcherEnum is the root tag of a type descriptor.
type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherScalar
	DispatcherSlice
	DispatcherSet
	DispatcherMap

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)

