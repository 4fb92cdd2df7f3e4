package options

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownKeyMatch = errors.New("unknown key match mode")

// KeyMatchEnum selects how raw input keys are matched against field names.
type KeyMatchEnum int

const (
	// KeyMatchLower compares lowercased keys: "PORT" matches field "Port".
	KeyMatchLower KeyMatchEnum = iota
	// KeyMatchLoose also ignores separators and camel case boundaries:
	// "DATABASE_URL" matches field "DatabaseURL".
	KeyMatchLoose
)

// String returns the mode name as accepted by ParseKeyMatch.
func (k KeyMatchEnum) String() string {
	switch k {
	case KeyMatchLower:
		return "lower"
	case KeyMatchLoose:
		return "loose"
	default:
		return fmt.Sprintf("KeyMatchEnum(%d)", int(k))
	}
}

// ParseKeyMatch parses "lower" or "loose"; the empty string means KeyMatchLower.
func ParseKeyMatch(s string) (KeyMatchEnum, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lower":
		return KeyMatchLower, nil
	case "loose":
		return KeyMatchLoose, nil
	default:
		return KeyMatchLower, fmt.Errorf("%w: %q", ErrUnknownKeyMatch, s)
	}
}

const (
	DefaultItemSeparator = ","
	DefaultPairSeparator = "="
)

// Options controls how raw strings are cast and how keys are matched.
type Options struct {
	// Categories enables scalar conversions; kinds outside of them are unsupported.
	Categories CategoryEnum
	// ItemSeparator splits sequence, set and mapping values into items.
	ItemSeparator string
	// PairSeparator splits a mapping item into its key and value.
	PairSeparator string
	// KeyMatch selects the lookup key normalization.
	KeyMatch KeyMatchEnum
}

// Default returns options with every category enabled and the "," / "=" separators.
func Default() Options {
	return Options{
		Categories:    CategoryAll,
		ItemSeparator: DefaultItemSeparator,
		PairSeparator: DefaultPairSeparator,
		KeyMatch:      KeyMatchLower,
	}
}

// Normalized fills zero separators with their defaults.
func (o Options) Normalized() Options {
	if o.ItemSeparator == "" {
		o.ItemSeparator = DefaultItemSeparator
	}

	if o.PairSeparator == "" {
		o.PairSeparator = DefaultPairSeparator
	}

	return o
}
