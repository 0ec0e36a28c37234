package seq

import "fmt"

// Finiteness describes what is statically known about a sequence's length.
// The zero value is Unknown.
type Finiteness uint8

const (
	// Unknown means finiteness cannot be proven, e.g. an opaque source.
	// Terminal operations treat it like Infinite.
	Unknown Finiteness = iota
	// Finite sequences are guaranteed to exhaust.
	Finite
	// Infinite sequences never exhaust.
	Infinite
)

func (f Finiteness) String() string {
	switch f {
	case Finite:
		return "finite"
	case Infinite:
		return "infinite"
	default:
		return "unknown"
	}
}

// MarshalText renders the lowercase name, so the tag reads naturally in JSON.
func (f Finiteness) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses the lowercase name.
func (f *Finiteness) UnmarshalText(text []byte) error {
	switch string(text) {
	case "finite":
		*f = Finite
	case "infinite":
		*f = Infinite
	case "unknown", "":
		*f = Unknown
	default:
		return fmt.Errorf("seq: unknown finiteness %q", text)
	}
	return nil
}

// Collectible reports whether terminal operations may drain a sequence with
// this tag. Only Finite is collectible.
func (f Finiteness) Collectible() bool { return f == Finite }

// Kind identifies a combinator for finiteness propagation.
type Kind uint8

const (
	KindMap Kind = iota
	KindFilter
	KindFilterMap
	KindEnumerate
	KindSkip
	KindObserve
	KindTake
	KindTakeWhile
	KindZip
	KindChain
)

var kindNames = [...]string{
	KindMap:       "map",
	KindFilter:    "filter",
	KindFilterMap: "filter_map",
	KindEnumerate: "enumerate",
	KindSkip:      "skip",
	KindObserve:   "observe",
	KindTake:      "take",
	KindTakeWhile: "take_while",
	KindZip:       "zip",
	KindChain:     "chain",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Propagate computes the finiteness of a combinator's output from the
// finiteness of its operands. It is pure and is the only place the
// composition rules live.
//
//	map, filter, filter_map, enumerate, skip, observe: same as the operand
//	take, take_while: always Finite
//	zip: Finite if any operand is Finite, Infinite if all are, else Unknown
//	chain: Infinite if any operand is, Finite if all are, else Unknown
func Propagate(kind Kind, operands ...Finiteness) Finiteness {
	switch kind {
	case KindTake, KindTakeWhile:
		return Finite
	case KindZip:
		return zipFiniteness(operands)
	case KindChain:
		return chainFiniteness(operands)
	default:
		if len(operands) == 0 {
			return Unknown
		}
		return operands[0]
	}
}

func zipFiniteness(operands []Finiteness) Finiteness {
	if len(operands) == 0 {
		return Unknown
	}
	allInfinite := true
	for _, f := range operands {
		if f == Finite {
			return Finite
		}
		if f != Infinite {
			allInfinite = false
		}
	}
	if allInfinite {
		return Infinite
	}
	return Unknown
}

func chainFiniteness(operands []Finiteness) Finiteness {
	out := Finite
	for _, f := range operands {
		switch f {
		case Infinite:
			return Infinite
		case Unknown:
			out = Unknown
		}
	}
	return out
}
