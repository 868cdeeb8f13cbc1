package device

import (
	"fmt"
	"strings"
)

// Type identifies a dive computer family.
type Type int

const (
	TypeNull Type = iota
	TypeSuuntoEon
	TypeSuuntoVyper
	TypeSuuntoVyper2
	TypeSuuntoD9
	TypeReefnetSensusPro
	TypeReefnetSensusUltra
	TypeUwatecAladin
	TypeUwatecMemomouse
	TypeUwatecSmart
	TypeOceanicAtom2
	TypeOceanicVeo250
	TypeShearwaterPredator
)

var typeNames = map[Type]string{
	TypeNull:               "null",
	TypeSuuntoEon:          "suunto-eon",
	TypeSuuntoVyper:        "suunto-vyper",
	TypeSuuntoVyper2:       "suunto-vyper2",
	TypeSuuntoD9:           "suunto-d9",
	TypeReefnetSensusPro:   "reefnet-sensuspro",
	TypeReefnetSensusUltra: "reefnet-sensusultra",
	TypeUwatecAladin:       "uwatec-aladin",
	TypeUwatecMemomouse:    "uwatec-memomouse",
	TypeUwatecSmart:        "uwatec-smart",
	TypeOceanicAtom2:       "oceanic-atom2",
	TypeOceanicVeo250:      "oceanic-veo250",
	TypeShearwaterPredator: "shearwater-predator",
}

// Short aliases accepted by ParseType.
var typeAliases = map[string]Type{
	"eon":         TypeSuuntoEon,
	"vyper":       TypeSuuntoVyper,
	"vyper2":      TypeSuuntoVyper2,
	"d9":          TypeSuuntoD9,
	"sensuspro":   TypeReefnetSensusPro,
	"sensusultra": TypeReefnetSensusUltra,
	"aladin":      TypeUwatecAladin,
	"memomouse":   TypeUwatecMemomouse,
	"smart":       TypeUwatecSmart,
	"atom2":       TypeOceanicAtom2,
	"veo250":      TypeOceanicVeo250,
	"predator":    TypeShearwaterPredator,
}

// String returns the family name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known family other than TypeNull.
func (t Type) Valid() bool {
	return t > TypeNull && t <= TypeShearwaterPredator
}

// ParseType returns the family for a full name ("shearwater-predator") or a
// short alias ("predator"). Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	for t, name := range typeNames {
		if name == key {
			return t, nil
		}
	}
	return TypeNull, fmt.Errorf("unknown device type %q", s)
}

// Types returns every known family other than TypeNull, in declaration order.
func Types() []Type {
	out := make([]Type, 0, int(TypeShearwaterPredator))
	for t := TypeSuuntoEon; t <= TypeShearwaterPredator; t++ {
		out = append(out, t)
	}
	return out
}
