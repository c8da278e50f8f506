package sand

import (
	"image/color"
	"strings"
)

// Kind classifies how a material moves.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindSolid
	KindMovableSolid
	KindLiquid
	KindGas
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSolid:
		return "solid"
	case KindMovableSolid:
		return "movable solid"
	case KindLiquid:
		return "liquid"
	case KindGas:
		return "gas"
	default:
		return "unknown"
	}
}

// Material is the small integer tag indexing the material table.
type Material uint8

const (
	Empty Material = iota
	Sand
	Dirt
	Water
	Oil
	Rock
	Smoke
	Wood

	materialCount
)

// Properties holds the static physical description of a material.
type Properties struct {
	Name string
	Kind Kind

	// Density orders displacement: a cell sinks through anything lighter.
	Density uint64
	// Dispersion is the horizontal reach of diagonal and sideways moves.
	Dispersion uint8
	HP         uint64
	// Decay is subtracted from hp every frame the cell is updated.
	Decay uint64

	// InertialResistance is the probability a settled neighbour stays put
	// when a falling cell brushes past it.
	InertialResistance float32
	Flammability       float32

	ExtinguishesFire bool
	// ExtinguishDamage multiplies the extinguisher's hp when it puts out a fire.
	ExtinguishDamage float32
	ProtectsFromFire bool

	Color color.RGBA
}

var materialTable = [materialCount]Properties{
	Empty: {
		Name:  "Empty",
		Kind:  KindEmpty,
		Color: color.RGBA{A: 255},
	},
	Sand: {
		Name:               "Sand",
		Kind:               KindMovableSolid,
		Density:            300,
		Dispersion:         1,
		HP:                 10,
		InertialResistance: 0.1,
		ExtinguishesFire:   true,
		ExtinguishDamage:   1,
		Color:              color.RGBA{R: 228, G: 196, B: 110, A: 255},
	},
	Dirt: {
		Name:               "Dirt",
		Kind:               KindMovableSolid,
		Density:            500,
		Dispersion:         1,
		HP:                 20,
		InertialResistance: 0.9,
		Color:              color.RGBA{R: 105, G: 64, B: 51, A: 255},
	},
	Water: {
		Name:             "Water",
		Kind:             KindLiquid,
		Density:          100,
		Dispersion:       5,
		HP:               20,
		ExtinguishesFire: true,
		ExtinguishDamage: 0.75,
		ProtectsFromFire: true,
		Color:            color.RGBA{R: 40, G: 90, B: 230, A: 255},
	},
	Oil: {
		Name:         "Oil",
		Kind:         KindLiquid,
		Density:      80,
		Dispersion:   3,
		HP:           30,
		Flammability: 0.6,
		Color:        color.RGBA{R: 60, G: 45, B: 30, A: 255},
	},
	Rock: {
		Name:    "Rock",
		Kind:    KindSolid,
		Density: 1000,
		HP:      500,
		Color:   color.RGBA{R: 110, G: 110, B: 118, A: 255},
	},
	Smoke: {
		Name:       "Smoke",
		Kind:       KindGas,
		Density:    1,
		Dispersion: 1,
		HP:         90,
		Decay:      1,
		Color:      color.RGBA{R: 120, G: 120, B: 128, A: 255},
	},
	Wood: {
		Name:         "Wood",
		Kind:         KindSolid,
		Density:      700,
		HP:           60,
		Flammability: 0.15,
		Color:        color.RGBA{R: 120, G: 78, B: 38, A: 255},
	},
}

var allMaterials = func() []Material {
	out := make([]Material, materialCount)
	for i := range out {
		out[i] = Material(i)
	}
	return out
}()

// Materials lists every material in enumeration order. The slice is shared;
// callers must not modify it.
func Materials() []Material { return allMaterials }

// Valid reports whether m indexes the material table.
func (m Material) Valid() bool { return m < materialCount }

// Props returns the table entry for m. Unknown tags resolve to Empty.
func (m Material) Props() *Properties {
	if !m.Valid() {
		return &materialTable[Empty]
	}
	return &materialTable[m]
}

func (m Material) String() string { return m.Props().Name }

// Kind returns the movement class of m.
func (m Material) Kind() Kind { return m.Props().Kind }

// Density returns the displacement weight of m.
func (m Material) Density() uint64 { return m.Props().Density }

// Flammable reports whether cells of m can be set on fire.
func (m Material) Flammable() bool { return m.Props().Flammability > 0 }

// MaterialByName resolves a material name, ignoring case.
func MaterialByName(name string) (Material, bool) {
	for _, m := range allMaterials {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return Empty, false
}
