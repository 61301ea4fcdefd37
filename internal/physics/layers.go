package physics

import (
	"fmt"
	"strings"
)

// Layer is a named collision layer. Values are single bits so layers can be
// combined into a Mask.
type Layer uint32

const (
	// Ground is every surface a character may stand on.
	Ground Layer = 1 << (iota + 1)
	// Character is a character's body and its probes.
	Character
	// Prop is loose scenery that neither supports nor blocks probes.
	Prop
)

var layerNames = map[Layer]string{
	Ground:    "ground",
	Character: "character",
	Prop:      "prop",
}

func (l Layer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return fmt.Sprintf("layer(%#b)", uint32(l))
}

// Mask is a set of layers.
type Mask uint32

// Of builds a mask from layers.
func Of(layers ...Layer) Mask {
	var m Mask
	for _, l := range layers {
		m |= Mask(l)
	}
	return m
}

// All matches every layer.
const All Mask = ^Mask(0)

// Has reports whether l is in m.
func (m Mask) Has(l Layer) bool {
	return m&Mask(l) != 0
}

func (m Mask) String() string {
	var parts []string
	for _, l := range []Layer{Ground, Character, Prop} {
		if m.Has(l) {
			parts = append(parts, l.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// CollisionGroups pairs the layers an object belongs to with the layers it
// is willing to interact with. Two groups interact only when each one's
// filter accepts the other's memberships.
type CollisionGroups struct {
	Memberships Mask
	Filter      Mask
}

// Interacts reports whether a and b see each other.
func Interacts(a, b CollisionGroups) bool {
	return a.Memberships&b.Filter != 0 && b.Memberships&a.Filter != 0
}

// compatibility is the table that decides default filters: which layers a
// member of each layer interacts with.
var compatibility = map[Layer]Mask{
	Ground:    Of(Character, Prop),
	Character: Of(Ground),
	Prop:      Of(Ground, Prop),
}

// GroupsFor returns the default groups for an object on layer.
func GroupsFor(layer Layer) CollisionGroups {
	return CollisionGroups{Memberships: Of(layer), Filter: compatibility[layer]}
}

// Compatible reports whether the table lets members of a and b interact.
func Compatible(a, b Layer) bool {
	return Interacts(GroupsFor(a), GroupsFor(b))
}

// GroundProbe is the filter used by character ground probes: it acts as a
// character and only accepts ground, so a character never probes itself.
var GroundProbe = CollisionGroups{Memberships: Of(Character), Filter: Of(Ground)}
