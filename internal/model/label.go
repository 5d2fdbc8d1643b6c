package model

import "strings"

// Label is a canonical room/scene classification outcome. Labels are always
// upper-case; anything outside the canonical set is coerced to LabelOther.
type Label string

const (
	LabelKitchen     Label = "KITCHEN"
	LabelLivingRoom  Label = "LIVING ROOM"
	LabelBedroom     Label = "BEDROOM"
	LabelOffice      Label = "OFFICE"
	LabelDiningRoom  Label = "DINING ROOM"
	LabelLaundryRoom Label = "LAUNDRY ROOM"
	LabelDeck        Label = "DECK"
	LabelExterior    Label = "EXTERIOR"
	LabelBathroom    Label = "BATHROOM"
	LabelOther       Label = "OTHER"
)

// CanonicalLabels is the full set of allowed classification outcomes.
var CanonicalLabels = []Label{
	LabelKitchen,
	LabelLivingRoom,
	LabelBedroom,
	LabelOffice,
	LabelDiningRoom,
	LabelLaundryRoom,
	LabelDeck,
	LabelExterior,
	LabelBathroom,
	LabelOther,
}

var canonicalSet = func() map[Label]struct{} {
	m := make(map[Label]struct{}, len(CanonicalLabels))
	for _, l := range CanonicalLabels {
		m[l] = struct{}{}
	}
	return m
}()

// Canonicalize upper-cases and trims a raw label and coerces anything
// outside the canonical set to LabelOther.
func Canonicalize(raw string) Label {
	l := Label(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := canonicalSet[l]; ok {
		return l
	}
	return LabelOther
}

// IsCanonical reports whether l is a member of the canonical set.
func IsCanonical(l Label) bool {
	_, ok := canonicalSet[l]
	return ok
}
