package classify

import "github.com/sells-group/mls-photo-cli/internal/model"

// Rule is one predicate in the cascade. Match returns the label and true on
// a hit; rules are evaluated in order and the first hit wins.
type Rule struct {
	Name  string
	Match func(det model.DetectionSet, outdoor bool) (model.Label, bool)
}

// majorAppliances are the detections that veto the dining-room rule.
var majorAppliances = []string{phraseFridge, phraseStove, phraseWasher, phraseDryer}

// indoorFurnishings are the detections that veto the bare-exterior rule.
var indoorFurnishings = []string{
	phraseFurniture, phrasePatioSet,
	phraseChair, phraseOfficeChair,
	phraseTable, phraseDiningTable,
	phraseCouch, phraseSofa,
	phraseRailing,
}

// HardRules is cascade layer 1. Order matters: bathroom fixtures outrank a
// visible bed, so a bathroom with a towel-draped bed frame still lands on
// BATHROOM.
var HardRules = []Rule{
	{
		Name: "hard:bathroom",
		Match: func(det model.DetectionSet, _ bool) (model.Label, bool) {
			if det.Has(phraseToilet, phraseBathtub, phraseShower, phraseBathroom) {
				return model.LabelBathroom, true
			}
			return "", false
		},
	},
	{
		Name: "hard:laundry",
		Match: func(det model.DetectionSet, _ bool) (model.Label, bool) {
			if det.HasAll(phraseWasher, phraseDryer) {
				return model.LabelLaundryRoom, true
			}
			if det.Has(phraseWasher, phraseDryer) &&
				det.Has(phraseDetergent, phraseUtilitySink, phraseBasket, phraseDryerVent, phraseLintTrap) {
				return model.LabelLaundryRoom, true
			}
			return "", false
		},
	},
	{
		Name: "hard:bedroom",
		Match: func(det model.DetectionSet, _ bool) (model.Label, bool) {
			if det.Has(phraseBed, phraseMattress, phraseBedroomBed) {
				return model.LabelBedroom, true
			}
			return "", false
		},
	},
	{
		Name: "hard:office",
		Match: func(det model.DetectionSet, _ bool) (model.Label, bool) {
			if det.Has(phraseDesk) &&
				det.Has(phraseChair, phraseOfficeChair, phraseComputer, phraseLaptop) {
				return model.LabelOffice, true
			}
			return "", false
		},
	},
	{
		Name: "hard:deck",
		Match: func(det model.DetectionSet, outdoor bool) (model.Label, bool) {
			if outdoor &&
				det.Has(phrasePatioSet, phraseRailing) &&
				det.Has(phraseTrees, phraseSky, phraseSiding) {
				return model.LabelDeck, true
			}
			return "", false
		},
	},
	{
		Name: "hard:exterior",
		Match: func(det model.DetectionSet, outdoor bool) (model.Label, bool) {
			if outdoor && !det.Has(indoorFurnishings...) {
				return model.LabelExterior, true
			}
			return "", false
		},
	},
}

// HeuristicRules is cascade layer 2: weaker object combinations that only
// fire when no hard rule matched.
var HeuristicRules = []Rule{
	{
		Name: "heuristic:kitchen",
		Match: func(det model.DetectionSet, _ bool) (model.Label, bool) {
			if det.HasAll(phraseSink, phraseFridge) || det.HasAll(phraseStove, phraseCabinets) {
				return model.LabelKitchen, true
			}
			return "", false
		},
	},
	{
		Name: "heuristic:dining",
		Match: func(det model.DetectionSet, _ bool) (model.Label, bool) {
			if det.Has(phraseTable, phraseDiningTable) &&
				!det.Has(phraseBed, phraseMattress, phraseBedroomBed) &&
				!det.Has(majorAppliances...) {
				return model.LabelDiningRoom, true
			}
			return "", false
		},
	},
	{
		Name: "heuristic:living",
		Match: func(det model.DetectionSet, _ bool) (model.Label, bool) {
			if det.Has(phraseCouch, phraseSofa) && det.Has(phraseTV, phraseFireplace) {
				return model.LabelLivingRoom, true
			}
			return "", false
		},
	},
}
