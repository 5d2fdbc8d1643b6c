package classify

// Detection vocabulary phrases. The scorer ranks an image against all of
// DetectionVocabulary at once; rules then test for the presence of specific
// phrases in the resulting detection set.
const (
	phraseToilet      = "toilet"
	phraseBathtub     = "bathtub"
	phraseShower      = "shower"
	phraseBathroom    = "a bathroom"
	phraseBed         = "bed"
	phraseMattress    = "mattress"
	phraseBedroomBed  = "a bed in a bedroom"
	phraseWasher      = "washing machine"
	phraseDryer       = "clothes dryer"
	phraseDetergent   = "detergent bottle"
	phraseUtilitySink = "utility sink"
	phraseBasket      = "laundry basket"
	phraseDryerVent   = "dryer vent"
	phraseLintTrap    = "lint trap"
	phraseDesk        = "a desk"
	phraseOfficeChair = "an office chair"
	phraseComputer    = "a computer"
	phraseLaptop      = "a laptop"
	phraseSink        = "sink"
	phraseFridge      = "refrigerator"
	phraseStove       = "stove"
	phraseCabinets    = "kitchen cabinets"
	phraseDiningTable = "dining table"
	phraseTable       = "a table"
	phraseCouch       = "a couch"
	phraseSofa        = "a sofa"
	phraseTV          = "television"
	phraseFireplace   = "fireplace"
	phraseChair       = "a chair"
	phraseFurniture   = "furniture"
	phrasePatioSet    = "outdoor furniture"
	phraseRailing     = "deck railing"
	phraseTrees       = "trees"
	phraseSky         = "sky"
	phraseSiding      = "house siding"
	phraseOutdoor     = "outdoor"
	phraseOutside     = "outside"
	phraseGrass       = "grass"
	phraseDeck        = "a wooden deck"
	phrasePorch       = "front porch"
)

// DetectionVocabulary is the fixed candidate phrase list for the object
// detection pass. Order is stable; scorer adapters return one probability
// per entry in this order.
var DetectionVocabulary = []string{
	phraseToilet,
	phraseBathtub,
	phraseShower,
	phraseBathroom,
	phraseBed,
	phraseMattress,
	phraseBedroomBed,
	phraseWasher,
	phraseDryer,
	phraseDetergent,
	phraseUtilitySink,
	phraseBasket,
	phraseDryerVent,
	phraseLintTrap,
	phraseDesk,
	phraseOfficeChair,
	phraseComputer,
	phraseLaptop,
	phraseSink,
	phraseFridge,
	phraseStove,
	phraseCabinets,
	phraseDiningTable,
	phraseTable,
	phraseCouch,
	phraseSofa,
	phraseTV,
	phraseFireplace,
	phraseChair,
	phraseFurniture,
	phrasePatioSet,
	phraseRailing,
	phraseTrees,
	phraseSky,
	phraseSiding,
	phraseOutdoor,
	phraseOutside,
	phraseGrass,
	phraseDeck,
	phrasePorch,
}

// SceneVocabulary is the 9-label room vocabulary for the zero-shot fallback
// layer. Entries upper-case directly to their canonical labels.
var SceneVocabulary = []string{
	"kitchen",
	"living room",
	"bedroom",
	"office",
	"dining room",
	"laundry room",
	"deck",
	"exterior",
	"bathroom",
}
