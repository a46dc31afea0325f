// Package catalog holds the fixed outcome table of the animalitos game.
// The 38 entries are compiled in; they are not sourced from the store.
package catalog

// Outcome is one of the 38 numbered symbols a bet line wagers on
type Outcome struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var outcomes = []Outcome{
	{"0", "DELFÍN"},
	{"00", "BALLENA"},
	{"1", "CARNERO"},
	{"2", "TORO"},
	{"3", "CIEMPIÉS"},
	{"4", "ALACRÁN"},
	{"5", "LEÓN"},
	{"6", "RANA"},
	{"7", "PERICO"},
	{"8", "RATÓN"},
	{"9", "ÁGUILA"},
	{"10", "TIGRE"},
	{"11", "GATO"},
	{"12", "CABALLO"},
	{"13", "MONO"},
	{"14", "PALOMA"},
	{"15", "ZORRO"},
	{"16", "OSO"},
	{"17", "PAVO"},
	{"18", "BURRO"},
	{"19", "CHIVO"},
	{"20", "COCHINO"},
	{"21", "GALLO"},
	{"22", "CAMELLO"},
	{"23", "CEBRA"},
	{"24", "IGUANA"},
	{"25", "GALLINA"},
	{"26", "VACA"},
	{"27", "PERRO"},
	{"28", "ZAMURO"},
	{"29", "ELEFANTE"},
	{"30", "CAIMÁN"},
	{"31", "LAPA"},
	{"32", "ARDILLA"},
	{"33", "PESCADO"},
	{"34", "VENADO"},
	{"35", "JIRAFA"},
	{"36", "CULEBRA"},
}

var byCode = func() map[string]Outcome {
	m := make(map[string]Outcome, len(outcomes))
	for _, o := range outcomes {
		m[o.Code] = o
	}
	return m
}()

// Outcomes returns the full table in grid order ("0", "00", "1".."36").
func Outcomes() []Outcome {
	out := make([]Outcome, len(outcomes))
	copy(out, outcomes)
	return out
}

// Find returns the outcome for a code, or false when the code is not in the
// table. Codes are exact strings: "0" and "00" are distinct outcomes.
func Find(code string) (Outcome, bool) {
	o, ok := byCode[code]
	return o, ok
}

// Count returns the number of outcomes in the table.
func Count() int {
	return len(outcomes)
}
