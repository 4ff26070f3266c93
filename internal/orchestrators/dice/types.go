package dice

// RollInput defines the request for rolling dice
type RollInput struct {
	Notation string
}

// RollOutput defines the result of a roll
type RollOutput struct {
	// Notation as parsed, e.g. "4d6dl1+2"
	Notation string

	// Kept dice values in roll order
	Dice []int

	// Dice removed by a drop-lowest suffix
	Dropped []int

	// Modifier added to the kept dice
	Modifier int

	// Sum of kept dice plus modifier
	Total int
}
