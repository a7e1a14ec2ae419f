package game

import "math/rand"

// WordEntry pairs a secret word with the one-word hint impostors may
// receive when the room enables hints.
type WordEntry struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

// WordCatalog is the fixed pool the assigner draws from. Hints are
// deliberately oblique: enough to bluff with, not enough to give the
// word away.
var WordCatalog = []WordEntry{
	// Animals
	{Word: "Elephant", Hint: "trunk"},
	{Word: "Penguin", Hint: "ice"},
	{Word: "Crocodile", Hint: "reptile"},
	{Word: "Butterfly", Hint: "metamorphosis"},
	{Word: "Dolphin", Hint: "cetacean"},
	{Word: "Bat", Hint: "echolocation"},
	{Word: "Chameleon", Hint: "camouflage"},
	{Word: "Octopus", Hint: "tentacles"},

	// Objects
	{Word: "Umbrella", Hint: "rain"},
	{Word: "Clock", Hint: "time"},
	{Word: "Mirror", Hint: "reflection"},
	{Word: "Key", Hint: "lock"},
	{Word: "Compass", Hint: "north"},
	{Word: "Anchor", Hint: "ship"},
	{Word: "Telescope", Hint: "stars"},
	{Word: "Magnet", Hint: "attraction"},

	// Professions
	{Word: "Astronaut", Hint: "space"},
	{Word: "Archaeologist", Hint: "ruins"},
	{Word: "Baker", Hint: "oven"},
	{Word: "Librarian", Hint: "silence"},
	{Word: "Photographer", Hint: "lens"},
	{Word: "Diver", Hint: "oxygen"},
	{Word: "Juggler", Hint: "balance"},
	{Word: "Veterinarian", Hint: "animals"},

	// Places
	{Word: "Volcano", Hint: "magma"},
	{Word: "Lighthouse", Hint: "coast"},
	{Word: "Pyramid", Hint: "Egypt"},
	{Word: "Aquarium", Hint: "fish"},
	{Word: "Cathedral", Hint: "gothic"},
	{Word: "Observatory", Hint: "astronomy"},
	{Word: "Monastery", Hint: "monks"},
	{Word: "Oasis", Hint: "desert"},

	// Food
	{Word: "Paella", Hint: "rice"},
	{Word: "Sushi", Hint: "Japan"},
	{Word: "Croissant", Hint: "France"},
	{Word: "Tacos", Hint: "Mexico"},
	{Word: "Spaghetti", Hint: "Italy"},
	{Word: "Hummus", Hint: "chickpea"},
	{Word: "Crepe", Hint: "thin"},
	{Word: "Fondue", Hint: "cheese"},

	// Activities
	{Word: "Climbing", Hint: "mountain"},
	{Word: "Origami", Hint: "paper"},
	{Word: "Meditation", Hint: "calm"},
	{Word: "Gardening", Hint: "plants"},
	{Word: "Pottery", Hint: "clay"},
	{Word: "Surfing", Hint: "waves"},
	{Word: "Yoga", Hint: "posture"},
	{Word: "Fencing", Hint: "sword"},

	// Concepts
	{Word: "Gravity", Hint: "falling"},
	{Word: "Shadow", Hint: "light"},
	{Word: "Echo", Hint: "sound"},
	{Word: "Magnetism", Hint: "pole"},
	{Word: "Evolution", Hint: "adaptation"},
	{Word: "Rainbow", Hint: "spectrum"},
	{Word: "Eclipse", Hint: "moon"},
	{Word: "Aurora", Hint: "borealis"},

	// Nature
	{Word: "Glacier", Hint: "cold"},
	{Word: "Waterfall", Hint: "drop"},
	{Word: "Geyser", Hint: "steam"},
	{Word: "Labyrinth", Hint: "path"},
	{Word: "Pendulum", Hint: "oscillation"},
	{Word: "Prism", Hint: "refraction"},
	{Word: "Tornado", Hint: "whirl"},
	{Word: "Constellation", Hint: "star"},
}

// RandomWord picks one entry uniformly from the catalog.
func RandomWord(rng *rand.Rand) WordEntry {
	return WordCatalog[rng.Intn(len(WordCatalog))]
}
