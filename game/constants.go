package game

const (
	// DefaultSafeDist is the radius around the first click that never holds a mine
	DefaultSafeDist = 3.0
	// DefaultBombSpawnChance is the probability of any other cell being a mine
	DefaultBombSpawnChance = 0.2
)

type Outcome int

const (
	Ongoing Outcome = iota
	Won
	Lost
)

func (outcome Outcome) String() string {
	switch outcome {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

type ActionKind int

const (
	Reveal ActionKind = iota
	Flag
)

func (kind ActionKind) String() string {
	switch kind {
	case Reveal:
		return "reveal"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// Action is a single player move against a cell
type Action struct {
	Row, Col int
	Kind     ActionKind
}

// neighborOffsets are the (row, col) deltas of the 8 surrounding cells
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
