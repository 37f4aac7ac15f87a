package gridworld

import "fmt"

// CellType is a stable integer code describing what kind of cell
// occupies a grid position. The codes are part of the layout
// serialization format and must not be renumbered.
type CellType int

const (
	FloorType      CellType = 3
	WallType       CellType = 2
	GoalType       CellType = 8
	LavaType       CellType = 9
	TeleporterType CellType = 11
)

func (c CellType) String() string {
	switch c {
	case FloorType:
		return "Floor"
	case WallType:
		return "Wall"
	case GoalType:
		return "Goal"
	case LavaType:
		return "Lava"
	case TeleporterType:
		return "Teleporter"
	default:
		return fmt.Sprintf("CellType(%d)", int(c))
	}
}

// Rune returns a single-rune representation of the cell type for
// text representations of grids
func (c CellType) Rune() rune {
	switch c {
	case WallType:
		return 'W'
	case GoalType:
		return 'G'
	case LavaType:
		return 'L'
	case TeleporterType:
		return 'T'
	default:
		return '.'
	}
}

// Cell is a single tile of a gridworld. Cells determine whether the
// agent may occupy them and, through the Enter hook, where the agent
// actually ends up when its movement would place it on the cell. Most
// cells leave the agent where it landed; cells with custom transition
// behaviour may relocate it.
type Cell interface {
	Type() CellType

	// CanOccupy returns whether the agent's movement may place it on
	// this cell
	CanOccupy() bool

	// Enter computes the agent's resulting position when its movement
	// places it on this cell at position p
	Enter(p Position) Position
}

// Floor is an empty cell that the agent may freely occupy
type Floor struct{}

// NewFloor returns a new Floor cell
func NewFloor() Floor {
	return Floor{}
}

func (f Floor) Type() CellType {
	return FloorType
}

func (f Floor) CanOccupy() bool {
	return true
}

func (f Floor) Enter(p Position) Position {
	return p
}

// Wall is a cell that blocks the agent's movement. An agent moving
// into a Wall stays where it was.
type Wall struct{}

// NewWall returns a new Wall cell
func NewWall() Wall {
	return Wall{}
}

func (w Wall) Type() CellType {
	return WallType
}

func (w Wall) CanOccupy() bool {
	return false
}

func (w Wall) Enter(p Position) Position {
	return p
}

// GoalCell is a cell denoting a terminal goal state
type GoalCell struct{}

// NewGoalCell returns a new GoalCell
func NewGoalCell() GoalCell {
	return GoalCell{}
}

func (g GoalCell) Type() CellType {
	return GoalType
}

func (g GoalCell) CanOccupy() bool {
	return true
}

func (g GoalCell) Enter(p Position) Position {
	return p
}

// Lava is a cell denoting a terminal failure state
type Lava struct{}

// NewLava returns a new Lava cell
func NewLava() Lava {
	return Lava{}
}

func (l Lava) Type() CellType {
	return LavaType
}

func (l Lava) CanOccupy() bool {
	return true
}

func (l Lava) Enter(p Position) Position {
	return p
}

// Decode creates a cell from its type code. Teleporters cannot be
// decoded from a type code alone since they carry a transition table;
// decoding TeleporterType returns an error, and callers reconstructing
// serialized layouts must rebuild teleporters from their destination
// data.
func Decode(code CellType) (Cell, error) {
	switch code {
	case FloorType:
		return NewFloor(), nil
	case WallType:
		return NewWall(), nil
	case GoalType:
		return NewGoalCell(), nil
	case LavaType:
		return NewLava(), nil
	case TeleporterType:
		return nil, fmt.Errorf("decode: teleporters must be constructed " +
			"from their destination data")
	default:
		return nil, fmt.Errorf("decode: unknown cell type code %d", code)
	}
}
