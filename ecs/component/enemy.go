package component

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Enemy is a patrolling walker. Horizontal velocity stays zero until
// HasLanded; afterwards it is always +/-PatrolSpeed.
type Enemy struct {
	Direction   Direction
	HasLanded   bool
	Active      bool
	PatrolSpeed float64
	MinX        float64
	MaxX        float64
	StompValue  int
	// Script names a patrol script under prefabs/scripts. Empty runs the
	// built-in rule.
	Script string
}

var EnemyComponent = NewComponent[Enemy]()
