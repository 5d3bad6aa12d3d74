package component

// Coin is a collectible worth Value points. Inactive coins are hidden and
// have no body in the space until the set is refilled at HomeX, HomeY.
type Coin struct {
	Active bool
	HomeX  float64
	HomeY  float64
	Value  int
}

var CoinComponent = NewComponent[Coin]()
