package entity

// Default draw order. Prefabs may override the sprite layers.
const (
	LayerBackground = 0
	LayerPlatform   = 1
	LayerPickup     = 2
	LayerActor      = 3
	LayerHUD        = 10
	LayerOverlay    = 11
)
