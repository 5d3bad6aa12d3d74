package component

type FlagTag struct{}

var FlagTagComponent = NewComponent[FlagTag]()

type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()

// HUDTag marks the score label.
type HUDTag struct{}

var HUDTagComponent = NewComponent[HUDTag]()
