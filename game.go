package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/scene"
)

type Game struct {
	scenes *scene.Manager
}

func NewGame(scenes *scene.Manager) *Game {
	return &Game{scenes: scenes}
}

func (g *Game) Update() error {
	return g.scenes.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scenes.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.ScreenWidth, common.ScreenHeight
}
