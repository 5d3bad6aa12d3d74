// Package scene sequences the preload and gameplay screens on top of ebiten.
package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/flagrun/common"
)

// Scene is one screen of the game. Only the active scene is updated and
// drawn.
type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Closer is implemented by scenes that hold resources to release when
// another scene replaces them.
type Closer interface {
	Close() error
}

// Factory builds a scene when it is started.
type Factory func() (Scene, error)

type Manager struct {
	factories map[string]Factory
	current   Scene
	name      string
	log       *log.Logger
}

func NewManager() *Manager {
	return &Manager{
		factories: make(map[string]Factory),
		log:       common.Log("scene"),
	}
}

func (m *Manager) Register(name string, factory Factory) {
	m.factories[name] = factory
}

// Start builds the named scene and makes it current, closing the previous
// one.
func (m *Manager) Start(name string) error {
	factory, ok := m.factories[name]
	if !ok {
		return fmt.Errorf("scene: unknown scene %q", name)
	}
	next, err := factory()
	if err != nil {
		return fmt.Errorf("scene: start %s: %w", name, err)
	}

	if c, ok := m.current.(Closer); ok {
		if err := c.Close(); err != nil {
			m.log.Warn("close scene", "scene", m.name, "err", err)
		}
	}
	m.log.Debug("switch", "from", m.name, "to", name)
	m.current = next
	m.name = name
	return nil
}

func (m *Manager) Current() Scene      { return m.current }
func (m *Manager) CurrentName() string { return m.name }

// Update updates the active scene. With no scene it does nothing.
func (m *Manager) Update() error {
	if m.current == nil {
		return nil
	}
	return m.current.Update()
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(screen)
	}
}

// Close releases the active scene.
func (m *Manager) Close() error {
	if c, ok := m.current.(Closer); ok {
		return c.Close()
	}
	return nil
}
