package scene

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScene struct {
	updates int
	closed  bool
	err     error
}

func (f *fakeScene) Update() error {
	f.updates++
	return f.err
}

func (f *fakeScene) Draw(*ebiten.Image) {}

func (f *fakeScene) Close() error {
	f.closed = true
	return nil
}

func TestManagerStartAndSwitch(t *testing.T) {
	m := NewManager()
	preload := &fakeScene{}
	main := &fakeScene{}
	m.Register("preload", func() (Scene, error) { return preload, nil })
	m.Register("main", func() (Scene, error) { return main, nil })

	require.NoError(t, m.Update(), "no scene is a no-op")

	require.NoError(t, m.Start("preload"))
	require.NoError(t, m.Update())
	assert.Equal(t, 1, preload.updates)
	assert.Equal(t, "preload", m.CurrentName())

	require.NoError(t, m.Start("main"))
	assert.True(t, preload.closed)
	assert.Same(t, main, m.Current())

	require.NoError(t, m.Update())
	assert.Equal(t, 1, preload.updates)
	assert.Equal(t, 1, main.updates)

	require.NoError(t, m.Close())
	assert.True(t, main.closed)
}

func TestManagerStartErrors(t *testing.T) {
	m := NewManager()
	current := &fakeScene{}
	m.Register("ok", func() (Scene, error) { return current, nil })
	m.Register("broken", func() (Scene, error) { return nil, errors.New("boom") })
	require.NoError(t, m.Start("ok"))

	assert.ErrorContains(t, m.Start("missing"), "unknown scene")
	assert.ErrorContains(t, m.Start("broken"), "boom")

	assert.Same(t, current, m.Current(), "failed start keeps the current scene")
	assert.False(t, current.closed)
}

func TestManagerUpdatePropagatesError(t *testing.T) {
	m := NewManager()
	failing := &fakeScene{err: errors.New("asset missing")}
	m.Register("preload", func() (Scene, error) { return failing, nil })
	require.NoError(t, m.Start("preload"))

	assert.EqualError(t, m.Update(), "asset missing")
}
