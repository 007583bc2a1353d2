package build

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrei-cloud/go_segop/pkg/payload"
)

func press(t *testing.T, m metadataModel, keys ...tea.KeyMsg) metadataModel {
	t.Helper()

	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(metadataModel)
		require.True(t, ok)
	}

	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestMetadataModelSelect(t *testing.T) {
	t.Parallel()

	m := newMetadataModel(payload.Metadata{})
	m = press(t, m, keyDown, keyDown, keyEnter) // tier: T2_OPERATIONAL
	assert.Equal(t, 1, m.currentField)
	assert.Contains(t, m.View(), "Tier: T2_OPERATIONAL")

	m = press(t, m, keyDown, keyEnter) // kind: TEXT_NOTE
	assert.True(t, m.done)
	assert.Equal(t, payload.Metadata{Tier: "T2_OPERATIONAL", Kind: "TEXT_NOTE"}, m.meta)
}

func TestMetadataModelNone(t *testing.T) {
	t.Parallel()

	m := newMetadataModel(payload.Metadata{Tier: "T1_METADATA", Kind: "PROOF_REF"})
	assert.Equal(t, 1, m.fields[0].selected)
	assert.Equal(t, 3, m.fields[1].selected)

	m = press(t, m, keyUp, keyUp, keyEnter, keyEnter)
	assert.True(t, m.done)
	assert.Equal(t, payload.Metadata{Kind: "PROOF_REF"}, m.meta)
}

func TestMetadataModelBounds(t *testing.T) {
	t.Parallel()

	m := newMetadataModel(payload.Metadata{})
	m = press(t, m, keyUp)
	assert.Equal(t, 0, m.fields[0].selected)

	for i := 0; i < 10; i++ {
		m = press(t, m, keyDown)
	}
	assert.Equal(t, len(m.fields[0].options)-1, m.fields[0].selected)
}

func TestMetadataModelCancel(t *testing.T) {
	t.Parallel()

	m := newMetadataModel(payload.Metadata{})
	next, cmd := m.Update(keyQuit)
	require.NotNil(t, cmd)

	m = next.(metadataModel)
	assert.True(t, m.cancelled)
	assert.Equal(t, "Operation cancelled.\n", m.View())
}

func TestMetadataModelView(t *testing.T) {
	t.Parallel()

	view := newMetadataModel(payload.Metadata{}).View()
	assert.Contains(t, view, "Field 1 of 2")
	assert.Contains(t, view, "● (none)")
	assert.Contains(t, view, "T3_ARBITRARY")
}
