package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibility_MountClosed(t *testing.T) {
	v := NewVisibility(false)
	assert.False(t, v.Open())
	assert.False(t, v.Mounted())
	assert.Equal(t, PhaseIdle, v.Phase())
}

func TestVisibility_MountOpenStartsEntering(t *testing.T) {
	v := NewVisibility(true)
	assert.True(t, v.Open())
	assert.Equal(t, PhaseEntering, v.Phase())
	assert.True(t, v.FinishTransition(v.Seq()))
	assert.Equal(t, PhaseIdle, v.Phase())
}

func TestVisibility_SyncPropIsIdempotent(t *testing.T) {
	v := NewVisibility(false)

	assert.Equal(t, ChangeOpened, v.SyncProp(true))
	seq := v.Seq()
	assert.Equal(t, ChangeNone, v.SyncProp(true), "same value twice must not re-trigger enter")
	assert.Equal(t, seq, v.Seq())
}

func TestVisibility_CloseTwiceClosesOnce(t *testing.T) {
	v := NewVisibility(true)

	assert.True(t, v.RequestClose())
	assert.False(t, v.RequestClose())
	assert.False(t, v.Open())
	assert.Equal(t, PhaseExiting, v.Phase())
	assert.True(t, v.Mounted(), "still mounted while exiting")

	// The host acknowledging the close must not flip anything again.
	assert.Equal(t, ChangeNone, v.SyncProp(false))
}

func TestVisibility_CloseWhileClosedIsNoop(t *testing.T) {
	v := NewVisibility(false)
	assert.False(t, v.RequestClose())
	assert.Equal(t, 0, v.Seq())
}

func TestVisibility_ReopenCancelsExit(t *testing.T) {
	v := NewVisibility(true)
	v.FinishTransition(v.Seq())

	v.SyncProp(false)
	exitSeq := v.Seq()
	assert.Equal(t, PhaseExiting, v.Phase())

	v.SyncProp(true)
	assert.Equal(t, PhaseEntering, v.Phase())
	assert.False(t, v.FinishTransition(exitSeq), "stale exit frame is dropped")
	assert.Equal(t, PhaseEntering, v.Phase())
	assert.True(t, v.Open())

	assert.True(t, v.FinishTransition(v.Seq()))
	assert.Equal(t, PhaseIdle, v.Phase())
}

func TestVisibility_ExitCompletesUnmount(t *testing.T) {
	v := NewVisibility(true)
	v.RequestClose()
	assert.True(t, v.FinishTransition(v.Seq()))
	assert.False(t, v.Mounted())
	assert.False(t, v.FinishTransition(v.Seq()), "finishing twice is a no-op")
}
