package carousel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeck_InitNavigationRequiresControls(t *testing.T) {
	deck := NewDeck(4, 1, false)
	require.ErrorIs(t, deck.InitNavigation(), ErrControlsMissing)

	deck.SetNavigation(NewButton("prev"), nil)
	require.ErrorIs(t, deck.InitNavigation(), ErrControlsMissing)
}

func TestDeck_ButtonsDriveSlides(t *testing.T) {
	deck := NewDeck(4, 2, false)
	prev, next := NewButton("prev"), NewButton("next")
	deck.SetNavigation(prev, next)
	require.NoError(t, deck.InitNavigation())

	prevOff, nextOff := deck.ControlsDisabled()
	require.True(t, prevOff)
	require.False(t, nextOff)

	next.Press()
	next.Press()
	next.Press()
	// Four slides, two per view: the first visible slide stops at index 2.
	require.Equal(t, 2, deck.Active())
	prevOff, nextOff = deck.ControlsDisabled()
	require.False(t, prevOff)
	require.True(t, nextOff)

	prev.Press()
	require.Equal(t, 1, deck.Active())
}

func TestDeck_LoopWraps(t *testing.T) {
	deck := NewDeck(3, 1, true)
	deck.SlidePrev()
	require.Equal(t, 2, deck.Active())
	deck.SlideNext()
	require.Equal(t, 0, deck.Active())
}

func TestDeck_DestroyNavigationUnbinds(t *testing.T) {
	deck := NewDeck(4, 1, false)
	prev, next := NewButton("prev"), NewButton("next")
	deck.SetNavigation(prev, next)
	require.NoError(t, deck.InitNavigation())
	require.NoError(t, deck.InitNavigation())
	require.Equal(t, 1, next.Bound())

	require.NoError(t, deck.DestroyNavigation())
	require.Equal(t, 0, next.Bound())
	next.Press()
	require.Equal(t, 0, deck.Active())
}

func TestDeck_DestroyedRejectsNavigation(t *testing.T) {
	deck := NewDeck(4, 1, false)
	next := NewButton("next")
	deck.SetNavigation(NewButton("prev"), next)
	require.NoError(t, deck.InitNavigation())

	deck.Destroy()
	require.True(t, deck.Destroyed())
	require.ErrorIs(t, deck.InitNavigation(), ErrEngineDestroyed)
	require.ErrorIs(t, deck.UpdateNavigation(), ErrEngineDestroyed)
	require.ErrorIs(t, deck.DestroyNavigation(), ErrEngineDestroyed)

	next.Press()
	deck.SlideNext()
	require.Equal(t, 0, deck.Active())
}

func TestDeck_SwipeNotifiesInteraction(t *testing.T) {
	deck := NewDeck(4, 1, false)
	var interactions, changes []int
	unsubscribe := deck.OnInteraction(func() { interactions = append(interactions, deck.Active()) })
	deck.OnSlideChange(func(active int) { changes = append(changes, active) })

	deck.Swipe(2)
	deck.SlideNext()
	deck.Swipe(0)
	unsubscribe()
	deck.Swipe(-1)

	require.Equal(t, []int{2}, interactions)
	require.Equal(t, []int{2, 3, 2}, changes)
}

func TestDeck_EmptyDeckIgnoresMoves(t *testing.T) {
	deck := NewDeck(0, 3, true)
	deck.SlideNext()
	deck.Swipe(-4)
	require.Equal(t, 0, deck.Active())
}
