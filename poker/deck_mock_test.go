package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRand is a testify mock of Rand.
type mockRand struct {
	mock.Mock
}

func (m *mockRand) IntN(n int) int {
	args := m.Called(n)
	return args.Int(0)
}

func TestShuffleDrawsEachPositionOnce(t *testing.T) {
	rng := &mockRand{}
	// Choosing the last open slot every time leaves the deck in order.
	for n := 52; n >= 2; n-- {
		rng.On("IntN", n).Return(n - 1).Once()
	}

	deck, err := NewDeck(rng)
	require.NoError(t, err)
	rng.AssertExpectations(t)

	cards, err := deck.Deal(52)
	require.NoError(t, err)
	assert.Equal(t, FullDeck(), cards)
}

func TestShuffleSwapsChosenCard(t *testing.T) {
	rng := &mockRand{}
	// Swap the last card with the first, then leave everything else alone.
	rng.On("IntN", 52).Return(0).Once()
	for n := 51; n >= 2; n-- {
		rng.On("IntN", n).Return(n - 1).Once()
	}

	deck, err := NewDeck(rng)
	require.NoError(t, err)
	rng.AssertExpectations(t)

	full := FullDeck()
	first, err := deck.DealOne()
	require.NoError(t, err)
	assert.Equal(t, full[51], first)

	rest, err := deck.Deal(51)
	require.NoError(t, err)
	assert.Equal(t, full[0], rest[50])
}
