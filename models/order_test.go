package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"preparing", StatusPreparing},
		{"Undirbúningur", StatusPreparing},
		{"in_progress", StatusInProgress},
		{"Í vinnslu", StatusInProgress},
		// Legacy synonym from the old admin screen, same state.
		{"Í gangi", StatusInProgress},
		{"Lokið", StatusCompleted},
		{"completed", StatusCompleted},
		{"Hætt við", StatusCancelled},
		{"CANCELLED", StatusCancelled},
	}
	for _, tc := range cases {
		got, ok := NormalizeStatus(tc.in)
		assert.True(t, ok, "status %q should normalize", tc.in)
		assert.Equal(t, tc.want, got, "status %q", tc.in)
	}

	_, ok := NormalizeStatus("shipped")
	assert.False(t, ok)
	_, ok = NormalizeStatus("")
	assert.False(t, ok)
}

func TestStatusLabelIS(t *testing.T) {
	assert.Equal(t, "Undirbúningur", StatusLabelIS(StatusPreparing))
	assert.Equal(t, "Í vinnslu", StatusLabelIS(StatusInProgress))
	assert.Equal(t, "Lokið", StatusLabelIS(StatusCompleted))
	assert.Equal(t, "Hætt við", StatusLabelIS(StatusCancelled))
}
