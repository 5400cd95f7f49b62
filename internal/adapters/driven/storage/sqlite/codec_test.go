package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

func TestEncodeMembers_Layout(t *testing.T) {
	data := encodeMembers(domain.NewCombination(9, 0, 63))

	assert.Equal(t, []byte{membersCodecV1, 3, 0, 9, 63}, data)
}

func TestDecodeMembers_RoundTrip(t *testing.T) {
	for _, c := range []domain.Combination{0, domain.NewCombination(5), domain.NewCombination(0, 1, 2, 40, 63)} {
		got, err := decodeMembers(encodeMembers(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestDecodeMembers_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"unknown version", []byte{9, 1, 0}},
		{"count mismatch", []byte{membersCodecV1, 2, 0}},
		{"unsorted", []byte{membersCodecV1, 2, 5, 1}},
		{"repeated id", []byte{membersCodecV1, 2, 3, 3}},
		{"id out of range", []byte{membersCodecV1, 1, 64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeMembers(tt.data)
			assert.ErrorIs(t, err, domain.ErrStoreIO)
		})
	}
}
