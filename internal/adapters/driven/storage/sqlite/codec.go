package sqlite

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

// membersCodecV1 is the only members layout written so far:
// version byte, member count, then ascending item ids, one byte each.
const membersCodecV1 byte = 1

// encodeMembers serialises a combination for the members column.
func encodeMembers(c domain.Combination) []byte {
	ids := c.IDs()
	buf := make([]byte, 0, 2+len(ids))
	buf = append(buf, membersCodecV1, byte(len(ids)))
	for _, id := range ids {
		buf = append(buf, byte(id))
	}
	return buf
}

// decodeMembers parses a members blob written by encodeMembers.
func decodeMembers(data []byte) (domain.Combination, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("%w: members blob too short (%d bytes)", domain.ErrStoreIO, len(data))
	}
	if data[0] != membersCodecV1 {
		return 0, fmt.Errorf("%w: unknown members codec version %d", domain.ErrStoreIO, data[0])
	}
	count := int(data[1])
	ids := data[2:]
	if len(ids) != count {
		return 0, fmt.Errorf("%w: members blob declares %d ids, holds %d", domain.ErrStoreIO, count, len(ids))
	}
	if !slices.IsSorted(ids) {
		return 0, fmt.Errorf("%w: members blob ids not ascending", domain.ErrStoreIO)
	}

	var c domain.Combination
	for _, id := range ids {
		if int(id) >= domain.MaxCatalogItems {
			return 0, fmt.Errorf("%w: member id %d out of range", domain.ErrStoreIO, id)
		}
		c = c.With(int(id))
	}
	if c.Len() != count {
		return 0, fmt.Errorf("%w: members blob repeats an id", domain.ErrStoreIO)
	}
	return c, nil
}
