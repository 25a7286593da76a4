package game

import (
	"encoding/binary"
	"hash/fnv"
)

// StateKey is an immutable snapshot of the stacks of a board. Two boards with
// the same pieces in the same places have equal keys.
type StateKey string

// Hash folds the key into 64 bits for logging.
func (k StateKey) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(k))
	return h.Sum64()
}

func (b *Board) StateKey() StateKey {
	return b.encode(-1, Empty)
}

// encode writes each column as its height byte followed by the uvarint of its
// colour bits. When column is in range, player's piece is first pushed onto it.
func (b *Board) encode(column, player int) StateKey {
	buf := make([]byte, 0, len(b.stacks)*3)
	for c, s := range b.stacks {
		if c == column {
			s = s.push(player)
		}
		buf = append(buf, byte(s.height))
		buf = binary.AppendUvarint(buf, s.colours)
	}
	return StateKey(buf)
}
