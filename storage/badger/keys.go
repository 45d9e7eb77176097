package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/summarit/core"
)

// Key prefixes for different data types
const (
	itemRecordPrefix = "ingitem"
	itemDatePrefix   = "ingitemd"
	itemStatePrefix  = "ingitems"
	itemIDSeq        = "ingitemseq"
)

// makeItemKey generates a key for an item record by ID.
func makeItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", itemRecordPrefix, id))
}

// makeItemDateKey generates a composite key for the creation-date index.
// Format: prefix:createdAt:id
func makeItemDateKey(createdAt time.Time, id core.ID) []byte {
	prefix := itemDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialItemDateKey generates a partial key for date range queries.
// Format: prefix:createdAt
func makePartialItemDateKey(createdAt time.Time) []byte {
	prefix := itemDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	return buf
}

// makeItemStateKey generates a composite key for the state index.
// Format: prefix:state:createdAt:id, so a prefix scan over one state yields
// items in creation order.
func makeItemStateKey(state core.ItemState, createdAt time.Time, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%d:", itemStatePrefix, state)
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeItemStateScanPrefix generates the scan prefix for one state's index.
func makeItemStateScanPrefix(state core.ItemState) []byte {
	return []byte(fmt.Sprintf("%s:%d:", itemStatePrefix, state))
}

// itemStateKeyCreatedAt extracts the creation timestamp from a state index key.
func itemStateKeyCreatedAt(key []byte, state core.ItemState) (time.Time, bool) {
	prefix := makeItemStateScanPrefix(state)
	if len(key) < len(prefix)+16 {
		return time.Time{}, false
	}
	micros := binary.BigEndian.Uint64(key[len(prefix):])
	return time.UnixMicro(int64(micros)).UTC(), true
}
