// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/summarit/core"
)

// itemSer is a hand-written mus-go serializer for core.Item.
// Fields are written in declaration order; timestamps as Unix microseconds.
type itemSer struct{}

// ItemMUS serializes core.Item values.
var ItemMUS = itemSer{}

// idSer is a mus-go serializer for core.ID.
type idSer struct{}

// IDMUS serializes core.ID values.
var IDMUS = idSer{}

func (idSer) Size(id core.ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Marshal(id core.ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (itemSer) Size(item core.Item) (size int) {
	size = varint.Uint64.Size(uint64(item.Id))
	size += varint.Int.Size(int(item.Source))
	size += ord.String.Size(item.OriginalName)
	size += varint.Int.Size(int(item.Format))
	size += ord.String.Size(item.RawText)
	size += ord.String.Size(item.Summary)
	size += varint.Int.Size(int(item.State))
	size += varint.Uint64.Size(uint64(item.ContentHash))
	size += ord.String.Size(item.LastErrorKind)
	size += ord.String.Size(item.LastErrorMessage)
	size += varint.Int64.Size(item.CreatedAt.UnixMicro())
	size += varint.Int64.Size(item.UpdatedAt.UnixMicro())
	return size
}

func (itemSer) Marshal(item core.Item, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(item.Id), bs)
	n += varint.Int.Marshal(int(item.Source), bs[n:])
	n += ord.String.Marshal(item.OriginalName, bs[n:])
	n += varint.Int.Marshal(int(item.Format), bs[n:])
	n += ord.String.Marshal(item.RawText, bs[n:])
	n += ord.String.Marshal(item.Summary, bs[n:])
	n += varint.Int.Marshal(int(item.State), bs[n:])
	n += varint.Uint64.Marshal(uint64(item.ContentHash), bs[n:])
	n += ord.String.Marshal(item.LastErrorKind, bs[n:])
	n += ord.String.Marshal(item.LastErrorMessage, bs[n:])
	n += varint.Int64.Marshal(item.CreatedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(item.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (itemSer) Unmarshal(bs []byte) (item core.Item, n int, err error) {
	var (
		u64 uint64
		i   int
		i64 int64
		s   string
		n1  int
	)

	if u64, n1, err = varint.Uint64.Unmarshal(bs); err != nil {
		return item, n + n1, err
	}
	item.Id = core.ID(u64)
	n += n1

	if i, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.Source = core.SourceKind(i)
	n += n1

	if s, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.OriginalName = s
	n += n1

	if i, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.Format = core.Format(i)
	n += n1

	if s, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.RawText = s
	n += n1

	if s, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.Summary = s
	n += n1

	if i, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.State = core.ItemState(i)
	n += n1

	if u64, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.ContentHash = core.ContentHash(u64)
	n += n1

	if s, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.LastErrorKind = s
	n += n1

	if s, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.LastErrorMessage = s
	n += n1

	if i64, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.CreatedAt = time.UnixMicro(i64).UTC()
	n += n1

	if i64, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return item, n + n1, err
	}
	item.UpdatedAt = time.UnixMicro(i64).UTC()
	n += n1

	return item, n, nil
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalItem serializes an Item to bytes.
func MarshalItem(item *core.Item) []byte {
	buf := make([]byte, ItemMUS.Size(*item))
	ItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalItem deserializes an Item from bytes.
func UnmarshalItem(data []byte) (*core.Item, error) {
	item, _, err := ItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
