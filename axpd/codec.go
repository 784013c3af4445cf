// Copyright 2024 The Axiograph Authors.
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

package axpd

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// Magic is the fixed 4-byte header identifying an .axpd file.
var Magic = [4]byte{'A', 'X', 'P', 'D'}

// Version is the current .axpd format version written by Write.
const Version byte = 1

const (
	tagInterning byte = iota + 1
	tagEntities
	tagRelations
	tagEquivalences
)

// Write serializes store into the .axpd binary format: a header followed
// by tagged, length-prefixed blocks for the interning table, entities,
// relations, and equivalences, each emitted in ascending id order.
// Re-writing the result of Read(Write(store)) yields byte-identical
// output, which is required for content addressing.
func Write(store *pathdb.PathDB) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.WriteByte(Version)

	writeBlock(&buf, tagInterning, encodeInterning(store))
	writeBlock(&buf, tagEntities, encodeEntities(store))
	writeBlock(&buf, tagRelations, encodeRelations(store))
	writeBlock(&buf, tagEquivalences, encodeEquivalences(store))

	return buf.Bytes(), nil
}

func writeBlock(buf *bytes.Buffer, tag byte, payload []byte) {
	buf.WriteByte(tag)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	buf.Write(lenBuf[:])
	buf.Write(payload)
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func encodeInterning(store *pathdb.PathDB) []byte {
	all := store.Interner.All()
	var buf bytes.Buffer
	putU32(&buf, uint32(len(all)))
	for _, s := range all {
		putU32(&buf, uint32(len(s)))
		buf.Write(s)
	}
	return buf.Bytes()
}

func encodeAttrs(buf *bytes.Buffer, attrs map[uint32]uint32) {
	// Attribute key order must be deterministic for byte-identical
	// re-writes; sort keys ascending.
	keys := make([]uint32, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	putU32(buf, uint32(len(keys)))
	for _, k := range keys {
		putU32(buf, k)
		putU32(buf, attrs[k])
	}
}

func encodeEntities(store *pathdb.PathDB) []byte {
	n := store.EntityCount()
	var buf bytes.Buffer
	putU32(&buf, uint32(n))
	for i := 0; i < n; i++ {
		e := store.Entity(pathdb.EntityID(i))
		putU32(&buf, e.TypeID)
		encodeAttrs(&buf, e.Attrs)
	}
	return buf.Bytes()
}

func encodeRelations(store *pathdb.PathDB) []byte {
	n := store.RelationCount()
	var buf bytes.Buffer
	putU32(&buf, uint32(n))
	for i := 0; i < n; i++ {
		r := store.Relation(pathdb.RelationID(i))
		putU32(&buf, r.RelType)
		putU32(&buf, uint32(r.Src))
		putU32(&buf, uint32(r.Dst))
		putU32(&buf, uint32(r.Confidence.Numerator()))
		encodeAttrs(&buf, r.Attrs)
	}
	return buf.Bytes()
}

func encodeEquivalences(store *pathdb.PathDB) []byte {
	eqs := store.Equivalences()
	var buf bytes.Buffer
	putU32(&buf, uint32(len(eqs)))
	for _, eq := range eqs {
		putU32(&buf, uint32(eq.A))
		putU32(&buf, uint32(eq.B))
		putU32(&buf, eq.Kind)
	}
	return buf.Bytes()
}

// reader is a small cursor over the input byte slice; every read validates
// remaining length and reports ErrTruncated/ErrBadLength with the offset.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, ErrTruncated.New(r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBadLength.New(n, r.pos)
	}
	if r.remaining() < n {
		return nil, ErrTruncated.New(r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readU32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Read parses the .axpd format produced by Write and reconstructs an
// equivalent pathdb.PathDB: re-reading a written snapshot yields the same
// in-memory state.
func Read(data []byte) (*pathdb.PathDB, error) {
	r := &reader{data: data}

	magic, err := r.readN(4)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, Magic[:]) {
		return nil, ErrBadMagic.New(string(magic))
	}

	version, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, ErrUnsupportedVersion.New(version)
	}

	store := pathdb.New()

	for r.remaining() > 0 {
		tag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		length, err := r.readU32()
		if err != nil {
			return nil, err
		}
		payload, err := r.readN(int(length))
		if err != nil {
			return nil, err
		}

		if err := decodeBlock(store, tag, payload); err != nil {
			return nil, err
		}
	}

	return store, nil
}

func decodeBlock(store *pathdb.PathDB, tag byte, payload []byte) error {
	pr := &reader{data: payload}
	switch tag {
	case tagInterning:
		return decodeInterning(store, pr)
	case tagEntities:
		return decodeEntities(store, pr)
	case tagRelations:
		return decodeRelations(store, pr)
	case tagEquivalences:
		return decodeEquivalences(store, pr)
	default:
		return nil // forward-compatible: unknown block tags are skipped
	}
}

func decodeInterning(store *pathdb.PathDB, r *reader) error {
	count, err := r.readU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		n, err := r.readU32()
		if err != nil {
			return err
		}
		b, err := r.readN(int(n))
		if err != nil {
			return err
		}
		store.Interner.Intern(b)
	}
	return nil
}

func decodeAttrs(r *reader) (map[uint32]uint32, error) {
	count, err := r.readU32()
	if err != nil {
		return nil, err
	}
	attrs := make(map[uint32]uint32, count)
	for i := uint32(0); i < count; i++ {
		k, err := r.readU32()
		if err != nil {
			return nil, err
		}
		v, err := r.readU32()
		if err != nil {
			return nil, err
		}
		attrs[k] = v
	}
	return attrs, nil
}

func decodeEntities(store *pathdb.PathDB, r *reader) error {
	count, err := r.readU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		typeID, err := r.readU32()
		if err != nil {
			return err
		}
		attrs, err := decodeAttrs(r)
		if err != nil {
			return err
		}
		store.AddEntity(typeID, attrs)
	}
	return nil
}

func decodeRelations(store *pathdb.PathDB, r *reader) error {
	count, err := r.readU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		relType, err := r.readU32()
		if err != nil {
			return err
		}
		src, err := r.readU32()
		if err != nil {
			return err
		}
		dst, err := r.readU32()
		if err != nil {
			return err
		}
		conf, err := r.readU32()
		if err != nil {
			return err
		}
		attrs, err := decodeAttrs(r)
		if err != nil {
			return err
		}

		vprob, verr := pathdb.NewVProb(int64(conf))
		if verr != nil {
			return verr
		}

		if _, err := store.AddRelation(relType, pathdb.EntityID(src), pathdb.EntityID(dst), vprob, attrs); err != nil {
			return ErrUnknownEntityReference.Wrap(err, src)
		}
	}
	return nil
}

func decodeEquivalences(store *pathdb.PathDB, r *reader) error {
	count, err := r.readU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		a, err := r.readU32()
		if err != nil {
			return err
		}
		b, err := r.readU32()
		if err != nil {
			return err
		}
		kind, err := r.readU32()
		if err != nil {
			return err
		}
		if err := store.AddEquivalence(pathdb.EntityID(a), pathdb.EntityID(b), kind); err != nil {
			return ErrUnknownEntityReference.Wrap(err, a)
		}
	}
	return nil
}
