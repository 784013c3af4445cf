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

package checker

import (
	"strconv"
	"strings"

	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// anchorIndex is a loaded anchor module together with the PathDB and name
// registry axi.Import derives from it, built once per anchor and reused
// across every certificate referencing it.
type anchorIndex struct {
	Digest string
	Module *axi.Module
	DB     *pathdb.PathDB
	Names  map[string]pathdb.EntityID

	bySchema, byTheory map[string]bool
}

func buildAnchorIndex(m *axi.Module) (*anchorIndex, error) {
	idx := &anchorIndex{Digest: axi.ModuleDigest(m), Module: m}

	if len(m.Schemas) == 1 && len(m.Instances) == 1 {
		db, names, err := axi.Import(m)
		if err != nil {
			return nil, ErrInputShape.New(err.Error())
		}
		idx.DB, idx.Names = db, names
	}

	idx.bySchema = map[string]bool{}
	for _, s := range m.Schemas {
		idx.bySchema[s.Name] = true
	}
	idx.byTheory = map[string]bool{}
	for _, th := range m.Theories {
		idx.byTheory[th.Name] = true
	}
	return idx, nil
}

// buildAnchorIndexes keys every loaded anchor by its own canonical digest.
func buildAnchorIndexes(anchors []*axi.Module) (map[string]*anchorIndex, error) {
	out := make(map[string]*anchorIndex, len(anchors))
	for _, m := range anchors {
		idx, err := buildAnchorIndex(m)
		if err != nil {
			return nil, err
		}
		out[idx.Digest] = idx
	}
	return out, nil
}

// resolveEntity looks up a named entity or reified fact (an
// axi.EntityName-shaped synthetic name) against idx.Names.
func (idx *anchorIndex) resolveEntity(name string) (pathdb.EntityID, bool) {
	if id, ok := idx.Names[name]; ok {
		return id, true
	}
	if idx.DB == nil || !strings.HasPrefix(name, "e") {
		return 0, false
	}
	n, err := strconv.ParseUint(name[1:], 10, 32)
	if err != nil {
		return 0, false
	}
	id := pathdb.EntityID(n)
	if axi.EntityName(id) != name || idx.DB.Entity(id) == nil {
		return 0, false
	}
	return id, true
}
