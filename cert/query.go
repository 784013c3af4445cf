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

package cert

import (
	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/axql"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// TypeWitnessJSON records that Entity's type lies in the subtype closure
// of TypeName, named rather than id-based so a v3 certificate stands on
// its own against an anchor's textual export.
type TypeWitnessJSON struct {
	Entity   string `json:"entity"`
	TypeName string `json:"type_name"`
}

// AttrWitnessJSON records a stored attribute equality on a named entity.
type AttrWitnessJSON struct {
	Entity string `json:"entity"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// PathStepJSON is one edge of a named path witness chain.
type PathStepJSON struct {
	Src       string `json:"src"`
	Dst       string `json:"dst"`
	Rel       string `json:"rel"`
	ConfFP    int64  `json:"conf_fp"`
	AxiFactID string `json:"axi_fact_id"`
}

// PathWitnessJSON is either reflexive or a chain of PathStepJSON entries
// whose label sequence Regex's compiled automaton must accept. Regex is
// the RPQ's surface syntax (see axql.ParseRegex), carried alongside the
// witness so the checker can recompile and re-check language membership
// without access to the original Query IR.
type PathWitnessJSON struct {
	Reflexive bool           `json:"reflexive"`
	Entity    string         `json:"entity,omitempty"`
	Steps     []PathStepJSON `json:"steps,omitempty"`
	Regex     string         `json:"regex,omitempty"`
}

// AtomWitnessJSON is the per-atom witness attached to one result row;
// exactly one field is populated, mirroring axql.Atom's sum type.
type AtomWitnessJSON struct {
	Type *TypeWitnessJSON `json:"type,omitempty"`
	Attr *AttrWitnessJSON `json:"attr,omitempty"`
	Path *PathWitnessJSON `json:"path,omitempty"`
}

// QueryRowJSON is one named, witnessed result row.
type QueryRowJSON struct {
	Bindings map[string]string `json:"bindings"`
	Witness  []AtomWitnessJSON `json:"witness"`
}

// QueryResultProof is the proof payload for query_result_v1/v2/v3: the
// query's selected variables, its rows (witnessed, named), and whether
// Options.Limit truncated the result. Truncated is always present — see
// DESIGN.md's open-question decision — so its absence can never be
// mistaken for completeness.
type QueryResultProof struct {
	Vars      []string       `json:"vars"`
	Rows      []QueryRowJSON `json:"rows"`
	Truncated bool           `json:"truncated"`
}

// EmitQueryResult converts an axql.Result into its named wire shape,
// resolving every entity id back to the name axi.Import assigned it (or
// its axi.EntityName fallback, for entities introduced only inside the
// snapshot, such as reified fact entities) — no second execution pass.
func EmitQueryResult(vars []string, res *axql.Result, names map[string]pathdb.EntityID) QueryResultProof {
	reverse := make(map[pathdb.EntityID]string, len(names))
	for name, id := range names {
		reverse[id] = name
	}
	resolve := func(id pathdb.EntityID) string {
		if n, ok := reverse[id]; ok {
			return n
		}
		return axi.EntityName(id)
	}

	rows := make([]QueryRowJSON, 0, len(res.Rows))
	for _, row := range res.Rows {
		bindings := make(map[string]string, len(row.Bindings))
		for v, id := range row.Bindings {
			bindings[v] = resolve(id)
		}
		witness := make([]AtomWitnessJSON, 0, len(row.Witness))
		for _, w := range row.Witness {
			witness = append(witness, toAtomWitnessJSON(w, resolve))
		}
		rows = append(rows, QueryRowJSON{Bindings: bindings, Witness: witness})
	}

	return QueryResultProof{Vars: vars, Rows: rows, Truncated: res.Truncated}
}

func toAtomWitnessJSON(w axql.AtomWitness, resolve func(pathdb.EntityID) string) AtomWitnessJSON {
	var out AtomWitnessJSON
	if w.Type != nil {
		out.Type = &TypeWitnessJSON{Entity: resolve(w.Type.Entity), TypeName: w.Type.TypeName}
	}
	if w.Attr != nil {
		out.Attr = &AttrWitnessJSON{Entity: resolve(w.Attr.Entity), Key: w.Attr.Key, Value: w.Attr.Value}
	}
	if w.Path != nil {
		pw := &PathWitnessJSON{Reflexive: w.Path.Reflexive, Regex: w.Path.Regex}
		if w.Path.Reflexive {
			pw.Entity = resolve(w.Path.Entity)
		}
		for _, s := range w.Path.Steps {
			pw.Steps = append(pw.Steps, PathStepJSON{
				Src: resolve(s.Src), Dst: resolve(s.Dst), Rel: s.Rel,
				ConfFP: s.Confidence.Numerator(), AxiFactID: s.AxiFactID,
			})
		}
		out.Path = pw
	}
	return out
}
