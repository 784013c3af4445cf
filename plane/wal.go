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

package plane

import (
	"encoding/json"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/josephjohncox/axiograph-sub002/internal/digest"
)

// OpKind names a WAL overlay operation kind, spec.md §4.5's
// "ImportChunksV1"/"ImportProposalsV1".
type OpKind string

const (
	OpImportChunksV1    OpKind = "ImportChunksV1"
	OpImportProposalsV1 OpKind = "ImportProposalsV1"
)

// ChunkRecord is one entry of a chunks.json blob: a span of source text
// the WAL overlay makes available for downstream entity/relation
// proposals to cite as evidence.
type ChunkRecord struct {
	ChunkID    string `json:"chunk_id"`
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
	SpanID     string `json:"span_id,omitempty"`
	Page       *int   `json:"page,omitempty"`
}

// ProposalRecord is one entry of a proposals.json blob: a proposed entity
// or relation with a confidence and supporting evidence, not yet certified
// into a PathDB snapshot's core facts.
type ProposalRecord struct {
	Kind       string   `json:"kind"` // "entity" | "relation"
	ProposalID string   `json:"proposal_id"`
	Confidence int64    `json:"confidence"` // VProb numerator
	Evidence   []string `json:"evidence"`

	// Entity fields (Kind == "entity").
	Type  string            `json:"type,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty"`

	// Relation fields (Kind == "relation").
	RelType string `json:"rel_type,omitempty"`
	Src     string `json:"src,omitempty"`
	Dst     string `json:"dst,omitempty"`
}

// WalOp is one entry of a PathDBManifest.WalOps reference: "<kind>:<blob
// digest>", resolving to pathdb/blobs/<digest>.chunks.json or
// .proposals.json.
type WalOp struct {
	Kind   OpKind
	Digest string
}

func (op WalOp) String() string { return string(op.Kind) + ":" + op.Digest }

func parseWalOp(s string) (WalOp, error) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			return WalOp{Kind: OpKind(s[:i]), Digest: s[i+1:]}, nil
		}
	}
	return WalOp{}, errors.Errorf("plane: malformed WAL op reference %q", s)
}

func (op WalOp) blobFileName() string {
	switch op.Kind {
	case OpImportChunksV1:
		return op.Digest + ".chunks.json"
	case OpImportProposalsV1:
		return op.Digest + ".proposals.json"
	default:
		return op.Digest + ".json"
	}
}

// MaterializeChunks writes the records as one blob under pathdb/blobs/,
// unchanged, and returns the WalOp referencing it.
func (p *Plane) MaterializeChunks(records []ChunkRecord) (WalOp, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return WalOp{}, errors.Wrap(err, "plane: marshaling chunks")
	}
	blobDigest := digest.Hex(string(data))
	op := WalOp{Kind: OpImportChunksV1, Digest: blobDigest}
	path := filepath.Join(p.pathdbBlobsDir(), op.blobFileName())
	if err := writeFileAtomic(path, data); err != nil {
		return WalOp{}, err
	}
	return op, nil
}

// MaterializeProposals assigns a proposal id (via uuid.New, mirroring the
// teacher driver's session-id generation) to every record missing one,
// writes the blob under pathdb/blobs/, and returns the WalOp referencing
// it.
func (p *Plane) MaterializeProposals(records []ProposalRecord) (WalOp, error) {
	for i := range records {
		if records[i].ProposalID == "" {
			records[i].ProposalID = uuid.New().String()
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return WalOp{}, errors.Wrap(err, "plane: marshaling proposals")
	}
	blobDigest := digest.Hex(string(data))
	op := WalOp{Kind: OpImportProposalsV1, Digest: blobDigest}
	path := filepath.Join(p.pathdbBlobsDir(), op.blobFileName())
	if err := writeFileAtomic(path, data); err != nil {
		return WalOp{}, err
	}
	return op, nil
}

func (p *Plane) loadChunks(digest string) ([]ChunkRecord, error) {
	var records []ChunkRecord
	path := filepath.Join(p.pathdbBlobsDir(), digest+".chunks.json")
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (p *Plane) loadProposals(digest string) ([]ProposalRecord, error) {
	var records []ProposalRecord
	path := filepath.Join(p.pathdbBlobsDir(), digest+".proposals.json")
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}
