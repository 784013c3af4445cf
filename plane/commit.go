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
	"path/filepath"
	"time"

	"github.com/josephjohncox/axiograph-sub002/auth"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

type walLogEntry struct {
	Time       time.Time `json:"time"`
	Op         string    `json:"op"`
	SnapshotID string    `json:"snapshot_id"`
	WalOps     []string  `json:"wal_ops"`
	Message    string    `json:"message"`
}

// PathDBCommit materializes the referenced WAL ops (already written via
// MaterializeChunks/MaterializeProposals) into a new PathDB snapshot that
// extends the current pathdb/HEAD, then advances pathdb/HEAD to it. Any
// failure aborts the operation and leaves pathdb/HEAD unchanged.
func (p *Plane) PathDBCommit(role auth.Role, ops []WalOp, message string) (*PathDBManifest, error) {
	if err := p.requireMaster(role, auth.OpCommit); err != nil {
		return nil, err
	}

	acceptedHead, ok, err := readHead(p.headFile())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound.New("no accepted snapshot has been promoted yet")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	unlock, err := p.lockPathDBHead()
	if err != nil {
		return nil, err
	}
	defer unlock()

	prev, err := p.currentPathDBManifest()
	if err != nil {
		return nil, err
	}

	walOpRefs := make([]string, 0, len(prev.WalOps)+len(ops))
	walOpRefs = append(walOpRefs, prev.WalOps...)
	for _, op := range ops {
		walOpRefs = append(walOpRefs, op.String())
	}

	pid := pathdb.SnapshotID(acceptedHead, walOpRefs)
	manifest := &PathDBManifest{
		SnapshotID:         pid,
		AcceptedSnapshotID: acceptedHead,
		WalOps:             walOpRefs,
		Message:            message,
	}

	if err := writeJSONAtomic(filepath.Join(p.pathdbSnapshotsDir(), pid+".json"), manifest); err != nil {
		return nil, err
	}
	if err := appendJSONLine(p.pathdbWalLog(), walLogEntry{
		Time: time.Now().UTC(), Op: "pathdb-commit", SnapshotID: pid,
		WalOps: walOpsStrings(ops), Message: message,
	}); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(p.pathdbHeadFile(), []byte(pid)); err != nil {
		return nil, err
	}

	p.log.WithFields(map[string]interface{}{
		"snapshot_id": pid, "op": "pathdb-commit", "accepted_snapshot_id": acceptedHead,
	}).Info("committed")

	return manifest, nil
}

func (p *Plane) currentPathDBManifest() (*PathDBManifest, error) {
	head, ok, err := readHead(p.pathdbHeadFile())
	if err != nil {
		return nil, err
	}
	if !ok {
		return &PathDBManifest{}, nil
	}
	var m PathDBManifest
	if err := readJSON(filepath.Join(p.pathdbSnapshotsDir(), head+".json"), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func walOpsStrings(ops []WalOp) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}
