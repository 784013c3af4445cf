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
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/josephjohncox/axiograph-sub002/auth"
	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/internal/digest"
)

// acceptedLogEntry is one line of accepted_plane.log.jsonl.
type acceptedLogEntry struct {
	Time       time.Time `json:"time"`
	Op         string    `json:"op"`
	SnapshotID string    `json:"snapshot_id"`
	Name       string    `json:"name"`
	Digest     string    `json:"digest"`
	Message    string    `json:"message"`
}

// Promote parses moduleText as a .axi module, digests it, writes it to
// modules/<name>/<digest>.axi if not already present, and advances HEAD to
// a new accepted snapshot whose id is the FNV1a digest of the
// lexicographically ordered set of every named module's (name, digest)
// pair — the module being promoted plus every module already accepted.
// Any parse/digest/io failure aborts the operation and leaves HEAD
// unchanged, per spec.md §4.5's failure semantics.
func (p *Plane) Promote(role auth.Role, name, moduleText, message string) (*AcceptedManifest, error) {
	if err := p.requireMaster(role, auth.OpPromote); err != nil {
		return nil, err
	}

	m, err := axi.Parse(moduleText)
	if err != nil {
		return nil, ErrInvalidModule.New(err.Error())
	}
	blobDigest := axi.ModuleDigest(m)

	p.mu.Lock()
	defer p.mu.Unlock()

	unlock, err := p.lockHead()
	if err != nil {
		return nil, err
	}
	defer unlock()

	prev, err := p.currentManifest()
	if err != nil {
		return nil, err
	}

	if err := p.writeModuleBlob(name, blobDigest, moduleText); err != nil {
		return nil, err
	}

	modules := mergeModuleRefs(prev, ModuleRef{
		Name:   name,
		Digest: blobDigest,
		Path:   filepath.Join("modules", name, blobDigest+".axi"),
	})

	snapshotID := acceptedSnapshotID(modules)
	manifest := &AcceptedManifest{SnapshotID: snapshotID, Modules: modules, Message: message}

	if err := writeJSONAtomic(filepath.Join(p.snapshotsDir(), snapshotID+".json"), manifest); err != nil {
		return nil, err
	}
	if err := appendJSONLine(p.acceptedLog(), acceptedLogEntry{
		Time: time.Now().UTC(), Op: "promote", SnapshotID: snapshotID,
		Name: name, Digest: blobDigest, Message: message,
	}); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(p.headFile(), []byte(snapshotID)); err != nil {
		return nil, err
	}

	p.log.WithFields(map[string]interface{}{
		"snapshot_id": snapshotID, "op": "promote", "module": name,
	}).Info("promoted")

	return manifest, nil
}

// ModuleByDigest loads and parses the accepted module blob whose digest
// matches digest, searching the manifest HEAD currently points to. It is
// the read path a certificate verifier uses to recover the *axi.Module an
// Anchor's digest refers to.
func (p *Plane) ModuleByDigest(digest string) (*axi.Module, error) {
	current, err := p.currentManifest()
	if err != nil {
		return nil, err
	}
	for _, ref := range current.Modules {
		if ref.Digest != digest {
			continue
		}
		text, err := os.ReadFile(filepath.Join(p.dir, ref.Path))
		if err != nil {
			return nil, errors.Wrapf(err, "plane: reading module blob %s", ref.Path)
		}
		m, err := axi.Parse(string(text))
		if err != nil {
			return nil, ErrInvalidModule.New(err.Error())
		}
		return m, nil
	}
	return nil, ErrNotFound.New("no accepted module with digest " + digest)
}

// currentManifest loads the manifest HEAD currently points to, or a
// manifest with no modules if the plane has never been promoted.
func (p *Plane) currentManifest() (*AcceptedManifest, error) {
	head, ok, err := readHead(p.headFile())
	if err != nil {
		return nil, err
	}
	if !ok {
		return &AcceptedManifest{}, nil
	}
	var m AcceptedManifest
	if err := readJSON(filepath.Join(p.snapshotsDir(), head+".json"), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (p *Plane) writeModuleBlob(name, blobDigest, text string) error {
	dir := p.moduleDir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "plane: creating %s", dir)
	}
	path := filepath.Join(dir, blobDigest+".axi")
	if _, err := os.Stat(path); err == nil {
		return nil // already written: blobs are immutable and content-addressed
	}
	return writeFileAtomic(path, []byte(text))
}

// mergeModuleRefs returns prev's modules with next applied: an existing
// entry for next.Name is replaced, otherwise next is appended, then the
// result is returned sorted by name for deterministic manifest rendering.
func mergeModuleRefs(prev *AcceptedManifest, next ModuleRef) []ModuleRef {
	byName := make(map[string]ModuleRef)
	if prev != nil {
		for _, m := range prev.Modules {
			byName[m.Name] = m
		}
	}
	byName[next.Name] = next

	out := make([]ModuleRef, 0, len(byName))
	for _, m := range byName {
		out = append(out, m)
	}
	sortModuleRefs(out)
	return out
}

func sortModuleRefs(refs []ModuleRef) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && refs[j].Name < refs[j-1].Name; j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
}

// acceptedSnapshotID is the FNV1a-64 digest over the lexicographically
// ordered set of "name=digest" pairs, per spec.md's invariant 6.
func acceptedSnapshotID(modules []ModuleRef) string {
	pairs := make([]string, len(modules))
	for i, m := range modules {
		pairs[i] = m.Name + "=" + m.Digest
	}
	return digest.OrderedSet(pairs)
}
