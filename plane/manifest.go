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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ModuleRef is one entry of an accepted snapshot manifest: a named module
// blob and the digest that content-addresses it.
type ModuleRef struct {
	Name   string `json:"name"`
	Digest string `json:"digest"`
	Path   string `json:"path"`
}

// AcceptedManifest is the JSON shape of snapshots/<snapshot_id>.json: the
// ordered set of named module blobs accepted as of this snapshot.
type AcceptedManifest struct {
	SnapshotID string      `json:"snapshot_id"`
	Modules    []ModuleRef `json:"modules"`
	Message    string      `json:"message"`
}

// PathDBManifest is the JSON shape of pathdb/snapshots/<pid>.json: a
// PathDB snapshot id, the accepted snapshot it extends, and the ordered
// WAL op references applied on top of it.
type PathDBManifest struct {
	SnapshotID        string   `json:"snapshot_id"`
	AcceptedSnapshotID string  `json:"accepted_snapshot_id"`
	WalOps            []string `json:"wal_ops"`
	Message           string   `json:"message"`
}

// writeJSONAtomic marshals v and writes it to path via a temp file plus
// rename, so a crash mid-write never leaves a partially written object
// visible under its final name (spec.md §5's crash-safety requirement for
// sync applies equally to every other write in the plane).
func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "plane: marshaling")
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "plane: creating temp file in %s", dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "plane: writing %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "plane: closing %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "plane: renaming %s to %s", tmpName, path)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "plane: reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "plane: unmarshaling %s", path)
	}
	return nil
}

func appendJSONLine(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "plane: marshaling audit entry")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "plane: opening %s", path)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return errors.Wrapf(err, "plane: appending to %s", path)
	}
	return nil
}

func readHead(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "plane: reading %s", path)
	}
	return string(data), true, nil
}
