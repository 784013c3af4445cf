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
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Layer selects which half of the plane a Sync call touches.
type Layer string

const (
	LayerAccepted Layer = "accepted"
	LayerPathDB   Layer = "pathdb"
	LayerBoth     Layer = "both"
)

// Sync copies every immutable object present in src but missing from dst
// (under modules/ and pathdb/blobs/, plus snapshot manifests, and
// optionally checkpoints), then optionally advances dst's HEAD to src's.
// Every object copy lands under a temp name before being linked into
// place, so a crash mid-sync leaves dst valid against its old HEAD — the
// crash-safety property spec.md §4.5 requires because objects are
// immutable and HEAD is a small pointer.
func (dst *Plane) Sync(src *Plane, layer Layer, includeCheckpoints, advanceHead bool) error {
	if layer == LayerAccepted || layer == LayerBoth {
		if err := syncDir(src.modulesDir(), dst.modulesDir()); err != nil {
			return err
		}
		if err := syncDir(src.snapshotsDir(), dst.snapshotsDir()); err != nil {
			return err
		}
		if advanceHead {
			if err := syncHead(src.headFile(), dst.headFile()); err != nil {
				return err
			}
		}
	}

	if layer == LayerPathDB || layer == LayerBoth {
		if err := syncDir(src.pathdbBlobsDir(), dst.pathdbBlobsDir()); err != nil {
			return err
		}
		if err := syncDir(src.pathdbSnapshotsDir(), dst.pathdbSnapshotsDir()); err != nil {
			return err
		}
		if includeCheckpoints {
			if err := syncDir(src.pathdbCheckpointsDir(), dst.pathdbCheckpointsDir()); err != nil {
				return err
			}
		}
		if advanceHead {
			if err := syncHead(src.pathdbHeadFile(), dst.pathdbHeadFile()); err != nil {
				return err
			}
		}
	}

	return nil
}

// syncDir copies every file present in srcDir but absent from dstDir.
// srcDir's contents are immutable (content-addressed), so a name already
// present in dstDir is never re-copied.
func syncDir(srcDir, dstDir string) error {
	entries, err := os.ReadDir(srcDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "plane: listing %s", srcDir)
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return errors.Wrapf(err, "plane: creating %s", dstDir)
	}

	for _, e := range entries {
		if e.IsDir() {
			if err := syncDir(filepath.Join(srcDir, e.Name()), filepath.Join(dstDir, e.Name())); err != nil {
				return err
			}
			continue
		}
		dstPath := filepath.Join(dstDir, e.Name())
		if _, err := os.Stat(dstPath); err == nil {
			continue // already present, objects are immutable
		}
		if err := copyFileAtomic(filepath.Join(srcDir, e.Name()), dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFileAtomic(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return errors.Wrapf(err, "plane: opening %s", srcPath)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "plane: creating temp file for %s", dstPath)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "plane: copying %s", srcPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dstPath); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "plane: renaming into %s", dstPath)
	}
	return nil
}

func syncHead(srcHead, dstHead string) error {
	data, ok, err := readHead(srcHead)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return writeFileAtomic(dstHead, []byte(data))
}
