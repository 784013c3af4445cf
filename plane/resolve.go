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
	"strings"

	"github.com/pkg/errors"
)

// ResolveAcceptedSnapshotID resolves spec ("head", a full snapshot id, or
// a unique id prefix) against the accepted plane's snapshots directory.
func (p *Plane) ResolveAcceptedSnapshotID(spec string) (string, error) {
	return resolveSnapshotID(spec, p.snapshotsDir(), p.headFile)
}

// ResolvePathDBSnapshotID resolves spec against the PathDB snapshots
// directory.
func (p *Plane) ResolvePathDBSnapshotID(spec string) (string, error) {
	return resolveSnapshotID(spec, p.pathdbSnapshotsDir(), p.pathdbHeadFile)
}

func resolveSnapshotID(spec, dir string, headFile func() string) (string, error) {
	if spec == "" || spec == "head" {
		head, ok, err := readHead(headFile())
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNotFound.New("HEAD has no snapshot yet")
		}
		return head, nil
	}

	ids, err := listSnapshotIDs(dir)
	if err != nil {
		return "", err
	}

	for _, id := range ids {
		if id == spec {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, spec) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", ErrNotFound.New(spec)
	case 1:
		return matches[0], nil
	default:
		return "", ErrAmbiguousPrefix.New(spec, matches)
	}
}

func listSnapshotIDs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "plane: listing %s", dir)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}
