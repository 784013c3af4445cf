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

	"github.com/pkg/errors"
)

// lockHead acquires an O_EXCL lock file beside HEAD, the file-level
// exclusive lock spec.md §5 requires to serialize snapshot-plane writes on
// the master. The in-process mutex in Plane already serializes writers
// within one process; this lock file additionally protects against a
// second process (or a second Plane handle) racing the same directory.
func (p *Plane) lockHead() (unlock func(), err error) {
	return lockFile(p.headFile() + ".lock")
}

func (p *Plane) lockPathDBHead() (unlock func(), err error) {
	return lockFile(p.pathdbHeadFile() + ".lock")
}

func lockFile(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked.New(path)
		}
		return nil, errors.Wrapf(err, "plane: locking %s", path)
	}
	return func() {
		f.Close()
		os.Remove(path)
	}, nil
}
