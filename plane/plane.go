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
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/josephjohncox/axiograph-sub002/auth"
)

// Plane is one accepted-plane directory plus its PathDB WAL overlay. Write
// operations (promote, pathdb-commit) are serialized through mu, mirroring
// the teacher driver's single mutex guarding its catalog map — the
// file-level exclusive lock spec.md §5 describes is layered on top of this
// in-process mutex so a single process never races itself, and a
// concurrent external writer is caught by the HEAD lock file.
type Plane struct {
	mu   sync.Mutex
	dir  string
	auth auth.Authorizer
	log  *logrus.Entry
}

// Option configures a Plane at construction time.
type Option func(*Plane)

// WithAuthorizer overrides the default StaticAuthorizer used to gate
// master-only operations.
func WithAuthorizer(a auth.Authorizer) Option {
	return func(p *Plane) { p.auth = a }
}

// WithLogger overrides the default logrus.StandardLogger used for
// promote/commit/sync audit logging.
func WithLogger(l *logrus.Logger) Option {
	return func(p *Plane) { p.log = l.WithField("system", "plane") }
}

// New opens (creating if absent) an accepted-plane directory rooted at
// dir, laying out the subdirectories spec.md §4.5 names.
func New(dir string, opts ...Option) (*Plane, error) {
	p := &Plane{
		dir:  dir,
		auth: auth.StaticAuthorizer{},
		log:  logrus.StandardLogger().WithField("system", "plane"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.ensureLayout(); err != nil {
		return nil, err
	}
	return p, nil
}

// Dir returns the plane's root directory.
func (p *Plane) Dir() string { return p.dir }

func (p *Plane) modulesDir() string           { return filepath.Join(p.dir, "modules") }
func (p *Plane) moduleDir(name string) string { return filepath.Join(p.modulesDir(), name) }
func (p *Plane) snapshotsDir() string         { return filepath.Join(p.dir, "snapshots") }
func (p *Plane) acceptedLog() string          { return filepath.Join(p.dir, "accepted_plane.log.jsonl") }
func (p *Plane) headFile() string             { return filepath.Join(p.dir, "HEAD") }

func (p *Plane) pathdbDir() string          { return filepath.Join(p.dir, "pathdb") }
func (p *Plane) pathdbBlobsDir() string     { return filepath.Join(p.pathdbDir(), "blobs") }
func (p *Plane) pathdbSnapshotsDir() string { return filepath.Join(p.pathdbDir(), "snapshots") }
func (p *Plane) pathdbCheckpointsDir() string {
	return filepath.Join(p.pathdbDir(), "checkpoints")
}
func (p *Plane) pathdbWalLog() string { return filepath.Join(p.pathdbDir(), "pathdb_wal.log.jsonl") }
func (p *Plane) pathdbHeadFile() string { return filepath.Join(p.pathdbDir(), "HEAD") }

func (p *Plane) ensureLayout() error {
	dirs := []string{
		p.modulesDir(), p.snapshotsDir(),
		p.pathdbBlobsDir(), p.pathdbSnapshotsDir(), p.pathdbCheckpointsDir(),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return errors.Wrapf(err, "plane: creating %s", d)
		}
	}
	return nil
}

// requireMaster authorizes op for role, mirroring the teacher's
// ctx.Allowed(permission) guard at the top of every mutating handler.
func (p *Plane) requireMaster(role auth.Role, op auth.Op) error {
	if err := p.auth.Allow(role, op); err != nil {
		return ErrNotMaster.Wrap(err)
	}
	return nil
}
