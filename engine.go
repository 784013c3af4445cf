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

package axiograph

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	errkind "gopkg.in/src-d/go-errors.v1"

	"github.com/josephjohncox/axiograph-sub002/auth"
	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/axql"
	"github.com/josephjohncox/axiograph-sub002/cert"
	"github.com/josephjohncox/axiograph-sub002/checker"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
	"github.com/josephjohncox/axiograph-sub002/plane"
)

// ErrNoSnapshotLoaded is returned by Query when no PathDB snapshot has
// been loaded yet via LoadSnapshot.
var ErrNoSnapshotLoaded = errkind.NewKind("axiograph: no PathDB snapshot loaded")

// Engine ties the snapshot plane, one loaded PathDB snapshot, and the AxQL
// executor together, mirroring the teacher's Engine struct (Analyzer +
// ProcessList + ... behind a Config/New/NewDefault constructor trio).
type Engine struct {
	cfg   *Config
	Plane *plane.Plane

	mu         sync.RWMutex
	db         *pathdb.PathDB
	names      map[string]pathdb.EntityID
	snapshotID string

	log *logrus.Entry
}

// New creates an Engine with custom configuration. To create an Engine
// with the default settings use NewDefault.
func New(cfg *Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	p, err := plane.New(cfg.PlaneDir, plane.WithAuthorizer(cfg.Authorizer), plane.WithLogger(cfg.Logger))
	if err != nil {
		return nil, errors.Wrap(err, "axiograph: opening plane")
	}

	return &Engine{
		cfg:   cfg,
		Plane: p,
		log:   cfg.Logger.WithField("system", "axiograph"),
	}, nil
}

// NewDefault creates a new default Engine rooted at dir.
func NewDefault(dir string) (*Engine, error) {
	return New(&Config{PlaneDir: dir})
}

// Promote delegates to Plane.Promote, requiring RoleMaster.
func (e *Engine) Promote(role auth.Role, name, moduleText, message string) (*plane.AcceptedManifest, error) {
	return e.Plane.Promote(role, name, moduleText, message)
}

// PathDBCommit delegates to Plane.PathDBCommit, requiring RoleMaster.
func (e *Engine) PathDBCommit(role auth.Role, ops []plane.WalOp, message string) (*plane.PathDBManifest, error) {
	return e.Plane.PathDBCommit(role, ops, message)
}

// LoadSnapshot resolves spec against the PathDB plane and loads it into
// the engine, replacing whatever snapshot was previously loaded. rebuild
// selects pathdb-build's rebuild mode (replay from the accepted module
// plus every WAL op) over checkout (read an existing binary checkpoint).
// Either way LoadSnapshot separately recomputes the declared-name index so
// named constants resolve the same regardless of which path loaded the
// PathDB; a checkout's .axpd blob itself carries no names (it is purely
// id-based, per spec.md §4.3).
func (e *Engine) LoadSnapshot(spec string, rebuild bool) (string, error) {
	db, pid, err := e.Plane.PathDBBuild(spec, rebuild)
	if err != nil {
		return "", err
	}

	names, err := e.Plane.NamesForPathDB(pid)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.db = db
	e.names = names
	e.snapshotID = pid

	e.log.WithFields(logrus.Fields{"snapshot_id": pid, "rebuild": rebuild}).Info("loaded snapshot")
	return pid, nil
}

// SnapshotID returns the currently loaded PathDB snapshot id, or "" if
// none is loaded.
func (e *Engine) SnapshotID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotID
}

// QueryOptions controls certificate generation for Query.
type QueryOptions struct {
	// Certify attaches a query_result_v3 certificate envelope to the
	// response, anchored to AnchorDigest.
	Certify bool
	// AnchorDigest is the .axi module digest the certificate should be
	// anchored to; required when Certify is true.
	AnchorDigest string
	// Verify re-verifies the freshly emitted certificate through the
	// checker package before returning, so a caller never receives a
	// certificate this process itself would reject.
	Verify bool
}

// QueryResponse is the result of Query: the raw AxQL result plus an
// optional certificate envelope.
type QueryResponse struct {
	Result    *axql.Result
	Envelope  *cert.Envelope
	CheckedOK bool
	Duration  time.Duration
}

// Query parses src as AxQL surface syntax, executes it against the
// currently loaded snapshot, and optionally emits (and verifies) a
// query_result_v3 certificate, mirroring the HTTP contract's
// `POST /query` `certify`/`verify` flags (spec.md §5, collaborator
// surface only — this method is the core logic behind it).
func (e *Engine) Query(ctx context.Context, src string, opts QueryOptions) (*QueryResponse, error) {
	q, err := axql.Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, "axiograph: parsing query")
	}
	if q.Options.MaxHops == 0 {
		q.Options.MaxHops = e.cfg.DefaultMaxHops
	}

	e.mu.RLock()
	db, names := e.db, e.names
	e.mu.RUnlock()
	if db == nil {
		return nil, ErrNoSnapshotLoaded.New()
	}

	start := time.Now()
	exec := axql.NewExecutor(db, names)
	res, err := exec.Execute(ctx, q)
	duration := time.Since(start)

	e.log.WithFields(logrus.Fields{"op": "query", "duration": duration, "err": err}).Info("query executed")
	if err != nil {
		return nil, err
	}

	resp := &QueryResponse{Result: res, Duration: duration}
	if !opts.Certify {
		return resp, nil
	}

	env, err := cert.EmitQueryResultV3(q.Vars, res, names, opts.AnchorDigest)
	if err != nil {
		return nil, errors.Wrap(err, "axiograph: emitting certificate")
	}
	resp.Envelope = env

	if opts.Verify {
		anchor, err := e.Plane.ModuleByDigest(opts.AnchorDigest)
		if err != nil {
			return nil, err
		}
		results, err := checker.Check([]*axi.Module{anchor}, []*cert.Envelope{env})
		if err != nil {
			return nil, errors.Wrap(err, "axiograph: verifying certificate")
		}
		resp.CheckedOK = len(results) == 1 && results[0].OK
	}

	return resp, nil
}
