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

	"github.com/pkg/errors"

	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/axpd"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

func (p *Plane) checkpointPath(pid string) string {
	return filepath.Join(p.pathdbCheckpointsDir(), pid+".axpd")
}

// PathDBBuild resolves spec to a PathDB snapshot id and loads it, either by
// checkout (O(1) apart from I/O, requires an existing checkpoint) or by
// rebuild (replays the accepted snapshot's module plus every WAL op from
// scratch, then writes a fresh checkpoint).
func (p *Plane) PathDBBuild(spec string, rebuild bool) (*pathdb.PathDB, string, error) {
	pid, err := p.ResolvePathDBSnapshotID(spec)
	if err != nil {
		return nil, "", err
	}
	if !rebuild {
		db, err := p.checkout(pid)
		return db, pid, err
	}
	db, _, err := p.rebuildWithNames(pid)
	return db, pid, err
}

// NamesForPathDB returns the name index a rebuild of pid would produce,
// without discarding it the way PathDBBuild's plain rebuild path does.
// Callers that already hold a checked-out PathDB (cheap, but nameless
// since .axpd carries no names) use this to recover a name index for
// query constant resolution. It performs a full rebuild, which also
// rewrites pid's checkpoint.
func (p *Plane) NamesForPathDB(pid string) (map[string]pathdb.EntityID, error) {
	_, names, err := p.rebuildWithNames(pid)
	return names, err
}

// checkout reads the existing checkpoint file and decodes it with
// axpd.Read — the "O(1) apart from I/O" cost spec.md §4.5 describes, as
// opposed to rebuild's full module-import-plus-WAL-replay.
func (p *Plane) checkout(pid string) (*pathdb.PathDB, error) {
	path := p.checkpointPath(pid)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound.New("no checkpoint for snapshot " + pid)
		}
		return nil, errors.Wrapf(err, "plane: reading checkpoint %s", path)
	}
	return axpd.Read(data)
}

// rebuildWithNames loads the accepted snapshot's module, imports it into a
// fresh PathDB, replays every WAL op in order, and writes a new checkpoint
// (overwriting any stale one for this pid; since the pid is content
// derived the result is byte-identical to a prior checkpoint for the same
// pid). It returns the name index axi.Import seeded and every WAL op
// extended, so a rebuild never needs a second pass to resolve named
// constants the way a plain checkout does.
func (p *Plane) rebuildWithNames(pid string) (*pathdb.PathDB, map[string]pathdb.EntityID, error) {
	var manifest PathDBManifest
	if err := readJSON(filepath.Join(p.pathdbSnapshotsDir(), pid+".json"), &manifest); err != nil {
		return nil, nil, ErrNotFound.New("no PathDB manifest for snapshot " + pid)
	}

	var accepted AcceptedManifest
	if err := readJSON(filepath.Join(p.snapshotsDir(), manifest.AcceptedSnapshotID+".json"), &accepted); err != nil {
		return nil, nil, ErrNotFound.New("no accepted manifest for " + manifest.AcceptedSnapshotID)
	}
	if len(accepted.Modules) != 1 {
		return nil, nil, ErrCannotRebuild.New(pid, "accepted snapshot must contain exactly one module")
	}
	ref := accepted.Modules[0]

	text, err := os.ReadFile(filepath.Join(p.dir, ref.Path))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "plane: reading module blob %s", ref.Path)
	}
	m, err := axi.Parse(string(text))
	if err != nil {
		return nil, nil, ErrInvalidModule.New(err.Error())
	}

	db, names, err := axi.Import(m)
	if err != nil {
		return nil, nil, errors.Wrap(err, "plane: importing module")
	}

	for _, ref := range manifest.WalOps {
		op, err := parseWalOp(ref)
		if err != nil {
			return nil, nil, err
		}
		if err := p.replayWalOp(db, names, op); err != nil {
			return nil, nil, errors.Wrapf(err, "plane: replaying WAL op %s", ref)
		}
	}

	data, err := axpd.Write(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "plane: encoding checkpoint")
	}
	if err := writeFileAtomic(p.checkpointPath(pid), data); err != nil {
		return nil, nil, err
	}

	return db, names, nil
}

// replayWalOp applies one WAL op to db. ImportChunksV1 is evidentiary only
// (chunks back proposal evidence lists but are not themselves facts) and
// is validated but otherwise skipped. ImportProposalsV1 adds an entity or
// relation per record, extending names with newly created entities keyed
// by proposal id so a later proposal in the same or a subsequent op can
// reference it as src/dst.
func (p *Plane) replayWalOp(db *pathdb.PathDB, names map[string]pathdb.EntityID, op WalOp) error {
	switch op.Kind {
	case OpImportChunksV1:
		_, err := p.loadChunks(op.Digest)
		return err
	case OpImportProposalsV1:
		records, err := p.loadProposals(op.Digest)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if err := applyProposal(db, names, rec); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("plane: unknown WAL op kind %q", op.Kind)
	}
}

func applyProposal(db *pathdb.PathDB, names map[string]pathdb.EntityID, rec ProposalRecord) error {
	switch rec.Kind {
	case "entity":
		typeID := db.Interner.InternString(rec.Type)
		attrs := internAttrs(db, rec.Attrs)
		id := db.AddEntity(typeID, attrs)
		names[rec.ProposalID] = id
		return nil
	case "relation":
		src, ok := names[rec.Src]
		if !ok {
			return ErrNotFound.New("proposal relation references unknown src " + rec.Src)
		}
		dst, ok := names[rec.Dst]
		if !ok {
			return ErrNotFound.New("proposal relation references unknown dst " + rec.Dst)
		}
		relType := db.Interner.InternString(rec.RelType)
		conf, err := pathdb.NewVProb(rec.Confidence)
		if err != nil {
			return err
		}
		_, err = db.AddRelation(relType, src, dst, conf, nil)
		return err
	default:
		return errors.Errorf("plane: unknown proposal kind %q", rec.Kind)
	}
}

func internAttrs(db *pathdb.PathDB, attrs map[string]string) map[uint32]uint32 {
	out := make(map[uint32]uint32, len(attrs))
	for k, v := range attrs {
		out[db.Interner.InternString(k)] = db.Interner.InternString(v)
	}
	return out
}
