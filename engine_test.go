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

package axiograph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	axiograph "github.com/josephjohncox/axiograph-sub002"
	"github.com/josephjohncox/axiograph-sub002/auth"
	"github.com/josephjohncox/axiograph-sub002/plane"
)

const sampleModule = `
schema Chain {
  object Node
  relation r1(a: Node, b: Node)
}

instance Snap of Chain {
  Node = { A, B, C }
  r1 = { (a = A, b = B), (a = B, b = C) }
}
`

func newTestEngine(t *testing.T) *axiograph.Engine {
	t.Helper()
	e, err := axiograph.NewDefault(t.TempDir())
	require.NoError(t, err)
	return e
}

func TestQueryFailsWithoutLoadedSnapshot(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Query(context.Background(), "select ?x where ?x is Node", axiograph.QueryOptions{})
	require.Error(t, err)
	require.True(t, axiograph.ErrNoSnapshotLoaded.Is(err))
}

func TestQueryResolvesNamedConstantsAfterRebuild(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Promote(auth.RoleMaster, "chain", sampleModule, "initial import")
	require.NoError(t, err)

	_, err = e.PathDBCommit(auth.RoleMaster, nil, "empty commit")
	require.NoError(t, err)

	pid, err := e.LoadSnapshot("head", true)
	require.NoError(t, err)
	require.NotEmpty(t, pid)
	require.Equal(t, pid, e.SnapshotID())

	resp, err := e.Query(context.Background(), "select ?x where ?x is Node", axiograph.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Result.Rows, 3)
}

func TestQueryCertifyAndVerifyRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	manifest, err := e.Promote(auth.RoleMaster, "chain", sampleModule, "initial import")
	require.NoError(t, err)

	_, err = e.PathDBCommit(auth.RoleMaster, nil, "empty commit")
	require.NoError(t, err)

	_, err = e.LoadSnapshot("head", true)
	require.NoError(t, err)

	digest := manifest.Modules[0].Digest
	resp, err := e.Query(context.Background(), "select ?x where ?x is Node", axiograph.QueryOptions{
		Certify:      true,
		Verify:       true,
		AnchorDigest: digest,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Envelope)
	require.True(t, resp.CheckedOK)
}

func TestLoadSnapshotCheckoutMatchesRebuildEntityCount(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Promote(auth.RoleMaster, "chain", sampleModule, "initial import")
	require.NoError(t, err)

	op, err := e.Plane.MaterializeProposals([]plane.ProposalRecord{
		{Kind: "entity", Type: "Node", Attrs: map[string]string{"name": "D"}},
	})
	require.NoError(t, err)

	_, err = e.PathDBCommit(auth.RoleMaster, []plane.WalOp{op}, "add D")
	require.NoError(t, err)

	pid, err := e.LoadSnapshot("head", true)
	require.NoError(t, err)
	rebuiltResp, err := e.Query(context.Background(), "select ?x where ?x is Node", axiograph.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, rebuiltResp.Result.Rows, 4)

	_, err = e.LoadSnapshot(pid, false)
	require.NoError(t, err)
	checkedOutResp, err := e.Query(context.Background(), "select ?x where ?x is Node", axiograph.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, checkedOutResp.Result.Rows, 4)
}
