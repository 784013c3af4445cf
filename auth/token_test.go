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

package auth_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/josephjohncox/axiograph-sub002/auth"
)

func TestBearerSingleAuthenticatesMasterToken(t *testing.T) {
	a := auth.NewBearerSingle("s3cr3t")

	role, err := a.Authenticate("s3cr3t")
	require.NoError(t, err)
	require.Equal(t, auth.RoleMaster, role)

	_, err = a.Authenticate("wrong")
	require.Error(t, err)
	require.True(t, auth.ErrBadToken.Is(err))
}

func TestBearerSingleAllowToken(t *testing.T) {
	a := auth.NewBearerSingle("s3cr3t")

	require.NoError(t, a.AllowToken("s3cr3t", auth.OpPromote))

	err := a.AllowToken("wrong", auth.OpPromote)
	require.Error(t, err)
	require.True(t, auth.ErrNotAuthorized.Is(err))
}

const tokenFile = `[
	{"token": "master-tok", "role": "master"},
	{"token": "replica-tok", "role": "replica"}
]`

func writeTokenFile(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "tokens-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(tokenFile)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestBearerFileLoadsRoles(t *testing.T) {
	path := writeTokenFile(t)

	a, err := auth.NewBearerFile(path)
	require.NoError(t, err)

	role, err := a.Authenticate("master-tok")
	require.NoError(t, err)
	require.Equal(t, auth.RoleMaster, role)

	role, err = a.Authenticate("replica-tok")
	require.NoError(t, err)
	require.Equal(t, auth.RoleReplica, role)

	require.Error(t, a.AllowToken("replica-tok", auth.OpCommit))
	require.NoError(t, a.AllowToken("master-tok", auth.OpCommit))
}

func TestBearerFileRejectsUnknownRole(t *testing.T) {
	path := writeTokenFile(t)
	os.WriteFile(path, []byte(`[{"token": "x", "role": "superuser"}]`), 0o600)

	_, err := auth.NewBearerFile(path)
	require.Error(t, err)
}

func TestBearerFileRejectsMissingFile(t *testing.T) {
	_, err := auth.NewBearerFile("/no/such/file.json")
	require.Error(t, err)
	require.True(t, auth.ErrParseTokenFile.Is(err))
}
