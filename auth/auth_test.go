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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/josephjohncox/axiograph-sub002/auth"
)

func TestStaticAuthorizerAllowsReadsForEveryRole(t *testing.T) {
	a := auth.StaticAuthorizer{}
	require.NoError(t, a.Allow(auth.RoleReplica, auth.OpQuery))
	require.NoError(t, a.Allow(auth.RoleReplica, auth.OpSync))
	require.NoError(t, a.Allow(auth.RoleMaster, auth.OpQuery))
}

func TestStaticAuthorizerRejectsReplicaWrites(t *testing.T) {
	a := auth.StaticAuthorizer{}

	err := a.Allow(auth.RoleReplica, auth.OpPromote)
	require.Error(t, err)
	require.True(t, auth.ErrNotAuthorized.Is(err))

	err = a.Allow(auth.RoleReplica, auth.OpCommit)
	require.Error(t, err)
	require.True(t, auth.ErrNotAuthorized.Is(err))
}

func TestStaticAuthorizerAllowsMasterWrites(t *testing.T) {
	a := auth.StaticAuthorizer{}
	require.NoError(t, a.Allow(auth.RoleMaster, auth.OpPromote))
	require.NoError(t, a.Allow(auth.RoleMaster, auth.OpCommit))
}

func TestParseRole(t *testing.T) {
	role, err := auth.ParseRole("MASTER")
	require.NoError(t, err)
	require.Equal(t, auth.RoleMaster, role)

	role, err = auth.ParseRole("replica")
	require.NoError(t, err)
	require.Equal(t, auth.RoleReplica, role)

	_, err = auth.ParseRole("admin")
	require.Error(t, err)
}
