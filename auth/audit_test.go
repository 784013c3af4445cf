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
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/josephjohncox/axiograph-sub002/auth"
)

func TestAuditedLogsEachAllowCall(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	audited := auth.NewAudited(auth.StaticAuthorizer{}, auth.NewAuditLog(logger))

	require.NoError(t, audited.Allow(auth.RoleMaster, auth.OpPromote))
	require.Error(t, audited.Allow(auth.RoleReplica, auth.OpCommit))

	out := buf.String()
	require.Contains(t, out, `"action":"authorization"`)
	require.Contains(t, out, `"role":"master"`)
	require.Contains(t, out, `"role":"replica"`)
	require.Contains(t, out, `"success":false`)
}
