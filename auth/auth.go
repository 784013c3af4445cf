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

// Package auth gates mutating snapshot-plane operations behind the
// master/replica role split: only master may promote or commit, replicas
// are read-only and watch HEAD.
package auth

import (
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"
)

// Role identifies which side of the single-writer split a caller is on.
type Role uint8

const (
	// RoleReplica may only read: query, sync, watch HEAD.
	RoleReplica Role = iota
	// RoleMaster may additionally promote and commit.
	RoleMaster
)

// RoleNames maps the lowercase wire representation to a Role, mirroring the
// teacher's PermissionNames lookup table used when parsing a user file.
var RoleNames = map[string]Role{
	"replica": RoleReplica,
	"master":  RoleMaster,
}

func (r Role) String() string {
	switch r {
	case RoleMaster:
		return "master"
	case RoleReplica:
		return "replica"
	default:
		return "unknown"
	}
}

// Op identifies an admin operation guarded by the role check.
type Op uint8

const (
	// OpQuery and OpSync are available to every role.
	OpQuery Op = iota
	OpSync
	// OpPromote and OpCommit are master-only: they mutate the accepted
	// plane or the PathDB WAL.
	OpPromote
	OpCommit
)

func (o Op) String() string {
	switch o {
	case OpQuery:
		return "query"
	case OpSync:
		return "sync"
	case OpPromote:
		return "promote"
	case OpCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// writeOps is the set of operations restricted to RoleMaster.
var writeOps = map[Op]bool{
	OpPromote: true,
	OpCommit:  true,
}

var (
	// ErrNotAuthorized mirrors the teacher's auth.ErrNotAuthorized: the
	// caller's role does not permit the requested operation.
	ErrNotAuthorized = errors.NewKind("auth: not authorized: %s")
	// ErrNoRole mirrors the teacher's auth.ErrNoPermission, renamed to the
	// role/op vocabulary used here.
	ErrNoRole = errors.NewKind("auth: role %q cannot perform %q")
	// ErrBadToken signals a missing or unrecognized bearer admin token.
	ErrBadToken = errors.NewKind("auth: bad bearer token")
)

// Authorizer is the role-gating analogue of the teacher's Auth interface:
// Allow replaces Allowed, Role replaces Permission.
type Authorizer interface {
	// Allow returns nil when role may perform op, otherwise an error
	// wrapping ErrNotAuthorized.
	Allow(role Role, op Op) error
}

// StaticAuthorizer implements Authorizer with the fixed write-op table
// above: every role may read, only RoleMaster may promote or commit.
type StaticAuthorizer struct{}

// Allow implements Authorizer.
func (StaticAuthorizer) Allow(role Role, op Op) error {
	if writeOps[op] && role != RoleMaster {
		return ErrNotAuthorized.Wrap(ErrNoRole.New(role, op))
	}
	return nil
}

// ParseRole parses the lowercase wire representation of a role, as found in
// a bearer token's claims or a CLI flag.
func ParseRole(s string) (Role, error) {
	role, ok := RoleNames[strings.ToLower(s)]
	if !ok {
		return 0, ErrNoRole.New(s, "<parse>")
	}
	return role, nil
}
