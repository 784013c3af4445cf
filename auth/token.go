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

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrParseTokenFile mirrors the teacher's auth.ErrParseUserFile.
var ErrParseTokenFile = errors.NewKind("auth: could not parse token file: %s")

// ErrDuplicateToken mirrors the teacher's auth.ErrDuplicateUser.
var ErrDuplicateToken = errors.NewKind("auth: duplicate token entry %q")

// tokenEntry is the JSON shape of one entry of a token file, mirroring the
// teacher's nativeUser JSON shape (Name/Password/JSONPermissions).
type tokenEntry struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// fingerprint returns the sha256 digest of a token, so the in-memory table
// never retains the bearer token itself, only its constant-time-comparable
// digest.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", sum)
}

// BearerAuthorizer is the bearer-token analogue of the teacher's
// auth.Native: it resolves a presented token to a Role, then delegates the
// role/op decision to StaticAuthorizer.
type BearerAuthorizer struct {
	StaticAuthorizer
	tokens map[string]Role // fingerprint(token) -> Role
}

// NewBearerSingle builds a BearerAuthorizer with a single master token, the
// bearer-auth analogue of the teacher's NewNativeSingle (one admin user).
func NewBearerSingle(masterToken string) *BearerAuthorizer {
	return &BearerAuthorizer{tokens: map[string]Role{
		fingerprint(masterToken): RoleMaster,
	}}
}

// NewBearerFile loads a token file holding a single JSON array of
// tokenEntry objects, mirroring the teacher's NewNativeFile.
func NewBearerFile(path string) (*BearerAuthorizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrParseTokenFile.Wrap(err)
	}
	defer f.Close()

	var entries []tokenEntry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, ErrParseTokenFile.New(err.Error())
	}

	tokens := make(map[string]Role, len(entries))
	for _, e := range entries {
		role, err := ParseRole(e.Role)
		if err != nil {
			return nil, ErrParseTokenFile.Wrap(err)
		}
		fp := fingerprint(e.Token)
		if _, dup := tokens[fp]; dup {
			return nil, ErrDuplicateToken.New(e.Token)
		}
		tokens[fp] = role
	}
	return &BearerAuthorizer{tokens: tokens}, nil
}

// Authenticate resolves a bearer token to its Role. Lookup is by digest;
// the presented token is hashed and compared in constant time against each
// stored fingerprint so a timing side channel cannot narrow down a valid
// token character by character.
func (b *BearerAuthorizer) Authenticate(token string) (Role, error) {
	want := fingerprint(token)
	for fp, role := range b.tokens {
		if subtle.ConstantTimeCompare([]byte(fp), []byte(want)) == 1 {
			return role, nil
		}
	}
	return 0, ErrBadToken.New()
}

// AllowToken authenticates token and checks the resulting role against op
// in one call, the shape a request handler actually wants.
func (b *BearerAuthorizer) AllowToken(token string, op Op) error {
	role, err := b.Authenticate(token)
	if err != nil {
		return ErrNotAuthorized.Wrap(err)
	}
	return b.Allow(role, op)
}
