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

// Package axiograph wires the snapshot plane, the PathDB store, the AxQL
// planner/executor, and the certificate emitter/checker into a single
// query engine, mirroring the teacher's engine.go Config/New/NewDefault
// trio.
package axiograph

import (
	"github.com/sirupsen/logrus"

	"github.com/josephjohncox/axiograph-sub002/auth"
)

// Config configures a new Engine. A nil Config is equivalent to &Config{}.
type Config struct {
	// PlaneDir is the accepted-plane directory root (created if absent).
	PlaneDir string
	// Authorizer gates Promote/PathDBCommit; defaults to
	// auth.StaticAuthorizer{} (every role may read, only RoleMaster may
	// write).
	Authorizer auth.Authorizer
	// Logger receives structured plane and query logs; defaults to
	// logrus.StandardLogger().
	Logger *logrus.Logger
	// DefaultMaxHops bounds AxQL path-atom traversal depth when a query
	// does not set its own max_hops option, mirroring spec.md §4.6's
	// requirement that unbounded star/plus atoms carry a mandatory bound.
	DefaultMaxHops int
}

func (c *Config) withDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	cp := *c
	if cp.Authorizer == nil {
		cp.Authorizer = auth.StaticAuthorizer{}
	}
	if cp.Logger == nil {
		cp.Logger = logrus.StandardLogger()
	}
	if cp.DefaultMaxHops <= 0 {
		cp.DefaultMaxHops = 16
	}
	return &cp
}
