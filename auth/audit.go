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
	"github.com/sirupsen/logrus"
)

// AuditMethod is called to log the audit trail of role-gated actions,
// mirroring the teacher's auth.AuditMethod (Authentication/Authorization)
// narrowed to this package's Role/Op vocabulary.
type AuditMethod interface {
	Authorization(role Role, op Op, err error)
}

// AuditLog logs audit trails to a logrus.Logger, mirroring the teacher's
// auth.AuditLog.
type AuditLog struct {
	log *logrus.Entry
}

// NewAuditLog creates an AuditMethod that logs to l with a fixed
// "system"="audit" field, matching the teacher's NewAuditLog.
func NewAuditLog(l *logrus.Logger) *AuditLog {
	return &AuditLog{log: l.WithField("system", "audit")}
}

const auditLogMessage = "audit trail"

// Authorization implements AuditMethod.
func (a *AuditLog) Authorization(role Role, op Op, err error) {
	fields := logrus.Fields{
		"action":  "authorization",
		"role":    role.String(),
		"op":      op.String(),
		"success": true,
	}
	if err != nil {
		fields["success"] = false
		fields["err"] = err
	}
	a.log.WithFields(fields).Info(auditLogMessage)
}

// Audited wraps an Authorizer so every Allow call is reported to method,
// mirroring the teacher's Audit proxy over Auth.
type Audited struct {
	Authorizer
	method AuditMethod
}

// NewAudited wraps auth so every Allow call is sent to method.
func NewAudited(auth Authorizer, method AuditMethod) *Audited {
	return &Audited{Authorizer: auth, method: method}
}

// Allow implements Authorizer, delegating then auditing the outcome.
func (a *Audited) Allow(role Role, op Op) error {
	err := a.Authorizer.Allow(role, op)
	a.method.Authorization(role, op, err)
	return err
}
