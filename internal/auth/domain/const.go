// Package domain defines the identity model shared by every datashare context:
// clients that authenticate with a generated secret, the bearer tokens they are
// issued, and the signed audit log recording what each identity did.
package domain

import "time"

// Action names an audited operation.
type Action string

// SystemCaller is the identity recorded for operations executed outside any
// authenticated request (local CLI, initialization).
const SystemCaller = "system"

// DefaultLockoutDuration is used when no lockout duration is configured.
const DefaultLockoutDuration = 30 * time.Minute
