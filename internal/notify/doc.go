// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package notify delivers push notifications through ntfy and builds the
// canned alert texts the cost check job sends. Delivery is one attempt,
// fire-and-forget; a failed send must never abort the producing job.
package notify
