// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package event parses AWS Budgets push notifications handed to the check
// command. The payload is informational only; a check run always measures
// spend itself via Cost Explorer.
package event
