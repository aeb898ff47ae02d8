// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report provides sorting, filtering, and emission utilities used by
// commands to present cost and cleanup results in various formats.
package report
