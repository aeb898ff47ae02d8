// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package resize implements the raster core of the image resize job: decode,
// scale, re-encode. It is storage- and transport-agnostic so the same code
// serves the HTTP handler and the one-shot CLI command.
package resize
