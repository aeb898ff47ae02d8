// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package server is the HTTP face of the image resizer: a stateless gin
// service exposing POST /resize and GET /health.
package server
