// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package storage wraps the S3 buckets the image resize job reads from and
// writes to behind a small ObjectStore interface.
package storage
