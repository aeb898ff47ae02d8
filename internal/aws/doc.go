// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains AWS SDK bootstrap helpers shared by the jobs that
// interact with AWS services (S3, Cost Explorer, EC2, RDS).
package aws
