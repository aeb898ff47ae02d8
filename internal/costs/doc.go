// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package costs implements the fetch and evaluate steps of the cost check
// job: a Cost Explorer snapshot of month-to-date spend and the threshold
// classification that drives alerting and the nuke pass.
package costs
