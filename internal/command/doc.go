// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for cloudchore. It wires flags,
// validators, actions, and shell completion for subcommands.
package command
