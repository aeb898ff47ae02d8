// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "bare invocation gets help",
			args:     []string{"cloudchore"},
			expected: []string{"cloudchore", "--help"},
		},
		{
			name:     "command present is untouched",
			args:     []string{"cloudchore", "check"},
			expected: []string{"cloudchore", "check"},
		},
		{
			name:     "command with flags is untouched",
			args:     []string{"cloudchore", "nuke", "--dry-run"},
			expected: []string{"cloudchore", "nuke", "--dry-run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestHandleVersion(t *testing.T) {
	if handleVersion([]string{"cloudchore", "check"}) {
		t.Error("handleVersion matched without a version flag")
	}
	if !handleVersion([]string{"cloudchore", "--version"}) {
		t.Error("handleVersion missed --version")
	}
	if !handleVersion([]string{"cloudchore", "-v"}) {
		t.Error("handleVersion missed -v")
	}
}
