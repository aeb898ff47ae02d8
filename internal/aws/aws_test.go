// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithProfile verifies that WithProfile sets the profile option
// correctly.
func TestWithProfile(t *testing.T) {
	tests := []struct {
		name     string
		profile  string
		expected string
	}{
		{
			name:     "empty profile",
			profile:  "",
			expected: "",
		},
		{
			name:     "default profile",
			profile:  "default",
			expected: "default",
		},
		{
			name:     "custom profile",
			profile:  "my-profile",
			expected: "my-profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options
			opt := WithProfile(tt.profile)
			opt(&opts)
			assert.Equal(t, tt.expected, opts.profile)
		})
	}
}

// TestWithRegion verifies that WithRegion sets the region option
// correctly.
func TestWithRegion(t *testing.T) {
	tests := []struct {
		name     string
		region   string
		expected string
	}{
		{
			name:     "empty region",
			region:   "",
			expected: "",
		},
		{
			name:     "us-east-1",
			region:   "us-east-1",
			expected: "us-east-1",
		},
		{
			name:     "eu-west-1",
			region:   "eu-west-1",
			expected: "eu-west-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options
			opt := WithRegion(tt.region)
			opt(&opts)
			assert.Equal(t, tt.expected, opts.region)
		})
	}
}

// TestWithRetryer verifies that WithRetryer sets the retryer function
// option.
func TestWithRetryer(t *testing.T) {
	mockRetryer := func() awsv2.Retryer {
		return retry.NewStandard()
	}

	var opts options
	opt := WithRetryer(mockRetryer)
	opt(&opts)

	assert.NotNil(t, opts.retryer)
	result := opts.retryer()
	assert.NotNil(t, result)
}

// TestLoadAWSConfig_WithRegion verifies that region option is applied
// during config loading.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	ctx := context.Background()
	testRegion := "us-west-2"

	cfg, err := LoadAWSConfig(ctx, WithRegion(testRegion))

	assert.NoError(t, err)
	assert.Equal(t, testRegion, cfg.Region)
}

// TestClientConstructors verifies each service client constructor returns
// a usable client from a zero-value config.
func TestClientConstructors(t *testing.T) {
	ctx := context.Background()
	cfg, err := LoadAWSConfig(ctx, WithRegion("us-east-1"))
	require.NoError(t, err)

	assert.NotNil(t, NewS3(cfg))
	assert.NotNil(t, NewCostExplorer(cfg))
	assert.NotNil(t, NewEC2(cfg))
	assert.NotNil(t, NewRDS(cfg))
}
