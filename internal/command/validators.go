// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func DimensionValidator(value any) error {
	v, ok := value.(int)
	if !ok || v <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

// ThresholdsValidator enforces the ordering between the two spend thresholds.
// Checked in the action since it spans two flags.
func ThresholdsValidator(alert, critical float64) error {
	if alert <= 0 || critical <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	if critical <= alert {
		return fmt.Errorf("critical threshold (%.2f) must be greater than alert threshold (%.2f)", critical, alert)
	}
	return nil
}
