// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// dollars renders an amount the way the alert texts expect ($1,234.56).
func dollars(amount float64) string {
	return "$" + humanize.CommafWithDigits(amount, 2)
}

// bulleted renders items as a two-space-indented dash list, or a placeholder
// when empty.
func bulleted(items []string, empty string) string {
	if len(items) == 0 {
		return "  " + empty
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "  - " + item
	}
	return strings.Join(lines, "\n")
}

// Alert is the notification for alert_threshold <= cost < critical_threshold.
func Alert(total, threshold float64, period, forecastLine, topServices string) Message {
	body := fmt.Sprintf(`AWS Cost Alert

Current spending: %s USD
Alert threshold: %s USD
Period: %s%s

Top services by cost:
%s

Review your AWS resources to control costs.`,
		dollars(total), dollars(threshold), period, forecastLine, topServices)

	return Message{
		Title:    fmt.Sprintf("AWS Cost Alert: %s", dollars(total)),
		Body:     body,
		Priority: "high",
		Tags:     []string{"warning", "dollar"},
	}
}

// Critical is the notification for cost >= critical_threshold. resources
// lists the active resources a nuke pass may act on.
func Critical(total, critical float64, period, topServices string, resources []string) Message {
	body := fmt.Sprintf(`CRITICAL COST ALERT!

Current AWS spending: %s USD
Critical threshold: %s USD
Period: %s

Top services by cost:
%s

Active resources that may be nuked:
%s

ACTION REQUIRED: Review and terminate unnecessary resources immediately!

To prevent automated nuking, reduce costs below %s or adjust the threshold.`,
		dollars(total), dollars(critical), period, topServices,
		bulleted(resources, "(Unable to list resources)"), dollars(critical))

	return Message{
		Title:    "CRITICAL: AWS Cost Emergency",
		Body:     body,
		Priority: "urgent",
		Tags:     []string{"rotating_light", "dollar", "skull"},
	}
}

// DailySummary is the optional under-threshold notification.
func DailySummary(total, threshold float64, forecastLine, topServices string) Message {
	body := fmt.Sprintf(`AWS Daily Cost Summary

Current spending: %s USD
Alert threshold: %s USD%s

Top services:
%s

All costs within limits.`,
		dollars(total), dollars(threshold), forecastLine, topServices)

	return Message{
		Title:    fmt.Sprintf("AWS Cost Summary: %s", dollars(total)),
		Body:     body,
		Priority: "low",
		Tags:     []string{"chart_with_upwards_trend", "white_check_mark"},
	}
}

// NukeDryRun reports what a nuke pass would have done.
func NukeDryRun(planned []string) Message {
	body := fmt.Sprintf(`DRY RUN - Would act on:

%s

Disable dry-run to actually stop or terminate resources.`,
		bulleted(planned, "(nothing to act on)"))

	return Message{
		Title:    "Nuke DRY RUN",
		Body:     body,
		Priority: "high",
		Tags:     []string{"test_tube", "warning"},
	}
}

// NukeDisabled reports that the critical threshold was breached but auto-nuke
// is off.
func NukeDisabled() Message {
	body := `Auto-nuke is DISABLED.

To enable automatic resource cleanup, set ENABLE_AUTO_NUKE=true.

For now, please manually review and terminate resources.`

	return Message{
		Title:    "Nuke Skipped - Manual Action Required",
		Body:     body,
		Priority: "high",
		Tags:     []string{"hand", "warning"},
	}
}

// NukeSummary reports the terminal outcome of an executed nuke pass.
func NukeSummary(actions, failures []string) Message {
	body := fmt.Sprintf(`NUKE EXECUTED

Actions taken:
%s

Errors:
%s

Please verify the changes in your AWS console.`,
		bulleted(actions, "(none)"), bulleted(failures, "(none)"))

	return Message{
		Title:    "Resource Nuke Complete",
		Body:     body,
		Priority: "urgent",
		Tags:     []string{"skull", "check"},
	}
}
