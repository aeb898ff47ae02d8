// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package costs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// ServiceCost is the month-to-date amount attributed to one AWS service.
type ServiceCost struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// Snapshot is one cost check's view of the account: month-to-date total,
// optional month-end forecast, and the per-service breakdown. It is computed
// fresh on every invocation and never persisted.
type Snapshot struct {
	Total       float64       `json:"total"`
	Forecast    float64       `json:"forecast"`
	HasForecast bool          `json:"has_forecast"`
	Currency    string        `json:"currency"`
	Period      string        `json:"period"`
	Services    []ServiceCost `json:"services"`
}

// TopServices renders the n most expensive services as an indented dash
// list, skipping amounts under one cent.
func (s Snapshot) TopServices(n int) string {
	sorted := make([]ServiceCost, len(s.Services))
	copy(sorted, s.Services)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	var lines []string
	for _, sc := range sorted {
		if sc.Amount <= 0.01 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  - %s: $%.2f", sc.Service, sc.Amount))
	}
	if len(lines) == 0 {
		return "  (No significant costs yet)"
	}
	return strings.Join(lines, "\n")
}

// ForecastLine renders the optional forecast suffix used in alert bodies.
// Empty when no forecast was available.
func (s Snapshot) ForecastLine() string {
	if !s.HasForecast {
		return ""
	}
	return fmt.Sprintf("\nForecasted month-end cost: $%s", humanize.CommafWithDigits(s.Forecast, 2))
}
