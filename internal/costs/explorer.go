// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package costs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	cev2 "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/cloudchore/cloudchore/internal/log"
)

// ErrUpstreamUnavailable indicates the Cost Explorer API errored. A fetch
// failure must terminate the cost check with no side effects: the job never
// notifies on stale or absent data.
var ErrUpstreamUnavailable = errors.New("cost api unavailable")

// CostExplorerAPI is the subset of the Cost Explorer client the job uses.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *cev2.GetCostAndUsageInput, optFns ...func(*cev2.Options)) (*cev2.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *cev2.GetCostForecastInput, optFns ...func(*cev2.Options)) (*cev2.GetCostForecastOutput, error)
}

// Fetcher produces a Snapshot for the current invocation.
type Fetcher interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// Explorer fetches snapshots from Cost Explorer.
type Explorer struct {
	api CostExplorerAPI
	now func() time.Time
}

// NewExplorer constructs an Explorer on the given API client.
func NewExplorer(api CostExplorerAPI) *Explorer {
	return &Explorer{api: api, now: time.Now}
}

const dateLayout = "2006-01-02"

// Fetch retrieves the month-to-date total and per-service breakdown, plus a
// best-effort month-end forecast. A usage query failure is fatal
// (ErrUpstreamUnavailable); a missing forecast is tolerated and logged, since
// young accounts often lack the data to forecast from.
func (e *Explorer) Fetch(ctx context.Context) (Snapshot, error) {
	today := e.now().UTC()
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1)

	out, err := e.api.GetCostAndUsage(ctx, &cev2.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: awsv2.String(start.Format(dateLayout)),
			End:   awsv2.String(end.Format(dateLayout)),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{"UnblendedCost", "UsageQuantity"},
		GroupBy: []types.GroupDefinition{
			{Type: types.GroupDefinitionTypeDimension, Key: awsv2.String("SERVICE")},
		},
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: get cost and usage: %v", ErrUpstreamUnavailable, err)
	}

	snap := Snapshot{
		Currency: "USD",
		Period:   fmt.Sprintf("%s to %s", start.Format(dateLayout), end.Format(dateLayout)),
	}

	var total float64
	for _, result := range out.ResultsByTime {
		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			amount := metricAmount(group.Metrics, "UnblendedCost")
			snap.Services = append(snap.Services, ServiceCost{
				Service: group.Keys[0],
				Amount:  amount,
			})
			total += amount
		}
	}
	snap.Total = round2(total)
	log.Debugf("cost snapshot: total=%.2f services=%d period=%s", snap.Total, len(snap.Services), snap.Period)

	if forecast, ok := e.fetchForecast(ctx, today); ok {
		snap.Forecast = forecast
		snap.HasForecast = true
	}

	return snap, nil
}

// fetchForecast asks for the projected cost from tomorrow through the end of
// the month. Errors are swallowed: the forecast is optional garnish.
func (e *Explorer) fetchForecast(ctx context.Context, today time.Time) (float64, bool) {
	start := today.AddDate(0, 0, 1)
	endOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !start.Before(endOfMonth) {
		return 0, false
	}

	out, err := e.api.GetCostForecast(ctx, &cev2.GetCostForecastInput{
		TimePeriod: &types.DateInterval{
			Start: awsv2.String(start.Format(dateLayout)),
			End:   awsv2.String(endOfMonth.Format(dateLayout)),
		},
		Metric:      types.MetricUnblendedCost,
		Granularity: types.GranularityMonthly,
	})
	if err != nil {
		log.Warnf("could not get forecast: %v", err)
		return 0, false
	}
	if out.Total == nil || out.Total.Amount == nil {
		return 0, false
	}

	forecast, err := strconv.ParseFloat(*out.Total.Amount, 64)
	if err != nil {
		log.Warnf("unparseable forecast amount: %v", err)
		return 0, false
	}
	return round2(forecast), true
}

// metricAmount extracts a float amount from the group metrics map.
func metricAmount(metrics map[string]types.MetricValue, key string) float64 {
	mv, ok := metrics[key]
	if !ok || mv.Amount == nil {
		return 0
	}
	amount, err := strconv.ParseFloat(*mv.Amount, 64)
	if err != nil {
		return 0
	}
	return amount
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
