// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidEvent is returned for payloads that are not a recognizable
// budget notification.
var ErrInvalidEvent = errors.New("invalid budget event")

// Budget is the part of an AWS Budgets notification the check cares about.
type Budget struct {
	Name    string
	Account string
	Limit   float64
	Actual  float64
	Unit    string
}

// String renders the budget for log output.
func (b Budget) String() string {
	return fmt.Sprintf("budget %q (account %s): %.2f %s of %.2f %s limit",
		b.Name, b.Account, b.Actual, b.Unit, b.Limit, b.Unit)
}

// ParseBudget extracts the triggering budget from a push-event payload. Both
// the raw Budgets JSON and the SNS-wrapped form (Records[0].Sns.Message
// holding the JSON as a string) are accepted.
func ParseBudget(data []byte) (Budget, error) {
	if !gjson.ValidBytes(data) {
		return Budget{}, fmt.Errorf("%w: not valid JSON", ErrInvalidEvent)
	}

	doc := gjson.ParseBytes(data)

	// Unwrap the SNS envelope if present.
	if msg := doc.Get("Records.0.Sns.Message"); msg.Exists() {
		if !gjson.Valid(msg.String()) {
			return Budget{}, fmt.Errorf("%w: SNS message is not JSON", ErrInvalidEvent)
		}
		doc = gjson.Parse(msg.String())
	}

	name := doc.Get("budgetName")
	if !name.Exists() {
		// EventBridge puts the budget under detail.
		if detail := doc.Get("detail"); detail.Exists() {
			doc = detail
			name = doc.Get("budgetName")
		}
	}
	if !name.Exists() {
		return Budget{}, fmt.Errorf("%w: no budgetName", ErrInvalidEvent)
	}

	return Budget{
		Name:    name.String(),
		Account: doc.Get("accountId").String(),
		Limit:   doc.Get("budgetLimit.amount").Float(),
		Actual:  doc.Get("calculatedSpend.actualSpend.amount").Float(),
		Unit:    doc.Get("budgetLimit.unit").String(),
	}, nil
}
