// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"sort"
	"strings"
)

// SortDataset sorts the rows in place by a comma-separated field spec. A
// leading "-" on a field sorts it descending; a leading "!" makes the string
// comparison case sensitive. Numeric values compare numerically so that
// amounts order by magnitude, not lexically.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := resultSet[one][field]
			twoValue := resultSet[two][field]

			oneFloat, oneOk := oneValue.(float64)
			twoFloat, twoOk := twoValue.(float64)

			if oneOk && twoOk {
				if oneFloat != twoFloat {
					if ascending {
						return oneFloat < twoFloat
					}
					return oneFloat > twoFloat
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)

			compareOneStr := oneStr
			compareTwoStr := twoStr
			if !caseSensitive {
				compareOneStr = strings.ToLower(oneStr)
				compareTwoStr = strings.ToLower(twoStr)
			}

			if compareOneStr != compareTwoStr {
				if ascending {
					return compareOneStr < compareTwoStr
				}
				return compareOneStr > compareTwoStr
			}
		}
		return false
	})
}
