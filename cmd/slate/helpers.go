package main

import (
	"fmt"
	"strconv"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// dash substitutes a placeholder for empty values in table cells.
func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func dashPtr(value *string) string {
	if value == nil {
		return "-"
	}
	return dash(*value)
}

func formatBudget(millions float64) string {
	return fmt.Sprintf("£%sm", strconv.FormatFloat(millions, 'f', -1, 64))
}

func formatGBP(value float64) string {
	return fmt.Sprintf("£%s", strconv.FormatFloat(value, 'f', -1, 64))
}
