// Package types provides type definitions for the data exchanged between the careers page and the ATS.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// JobPosting is the display-ready job model rendered by the careers page.
type JobPosting struct {
	ID                  int64    `json:"id"`
	Title               string   `json:"title"`
	Offices             []Office `json:"offices,omitempty"`
	Location            string   `json:"location,omitempty"`
	Description         string   `json:"description"`
	Salary              *Range   `json:"salary,omitempty"`
	Equity              *Range   `json:"equity,omitempty"`
	Skills              []string `json:"skills"`
	ApplicationDeadline string   `json:"application_deadline,omitempty"`
}

// Office is one office location attached to a job.
type Office struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// Range is a numeric min/max pair (salary or equity).
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HarvestJob is the subset of the Greenhouse Harvest job representation the adapter reads.
type HarvestJob struct {
	ID                int64              `json:"id"`
	Name              string             `json:"name"`
	Notes             *string            `json:"notes"`
	Offices           []HarvestOffice    `json:"offices"`
	Location          *HarvestLocation   `json:"location,omitempty"`
	KeyedCustomFields *KeyedCustomFields `json:"keyed_custom_fields,omitempty"`
	Skills            []string           `json:"skills,omitempty"`
}

// HarvestOffice is an office entry on a Harvest job.
type HarvestOffice struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Location *HarvestLocation `json:"location,omitempty"`
}

// HarvestLocation wraps a nullable location name.
type HarvestLocation struct {
	Name *string `json:"name"`
}

// KeyedCustomFields holds the custom fields the careers page understands.
type KeyedCustomFields struct {
	SalaryRange *SalaryRangeField `json:"salary_range,omitempty"`
}

// SalaryRangeField is the currency_range custom field.
type SalaryRangeField struct {
	Name  string            `json:"name,omitempty"`
	Type  string            `json:"type,omitempty"`
	Value *SalaryRangeValue `json:"value,omitempty"`
}

// SalaryRangeValue carries the bounds as Harvest sends them, usually numeric strings.
type SalaryRangeValue struct {
	MinValue NumericString `json:"min_value"`
	MaxValue NumericString `json:"max_value"`
	Unit     string        `json:"unit,omitempty"`
}

// NumericString accepts a JSON string or number and keeps its textual form.
type NumericString string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric string: %w", err)
	}
	*n = NumericString(num.String())
	return nil
}

// Float parses the value. ok is false for empty or non-numeric text.
func (n NumericString) Float() (v float64, ok bool) {
	if n == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
