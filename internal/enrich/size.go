package enrich

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/openlead/leadgen-cli/internal/model"
)

// employeeRange matches headcount ranges like "11-50" or "201 - 1000",
// and open-ended forms like "1000+".
var employeeRange = regexp.MustCompile(`^\s*(\d+)\s*(?:-\s*(\d+)|\+)?\s*$`)

// SizeEnricher derives the employee count and size bucket from the
// source-specific facts adapters collect: an explicit employee_count when
// present, otherwise the midpoint of an employee_range string.
type SizeEnricher struct{}

func NewSize() *SizeEnricher { return &SizeEnricher{} }

func (e *SizeEnricher) Name() string { return "size" }

func (e *SizeEnricher) Enrich(_ context.Context, c *model.Company) error {
	en := c.EnrichmentOf()
	if en.EmployeeCount == 0 {
		if n := c.ExtraInt("employee_count"); n > 0 {
			en.EmployeeCount = n
		} else if r := c.Extra("employee_range"); r != "" {
			n, err := ParseEmployeeRange(r)
			if err != nil {
				return eris.Wrapf(err, "company %s", c.Name)
			}
			en.EmployeeCount = n
		}
	}
	if en.CompanySize == "" || en.CompanySize == model.SizeUnknown {
		en.CompanySize = model.SizeForEmployeeCount(en.EmployeeCount)
	}
	if v := c.Extra("industry"); v != "" && en.Industry == "" {
		en.Industry = v
	}
	return nil
}

// ParseEmployeeRange converts a range string to a representative headcount:
// the midpoint of "lo-hi", or the bound itself for "n" and "n+".
func ParseEmployeeRange(s string) (int, error) {
	m := employeeRange.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, eris.Errorf("unparseable employee range %q", s)
	}
	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, eris.Wrapf(err, "employee range %q", s)
	}
	if m[2] == "" {
		return lo, nil
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, eris.Wrapf(err, "employee range %q", s)
	}
	if hi < lo {
		return 0, eris.Errorf("inverted employee range %q", s)
	}
	return (lo + hi) / 2, nil
}
