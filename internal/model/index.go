package model

import (
	"fmt"
	"strings"
)

// Variant identifies one of the three index file layouts.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantMaster
	VariantEmaster
	VariantXmaster
)

func (v Variant) String() string {
	switch v {
	case VariantMaster:
		return "master"
	case VariantEmaster:
		return "emaster"
	case VariantXmaster:
		return "xmaster"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// FileName is the conventional on-disk name of the index file.
func (v Variant) FileName() string {
	return strings.ToUpper(v.String())
}

// ParseVariant maps a case-insensitive name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "master":
		return VariantMaster, nil
	case "emaster":
		return VariantEmaster, nil
	case "xmaster":
		return VariantXmaster, nil
	default:
		return VariantUnknown, fmt.Errorf("unknown index variant %q", s)
	}
}

// Frequency is the periodicity character stored in an index record.
type Frequency byte

const (
	FrequencyIntraday  Frequency = 'I'
	FrequencyDaily     Frequency = 'D'
	FrequencyWeekly    Frequency = 'W'
	FrequencyMonthly   Frequency = 'M'
	FrequencyQuarterly Frequency = 'Q'
	FrequencyYearly    Frequency = 'Y'
)

func (f Frequency) String() string {
	if f == 0 {
		return ""
	}
	return string(rune(f))
}

// IndexEntry describes one security listed in an index file.
type IndexEntry struct {
	Variant         Variant
	DataFileNumber  uint16
	Symbol          string
	Name            string
	FullName        string // empty for the master variant
	StartDate       Date
	EndDate         Date
	Frequency       Frequency
	IntradayMinutes uint8 // meaningful only for intraday entries
}

// DisplayName prefers the full name when the variant carries one.
func (e IndexEntry) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	return e.Name
}
