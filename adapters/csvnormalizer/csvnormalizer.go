// Package csvnormalizer implements C2: parsing raw one-row-per-day
// external exports into a canonical observation stream, with
// per-row errors and advisory warnings that never drop a row (a
// non-numeric temperature is the one cell a warning discards).
package csvnormalizer

import (
	"encoding/csv"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/observation"
)

// RowError is a per-row data failure: the row is dropped but parsing
// continues.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// RowWarning is an advisory condition: the same shape as RowError but
// the row is retained.
type RowWarning struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// RawObservation is one normalized row's worth of same-date readings,
// prior to being lifted into canonical Observation records.
type RawObservation struct {
	Date         civildate.Date
	Temperature  *float64
	CervicalFluid observation.CMValue
	OPK          observation.OPKValue
	Intercourse  *bool
	Notes        string
}

// Result is the outcome of normalizing a CSV blob.
type Result struct {
	Success      bool
	Observations []RawObservation
	Errors       []RowError
	Warnings     []RowWarning
}

// Validation reports whether a header row satisfies the structural
// contract.
type Validation struct {
	Valid          bool
	MissingColumns []string
	FoundColumns   []string
}

var columnAliases = map[string][]string{
	"temperature": {"temp", "temperature", "bbt"},
	"cm":          {"cervical fluid", "cf", "cm", "cervical mucus", "fluid"},
	"opk":         {"opk", "lh test", "ovulation test"},
	"intercourse": {"intercourse", "bd", "sex"},
	"notes":       {"notes", "note", "comments", "memo"},
}

var cmSynonyms = map[string]observation.CMValue{
	"dry":       observation.CMDry,
	"sticky":    observation.CMSticky,
	"creamy":    observation.CMCreamy,
	"watery":    observation.CMWatery,
	"egg white": observation.CMEggWhite,
	"egg-white": observation.CMEggWhite,
	"eggwhite":  observation.CMEggWhite,
	"spotting":  observation.CMSpotting,
}

var opkSynonyms = map[string]string{
	"negative": "negative",
	"neg":      "negative",
	"positive": "positive",
	"pos":      "positive",
	"peak":     "peak",
	"invalid":  "invalid",
	"unknown":  "unknown",
}

var boolSynonyms = map[string]bool{
	"yes": true, "y": true, "true": true, "1": true, "x": true,
	"no": false, "n": false, "false": false, "0": false,
}

// Validate checks the header row against the structural contract:
// the date column is required (case-insensitive substring match);
// every other alias group is optional.
func Validate(headers []string) Validation {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	found := []string{}
	hasDate := false
	for _, h := range lower {
		if strings.Contains(h, "date") {
			hasDate = true
			found = append(found, "date")
			break
		}
	}

	var missing []string
	if !hasDate {
		missing = append(missing, "date")
	}

	for canonical, aliases := range columnAliases {
		for _, h := range lower {
			if containsAny(h, aliases) {
				found = append(found, canonical)
				break
			}
		}
	}

	return Validation{Valid: len(missing) == 0, MissingColumns: missing, FoundColumns: found}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if haystack == n || strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// Normalize parses blob as CSV text and emits a canonical
// RawObservation stream plus errors and warnings.
func Normalize(blob string) Result {
	reader := csv.NewReader(strings.NewReader(blob))
	rows, err := reader.ReadAll()
	if err != nil {
		return Result{Success: false, Errors: []RowError{{Row: 0, Field: "_file", Message: err.Error()}}}
	}
	if len(rows) < 1 {
		return Result{Success: false, Errors: []RowError{{Row: 0, Field: "_file", Message: "CSV file has no header row"}}}
	}

	headers := rows[0]
	dateIdx := findDateColumn(headers)
	if dateIdx == -1 {
		return Result{Success: false, Errors: []RowError{{Row: 0, Field: "date", Message: "no column header contains \"date\""}}}
	}

	colIdx := map[string]int{}
	for canonical, aliases := range columnAliases {
		for i, h := range headers {
			if containsAny(strings.ToLower(strings.TrimSpace(h)), aliases) {
				colIdx[canonical] = i
				break
			}
		}
	}

	var observations []RawObservation
	var errs []RowError
	var warnings []RowWarning
	log.Printf("[csvnormalizer] normalizing %d data rows", len(rows)-1)

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1 // 1-indexed, header is row 1

		dateStr := cellAt(row, dateIdx)
		date, err := parseDate(dateStr)
		if err != nil {
			errs = append(errs, RowError{Row: rowNum, Field: "date", Message: "unparseable or missing date", Value: dateStr})
			continue
		}

		raw := RawObservation{Date: date}

		if idx, ok := colIdx["temperature"]; ok {
			raw.Temperature, warnings = parseTemperature(cellAt(row, idx), rowNum, warnings)
		}
		if idx, ok := colIdx["cm"]; ok {
			raw.CervicalFluid = parseCervicalFluid(cellAt(row, idx))
		}
		if idx, ok := colIdx["opk"]; ok {
			raw.OPK = parseOPK(cellAt(row, idx))
		}
		if idx, ok := colIdx["intercourse"]; ok {
			raw.Intercourse = parseBool(cellAt(row, idx))
		}
		if idx, ok := colIdx["notes"]; ok {
			raw.Notes = strings.TrimSpace(cellAt(row, idx))
		}

		observations = append(observations, raw)
	}

	sort.SliceStable(observations, func(a, b int) bool {
		return observations[a].Date.Before(observations[b].Date)
	})

	seen := map[civildate.Date]bool{}
	for _, o := range observations {
		if seen[o.Date] {
			warnings = append(warnings, RowWarning{Field: "date", Message: "duplicate date retained", Value: o.Date.String()})
		}
		seen[o.Date] = true
	}

	return Result{Success: len(errs) == 0, Observations: observations, Errors: errs, Warnings: warnings}
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func findDateColumn(headers []string) int {
	for i, h := range headers {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), "date") {
			return i
		}
	}
	return -1
}

// parseDate tries ISO, then US M/D/Y, then European D/M/Y, then the
// four fixed layouts listed below; other spellings are rejected.
// Ambiguous numeric dates like 03/04 resolve to
// the US reading (March 4) since that order is tried first.
func parseDate(s string) (civildate.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civildate.Date{}, fmt.Errorf("empty date")
	}
	if d, err := civildate.Parse(s); err == nil {
		return d, nil
	}
	if t, err := time.Parse("1/2/2006", s); err == nil {
		return civildate.FromTime(t), nil
	}
	if t, err := time.Parse("2/1/2006", s); err == nil {
		return civildate.FromTime(t), nil
	}
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006", "2 January 2006", "2006/01/02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return civildate.FromTime(t), nil
		}
	}
	return civildate.Date{}, fmt.Errorf("unrecognized date format")
}

func parseTemperature(s string, row int, warnings []RowWarning) (*float64, []RowWarning) {
	if s == "" {
		return nil, warnings
	}
	cleaned := s
	for _, suffix := range []string{"°F", "°C", "F", "C"} {
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), suffix)
	}
	cleaned = strings.TrimSpace(cleaned)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		warnings = append(warnings, RowWarning{Row: row, Field: "temperature", Message: "non-numeric temperature dropped", Value: s})
		return nil, warnings
	}
	if v < 95 || v > 101 {
		warnings = append(warnings, RowWarning{Row: row, Field: "temperature", Message: "temperature outside expected 95-101F range", Value: s})
	}
	return &v, warnings
}

func parseCervicalFluid(s string) observation.CMValue {
	key := strings.ToLower(strings.TrimSpace(s))
	if v, ok := cmSynonyms[key]; ok {
		return v
	}
	return observation.CMUnknown
}

func parseOPK(s string) observation.OPKValue {
	key := strings.ToLower(strings.TrimSpace(s))
	mapped, ok := opkSynonyms[key]
	if !ok {
		return observation.OPKInvalid
	}
	switch mapped {
	case "peak":
		return observation.OPKPositive
	case "positive":
		return observation.OPKPositive
	case "negative":
		return observation.OPKNegative
	default:
		return observation.OPKInvalid
	}
}

func parseBool(s string) *bool {
	key := strings.ToLower(strings.TrimSpace(s))
	if v, ok := boolSynonyms[key]; ok {
		return &v
	}
	return nil
}

// ToObservations lifts each raw row into zero, one, or more canonical
// Observations, minting a fresh identifier and timestamp per emitted
// record and dropping any kind whose mapped value is unknown.
func ToObservations(raw []RawObservation, now core.Timestamp) []observation.Observation {
	var out []observation.Observation
	for _, r := range raw {
		if r.Temperature != nil {
			out = append(out, observation.NewBBT(r.Date, *r.Temperature, "", now))
		}
		if r.CervicalFluid != "" && r.CervicalFluid != observation.CMUnknown {
			out = append(out, observation.NewCervicalMucus(r.Date, r.CervicalFluid, now))
		}
		if r.OPK != "" && r.OPK != observation.OPKInvalid {
			out = append(out, observation.NewOPK(r.Date, r.OPK, now))
		}
	}
	return out
}
