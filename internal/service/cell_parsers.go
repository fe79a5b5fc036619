package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cell parsers convert raw spreadsheet cell text into typed values. Every
// parser reports presence separately from validity: blank cells are absent,
// not errors. Validation errors carry the 1-based spreadsheet row number and
// the field label so they can go straight into the import error list.

func rowFieldError(rowNum int, field, detail string) error {
	return fmt.Errorf("Row %d: field %q %s", rowNum, field, detail)
}

// parseStringCell trims the cell; whitespace-only cells count as absent.
func parseStringCell(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	return s, true
}

var nonDigitRe = regexp.MustCompile(`[^0-9-]`)

// parseIntCell strips everything that is not a digit or minus sign before
// parsing, so values like "R$ 1.234" or "2.025" still resolve.
func parseIntCell(raw, field string, rowNum int) (int, bool, error) {
	s, ok := parseStringCell(raw)
	if !ok {
		return 0, false, nil
	}

	s = nonDigitRe.ReplaceAllString(s, "")
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, rowFieldError(rowNum, field, "must be a whole number")
	}
	return value, true, nil
}

// parseDecimalCell accepts a native dot-decimal number or a Brazilian-locale
// encoding ("1.234,56"). When a comma is present the dots are treated as
// thousands separators and stripped before the comma becomes the decimal
// point.
func parseDecimalCell(raw, field string, rowNum int) (float64, bool, error) {
	s, ok := parseStringCell(raw)
	if !ok {
		return 0, false, nil
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, rowFieldError(rowNum, field, `must be a number (e.g. "1.234,56")`)
	}
	return value, true, nil
}

var textDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:[ T](\d{1,2}):(\d{2}))?$`)

// parseDateCell accepts DD/MM/YYYY text (optionally with HH:MM), an ISO date
// already decoded by the spreadsheet codec, or a numeric Excel date serial.
// Day and month get coarse bounds only; days-per-month is deliberately not
// validated. Output is normalized to YYYY-MM-DD, or YYYY-MM-DDTHH:MM:00 when
// withTime is requested and the cell carried a time component.
func parseDateCell(raw, field string, rowNum int, withTime bool) (string, bool, error) {
	s, ok := parseStringCell(raw)
	if !ok {
		return "", false, nil
	}

	if m := textDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return "", false, rowFieldError(rowNum, field, "has an invalid day or month")
		}

		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		if withTime && m[4] != "" {
			hour, _ := strconv.Atoi(m[4])
			minute, _ := strconv.Atoi(m[5])
			if hour > 23 || minute > 59 {
				return "", false, rowFieldError(rowNum, field, "has an invalid time")
			}
			return fmt.Sprintf("%sT%02d:%02d:00", date, hour, minute), true, nil
		}
		return date, true, nil
	}

	// ISO forms show up when the codec already decoded the cell as a date.
	if isoDateRe.MatchString(s) {
		date := s[:10]
		if withTime && len(s) > 10 {
			return fmt.Sprintf("%sT%s:00", date, s[11:16]), true, nil
		}
		return date, true, nil
	}

	// Unformatted date cells surface as the raw Excel serial number.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", false, rowFieldError(rowNum, field, "is not a valid date serial")
		}
		if withTime && serial != float64(int64(serial)) {
			return t.Format("2006-01-02T15:04:00"), true, nil
		}
		return t.Format("2006-01-02"), true, nil
	}

	return "", false, rowFieldError(rowNum, field, `must be a date in DD/MM/YYYY or DD/MM/YYYY HH:MM format`)
}

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:[ T]\d{2}:\d{2}(?::\d{2})?)?$`)

// parseEnumCell uppercases and trims the cell, then matches it against a
// fixed allow-list.
func parseEnumCell(raw, field string, rowNum int, allowed []string) (string, bool, error) {
	s, ok := parseStringCell(raw)
	if !ok {
		return "", false, nil
	}

	s = strings.ToUpper(s)
	for _, value := range allowed {
		if s == value {
			return s, true, nil
		}
	}
	return "", false, rowFieldError(rowNum, field,
		fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}
