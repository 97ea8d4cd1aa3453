// Package parser turns CSV and xlsx files into typed columns.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// nullTokens are cell texts read as missing values.
var nullTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// IsNullToken reports whether a cell text stands for a missing value.
func IsNullToken(s string) bool {
	return nullTokens[s]
}

var (
	trueTokens  = map[string]bool{"True": true, "TRUE": true, "true": true}
	falseTokens = map[string]bool{"False": true, "FALSE": true, "false": true}
)

// NormalizeHeaders names blank headers "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ... in order of appearance.
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

// parseNumber attempts to parse a cell as a number.
// isInt is true when the text is a whole number without a decimal point.
func parseNumber(s string) (v float64, isInt bool, ok bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, false, true
	}
	return 0, false, false
}

// InferColumn types a column of raw cell texts.
//
// A column is int when every cell is a whole number, float when every
// non-null cell is a number (whole numbers with nulls become float), bool when
// every cell is a true/false token and none is null, and text otherwise.
// A column without any value is float.
func InferColumn(name string, cells []string) *models.Column {
	n := len(cells)
	valid := make([]bool, n)
	nulls := 0
	allNum, allInt, allBool := true, true, true
	nums := make([]float64, n)

	for i, s := range cells {
		if IsNullToken(s) {
			nulls++
			continue
		}
		valid[i] = true
		if allNum {
			v, isInt, ok := parseNumber(s)
			if ok {
				nums[i] = v
				allInt = allInt && isInt
			} else {
				allNum = false
			}
		}
		if allBool {
			t := strings.TrimSpace(s)
			allBool = trueTokens[t] || falseTokens[t]
		}
	}

	switch {
	case nulls == n:
		return models.NewNumberColumn(name, models.TypeFloat, nums, valid)
	case allNum && allInt && nulls == 0:
		return models.NewNumberColumn(name, models.TypeInt, nums, valid)
	case allNum:
		return models.NewNumberColumn(name, models.TypeFloat, nums, valid)
	case allBool && nulls == 0:
		bools := make([]bool, n)
		for i, s := range cells {
			bools[i] = trueTokens[strings.TrimSpace(s)]
		}
		return models.NewBoolColumn(name, bools, valid)
	}

	texts := make([]string, n)
	for i, s := range cells {
		if valid[i] {
			texts[i] = s
		}
	}
	return models.NewTextColumn(name, texts, valid)
}

// cellKind is the storage kind of a typed spreadsheet cell.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellText
	cellNumber
	cellBool
	cellTime
)

// typedCell is a spreadsheet cell whose storage type is already known.
type typedCell struct {
	kind cellKind
	text string
	num  float64
	b    bool
	t    time.Time
}

// display renders the cell for a text column.
func (c typedCell) display() string {
	switch c.kind {
	case cellNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case cellBool:
		if c.b {
			return "True"
		}
		return "False"
	case cellTime:
		return models.FormatTime(c.t)
	default:
		return c.text
	}
}

// inferTypedColumn types a column of spreadsheet cells. Cells keep the type the
// workbook stored them with; a column mixing kinds becomes text.
func inferTypedColumn(name string, cells []typedCell) *models.Column {
	n := len(cells)
	valid := make([]bool, n)
	nulls := 0
	kind := cellEmpty
	mixed := false
	allInt := true

	for i, c := range cells {
		if c.kind == cellEmpty {
			nulls++
			continue
		}
		valid[i] = true
		if kind == cellEmpty {
			kind = c.kind
		} else if kind != c.kind {
			mixed = true
		}
		if c.kind == cellNumber && c.num != math.Trunc(c.num) {
			allInt = false
		}
	}

	if !mixed {
		switch kind {
		case cellEmpty:
			return models.NewNumberColumn(name, models.TypeFloat, make([]float64, n), valid)
		case cellNumber:
			nums := make([]float64, n)
			for i, c := range cells {
				nums[i] = c.num
			}
			typ := models.TypeFloat
			if allInt && nulls == 0 {
				typ = models.TypeInt
			}
			return models.NewNumberColumn(name, typ, nums, valid)
		case cellBool:
			if nulls == 0 {
				bools := make([]bool, n)
				for i, c := range cells {
					bools[i] = c.b
				}
				return models.NewBoolColumn(name, bools, valid)
			}
		case cellTime:
			times := make([]time.Time, n)
			for i, c := range cells {
				times[i] = c.t
			}
			return models.NewTimeColumn(name, times, valid)
		}
	}

	texts := make([]string, n)
	for i, c := range cells {
		if valid[i] {
			texts[i] = c.display()
		}
	}
	return models.NewTextColumn(name, texts, valid)
}
