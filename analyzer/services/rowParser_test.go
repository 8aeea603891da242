package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseRow_ValidRow(t *testing.T) {
	cells := []string{"North", "St. Mark", "Youth Chapel", "24", "15", "80", "2", "", "1250.50", "1000", "250.50", "Harvest Sunday"}

	result := ParseRow(cells, "06-01-25", 2)
	if result.Outcome != RowParsed {
		t.Fatalf("Outcome = %v, want RowParsed (err: %q)", result.Outcome, result.Err)
	}

	row := result.Row
	if row.ArchdeaconryName != "North" || row.ParishName != "St. Mark" || row.CongregationName != "Youth Chapel" {
		t.Errorf("hierarchy names = %q/%q/%q", row.ArchdeaconryName, row.ParishName, row.CongregationName)
	}
	if row.SundaySchool != 24 || row.Youth != 15 || row.Adults != 80 || row.DiffAbled != 2 {
		t.Errorf("counts = %d/%d/%d/%d, want 24/15/80/2", row.SundaySchool, row.Youth, row.Adults, row.DiffAbled)
	}
	if !row.TotalCollection.Equal(decimal.RequireFromString("1250.50")) {
		t.Errorf("TotalCollection = %s, want 1250.50", row.TotalCollection)
	}
	if !row.Banked.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Banked = %s, want 1000", row.Banked)
	}
	if !row.Unbanked.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("Unbanked = %s, want 250.50", row.Unbanked)
	}
	if row.Remarks != "Harvest Sunday" {
		t.Errorf("Remarks = %q, want %q", row.Remarks, "Harvest Sunday")
	}
}

func TestParseRow_BlankNameSkips(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
	}{
		{"blank archdeaconry", []string{"", "St. Mark", "Youth Chapel", "10"}},
		{"blank parish", []string{"North", "   ", "Youth Chapel", "10"}},
		{"blank congregation", []string{"North", "St. Mark", "", "10"}},
		{"empty row", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseRow(tc.cells, "06-01-25", 3)
			if result.Outcome != RowSkipped {
				t.Errorf("Outcome = %v, want RowSkipped", result.Outcome)
			}
			if result.Err != "" {
				t.Errorf("skip produced an error: %q", result.Err)
			}
		})
	}
}

func TestParseRow_NumericDefaults(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"blank", "", 0},
		{"whitespace", "   ", 0},
		{"non-numeric", "n/a", 0},
		{"negative", "-5", 0},
		{"plain", "42", 42},
		{"float from excel", "42.0", 42},
		{"thousands separator", "1,042", 1042},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseCount(tc.raw); got != tc.want {
				t.Errorf("parseCount(%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseRow_AmountDefaults(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"blank", "", "0"},
		{"non-numeric", "pending", "0"},
		{"negative", "-12.50", "0"},
		{"plain", "1250.50", "1250.5"},
		{"thousands separator", "12,500", "12500"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseAmount(tc.raw); got.String() != tc.want {
				t.Errorf("parseAmount(%q) = %s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseRow_ShortRowUsesDefaults(t *testing.T) {
	// names only; every measure column is missing
	result := ParseRow([]string{"North", "St. Mark", "Youth Chapel"}, "06-01-25", 2)
	if result.Outcome != RowParsed {
		t.Fatalf("Outcome = %v, want RowParsed", result.Outcome)
	}
	row := result.Row
	if row.SundaySchool != 0 || row.Youth != 0 || row.Adults != 0 || row.DiffAbled != 0 {
		t.Errorf("counts not defaulted: %+v", row)
	}
	if !row.TotalCollection.IsZero() || !row.Banked.IsZero() || !row.Unbanked.IsZero() {
		t.Errorf("amounts not defaulted: %+v", row)
	}
	if row.Remarks != "" {
		t.Errorf("Remarks = %q, want empty", row.Remarks)
	}
}
