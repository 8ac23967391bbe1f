package valueobject

import (
	"testing"
	"time"
)

func TestNewMonthPeriod(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		wantErr bool
	}{
		{name: "valid", year: 2024, month: 3},
		{name: "december", year: 2024, month: 12},
		{name: "month zero", year: 2024, month: 0, wantErr: true},
		{name: "month thirteen", year: 2024, month: 13, wantErr: true},
		{name: "year zero", year: 0, month: 1, wantErr: true},
		{name: "five digit year", year: 10000, month: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMonthPeriod(tt.year, tt.month)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMonthPeriod_Window(t *testing.T) {
	p := MonthPeriod{Year: 2024, Month: 12}

	if got := p.Start(); !got.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected start 2024-12-01, got %v", got)
	}
	if got := p.End(); !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected end 2025-01-01, got %v", got)
	}
	if !p.Contains(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("expected last day of month to be contained")
	}
	if p.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected first day of next month to be excluded")
	}
	if p.String() != "2024-12" {
		t.Errorf("expected 2024-12, got %s", p.String())
	}
}

func TestLastDays(t *testing.T) {
	r := LastDays(time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC), 7)

	if !r.From.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected from 2024-03-04, got %v", r.From)
	}
	if !r.To.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected to 2024-03-10, got %v", r.To)
	}
	if !r.EndExclusive().Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected exclusive end 2024-03-11, got %v", r.EndExclusive())
	}
}

func TestFilterWindow(t *testing.T) {
	year, month, badMonth := 2024, 2, 14

	from, to, err := FilterWindow(nil, nil)
	if err != nil || from != nil || to != nil {
		t.Errorf("expected unbounded window, got %v %v %v", from, to, err)
	}

	from, to, err = FilterWindow(&year, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !from.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected whole year window, got %v to %v", from, to)
	}

	from, to, err = FilterWindow(&year, &month)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !from.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected February window, got %v to %v", from, to)
	}

	if _, _, err := FilterWindow(nil, &month); err == nil {
		t.Error("expected error for month without year")
	}
	if _, _, err := FilterWindow(&year, &badMonth); err == nil {
		t.Error("expected error for invalid month")
	}
}
