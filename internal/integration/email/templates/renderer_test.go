package templates

import (
	"strings"
	"testing"
)

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	tests := []struct {
		name     string
		template string
		data     any
		contains []string
	}{
		{
			name:     "welcome",
			template: "welcome",
			data:     WelcomeData{UserName: "stoyan", AppURL: "http://localhost:5173"},
			contains: []string{"Hi stoyan", "Thanks for registering in Trips Monitoring", "http://localhost:5173"},
		},
		{
			name:     "weekly summary with costs",
			template: "weekly_summary",
			data: WeeklySummaryData{
				UserName:     "stoyan",
				PeriodStart:  "2024-03-04",
				PeriodEnd:    "2024-03-11",
				TripsCount:   2,
				DistanceKm:   130,
				RefuelsCount: 1,
				FuelCosts:    []CostLine{{Currency: "BGN", Amount: "60.00"}, {Currency: "EUR", Amount: "10.00"}},
			},
			contains: []string{"2024-03-04", "2024-03-11", "Trips: 2", "Distance: 130 km", "Refuels: 1", "60.00 BGN, 10.00 EUR"},
		},
		{
			name:     "weekly summary without refuels",
			template: "weekly_summary",
			data:     WeeklySummaryData{UserName: "stoyan"},
			contains: []string{"Trips: 0", "Fuel cost: 0.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, text, err := renderer.Render(tt.template, tt.data)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(text, want) {
					t.Errorf("expected text to contain %q, got %q", want, text)
				}
			}
			if !strings.Contains(html, "<html>") {
				t.Errorf("expected html output, got %q", html)
			}
		})
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	if _, _, err := renderer.Render("password_reset", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
