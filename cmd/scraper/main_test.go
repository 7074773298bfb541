package main

import (
	"testing"

	"campusclubs/internal/scraper"
)

func TestBuildSlots(t *testing.T) {
	tests := []struct {
		name      string
		row       scraper.CourseRow
		wantDays  []string
		wantStart string
		wantEnd   string
		wantCount int
	}{
		{
			name:      "expands one slot per day",
			row:       scraper.CourseRow{CourseCode: "CS101", ScheduleRaw: "MWF 10:00-11:30", EnrollmentRaw: "45/50"},
			wantDays:  []string{"Monday", "Wednesday", "Friday"},
			wantStart: "10:00",
			wantEnd:   "11:30",
			wantCount: 45,
		},
		{
			name:      "normalizes 12 hour times and pads hours",
			row:       scraper.CourseRow{CourseCode: "HIST210", ScheduleRaw: "TR 2:00pm-3:15pm", EnrollmentRaw: "30"},
			wantDays:  []string{"Tuesday", "Thursday"},
			wantStart: "14:00",
			wantEnd:   "15:15",
			wantCount: 30,
		},
		{
			name: "days without a time range yield no slots",
			row:  scraper.CourseRow{CourseCode: "SEM100", ScheduleRaw: "MWF arranged", EnrollmentRaw: "12"},
		},
		{
			name: "empty schedule yields no slots",
			row:  scraper.CourseRow{CourseCode: "IND400", ScheduleRaw: "", EnrollmentRaw: "3"},
		},
		{
			name: "inverted time range yields no slots",
			row:  scraper.CourseRow{CourseCode: "BAD1", ScheduleRaw: "M 11:00-10:00", EnrollmentRaw: "9"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := buildSlots(tt.row)
			if len(slots) != len(tt.wantDays) {
				t.Fatalf("buildSlots() returned %d slots, want %d", len(slots), len(tt.wantDays))
			}
			for i, s := range slots {
				if s.DayOfWeek != tt.wantDays[i] || s.StartTime != tt.wantStart || s.EndTime != tt.wantEnd ||
					s.StudentsCount != tt.wantCount || s.CourseCode != tt.row.CourseCode {
					t.Errorf("slot[%d] = %+v", i, s)
				}
			}
		})
	}
}
