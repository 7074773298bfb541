package service

import (
	"errors"
	"reflect"
	"testing"

	"campusclubs/internal/db"
	"campusclubs/internal/entities"
)

// stubCourseRepo feeds fixed slot data into the calendar service.
type stubCourseRepo struct {
	slots   []db.TimeSlot
	courses int
	err     error
}

func (s *stubCourseRepo) ListTimeSlots() ([]db.TimeSlot, error) { return s.slots, s.err }
func (s *stubCourseRepo) CountCourses() (int, error)            { return s.courses, s.err }
func (s *stubCourseRepo) UpsertCourse(*db.Course) error         { return nil }
func (s *stubCourseRepo) ReplaceTimeSlots(string, []db.TimeSlot) error {
	return nil
}

func slot(code, day, start, end string, students int) db.TimeSlot {
	return db.TimeSlot{CourseCode: code, DayOfWeek: day, StartTime: start, EndTime: end, StudentsCount: students}
}

func TestComputeHeatmapGroupsAndSums(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{slots: []db.TimeSlot{
		slot("CS101", "Monday", "10:00", "11:00", 5),
		slot("MATH200", "Monday", "10:00", "11:00", 3),
		slot("PHYS110", "Tuesday", "09:00", "10:30", 40),
	}})

	cells, err := svc.ComputeHeatmap()
	if err != nil {
		t.Fatalf("ComputeHeatmap() error = %v", err)
	}

	want := []entities.DensityCell{
		{Day: "Tuesday", StartTime: "09:00", EndTime: "10:30", TotalStudents: 40, CourseCount: 1, Density: 40},
		{Day: "Monday", StartTime: "10:00", EndTime: "11:00", TotalStudents: 8, CourseCount: 2, Density: 8},
	}
	if !reflect.DeepEqual(cells, want) {
		t.Errorf("ComputeHeatmap() = %+v, want %+v", cells, want)
	}
}

func TestComputeHeatmapEmpty(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{})
	cells, err := svc.ComputeHeatmap()
	if err != nil {
		t.Fatalf("ComputeHeatmap() error = %v", err)
	}
	if len(cells) != 0 {
		t.Errorf("ComputeHeatmap() on empty data = %+v, want empty", cells)
	}
}

func TestComputeHeatmapIdempotent(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{slots: []db.TimeSlot{
		slot("CS101", "Monday", "10:00", "11:00", 5),
		slot("CS102", "Friday", "08:00", "09:00", 7),
		slot("CS103", "Monday", "10:00", "11:00", 2),
	}})
	first, err := svc.ComputeHeatmap()
	if err != nil {
		t.Fatalf("ComputeHeatmap() error = %v", err)
	}
	second, err := svc.ComputeHeatmap()
	if err != nil {
		t.Fatalf("ComputeHeatmap() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeHeatmap() not idempotent: %+v vs %+v", first, second)
	}
}

func TestComputeOptimalTimes(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{slots: []db.TimeSlot{
		slot("CS101", "Tuesday", "10:00", "11:00", 10),
		slot("CS102", "Wednesday", "14:00", "15:00", 2),
		slot("CS103", "Wednesday", "09:00", "10:00", 30),
	}})

	optimal, err := svc.ComputeOptimalTimes()
	if err != nil {
		t.Fatalf("ComputeOptimalTimes() error = %v", err)
	}

	want := []entities.OptimalTime{
		{Day: "Tuesday", StartTime: "10:00", EndTime: "11:00", StudentCount: 10, Recommendation: "Optimal time - lowest student activity"},
		{Day: "Wednesday", StartTime: "14:00", EndTime: "15:00", StudentCount: 2, Recommendation: "Optimal time - lowest student activity"},
	}
	if !reflect.DeepEqual(optimal, want) {
		t.Errorf("ComputeOptimalTimes() = %+v, want %+v", optimal, want)
	}
}

func TestComputeOptimalTimesTieBreaksOnEarliestStart(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{slots: []db.TimeSlot{
		slot("CS101", "Monday", "15:00", "16:00", 4),
		slot("CS102", "Monday", "08:00", "09:00", 4),
	}})
	optimal, err := svc.ComputeOptimalTimes()
	if err != nil {
		t.Fatalf("ComputeOptimalTimes() error = %v", err)
	}
	if len(optimal) != 1 || optimal[0].StartTime != "08:00" {
		t.Errorf("ComputeOptimalTimes() = %+v, want the 08:00 slot", optimal)
	}
}

func TestComputeStats(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{
		courses: 3,
		slots: []db.TimeSlot{
			slot("CS101", "Monday", "10:00", "11:00", 5),
			slot("CS102", "Tuesday", "10:00", "11:30", 20),
			slot("CS103", "Tuesday", "13:00", "14:00", 1),
		},
	})

	stats, err := svc.ComputeStats()
	if err != nil {
		t.Fatalf("ComputeStats() error = %v", err)
	}
	if stats.TotalCourses != 3 || stats.TotalTimeSlots != 3 || stats.TotalStudentsTracked != 26 {
		t.Errorf("ComputeStats() totals = %+v", stats)
	}
	if stats.BusiestDay == nil || *stats.BusiestDay != "Tuesday" {
		t.Errorf("ComputeStats() BusiestDay = %v, want Tuesday", stats.BusiestDay)
	}
	// 10:00 combines Monday and Tuesday across days: 25 students.
	if stats.BusiestTime == nil || *stats.BusiestTime != "10:00" {
		t.Errorf("ComputeStats() BusiestTime = %v, want 10:00", stats.BusiestTime)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{})
	stats, err := svc.ComputeStats()
	if err != nil {
		t.Fatalf("ComputeStats() error = %v", err)
	}
	if stats.TotalCourses != 0 || stats.TotalTimeSlots != 0 || stats.TotalStudentsTracked != 0 {
		t.Errorf("ComputeStats() on empty data = %+v, want zeroes", stats)
	}
	if stats.BusiestDay != nil || stats.BusiestTime != nil {
		t.Errorf("ComputeStats() busiest fields = %v/%v, want nil/nil", stats.BusiestDay, stats.BusiestTime)
	}
}

func TestCalendarSurfacesRepositoryErrors(t *testing.T) {
	svc := NewCalendarService(&stubCourseRepo{err: errors.New("connection refused")})
	if _, err := svc.ComputeHeatmap(); err == nil {
		t.Error("ComputeHeatmap() error = nil, want error")
	}
	if _, err := svc.ComputeOptimalTimes(); err == nil {
		t.Error("ComputeOptimalTimes() error = nil, want error")
	}
	if _, err := svc.ComputeStats(); err == nil {
		t.Error("ComputeStats() error = nil, want error")
	}
}
