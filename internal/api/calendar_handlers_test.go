package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusclubs/internal/db"
	"campusclubs/internal/service"
)

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

func newCalendarHandler(repo *stubCourseRepo) *CalendarHandler {
	return NewCalendarHandler(service.NewCalendarService(repo))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

func TestCalendarEndpointsSuccessShape(t *testing.T) {
	repo := &stubCourseRepo{
		slots: []db.TimeSlot{
			{CourseCode: "CS101", DayOfWeek: "Monday", StartTime: "10:00", EndTime: "11:30", StudentsCount: 25},
			{CourseCode: "MATH200", DayOfWeek: "Monday", StartTime: "10:00", EndTime: "11:30", StudentsCount: 15},
			{CourseCode: "ENG150", DayOfWeek: "Tuesday", StartTime: "14:00", EndTime: "15:15", StudentsCount: 5},
		},
		courses: 3,
	}
	h := newCalendarHandler(repo)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		path    string
		keys    []string
	}{
		{"heatmap", h.Heatmap, "/calendar/heatmap", []string{"success", "data", "total_slots"}},
		{"optimal times", h.OptimalTimes, "/calendar/optimal-times", []string{"success", "optimal_times"}},
		{"stats", h.Stats, "/calendar/stats", []string{"success", "stats"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			body := decodeBody(t, rec)
			for _, key := range tt.keys {
				if _, ok := body[key]; !ok {
					t.Errorf("response missing %q key: %v", key, body)
				}
			}
			if success, _ := body["success"].(bool); !success {
				t.Errorf("success = %v, want true", body["success"])
			}
		})
	}
}

func TestCalendarHeatmapPayload(t *testing.T) {
	repo := &stubCourseRepo{
		slots: []db.TimeSlot{
			{CourseCode: "CS101", DayOfWeek: "Monday", StartTime: "10:00", EndTime: "11:30", StudentsCount: 25},
			{CourseCode: "MATH200", DayOfWeek: "Monday", StartTime: "10:00", EndTime: "11:30", StudentsCount: 15},
		},
	}
	rec := httptest.NewRecorder()
	newCalendarHandler(repo).Heatmap(rec, httptest.NewRequest(http.MethodGet, "/calendar/heatmap", nil))

	body := decodeBody(t, rec)
	if total, _ := body["total_slots"].(float64); total != 1 {
		t.Errorf("total_slots = %v, want 1", body["total_slots"])
	}
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v, want one grouped cell", body["data"])
	}
	cell, _ := data[0].(map[string]interface{})
	if students, _ := cell["total_students"].(float64); students != 40 {
		t.Errorf("total_students = %v, want 40", cell["total_students"])
	}
}

func TestCalendarEndpointsErrorShape(t *testing.T) {
	repo := &stubCourseRepo{err: errors.New("connection refused")}
	h := newCalendarHandler(repo)

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"heatmap", h.Heatmap},
		{"optimal times", h.OptimalTimes},
		{"stats", h.Stats},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodGet, "/calendar/x", nil))

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
			}
			body := decodeBody(t, rec)
			msg, ok := body["error"].(string)
			if !ok || msg == "" {
				t.Fatalf("error field = %v, want non-empty message", body["error"])
			}
			if _, hasSuccess := body["success"]; hasSuccess {
				t.Errorf("failure response should not carry success flag: %v", body)
			}
		})
	}
}
