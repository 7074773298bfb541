package repository

import (
	"database/sql"
	"fmt"
	"time"

	"campusclubs/internal/db"
)

// CourseRepository is the persistence surface the calendar aggregation
// and the scraper need. The aggregation only ever reads the full slot
// collection and the course count.
type CourseRepository interface {
	ListTimeSlots() ([]db.TimeSlot, error)
	CountCourses() (int, error)
	UpsertCourse(course *db.Course) error
	ReplaceTimeSlots(courseCode string, slots []db.TimeSlot) error
}

type courseRepository struct {
	db *sql.DB
}

func NewCourseRepository(database *sql.DB) CourseRepository {
	return &courseRepository{db: database}
}

func (r *courseRepository) ListTimeSlots() ([]db.TimeSlot, error) {
	query := `SELECT id, course_code, day_of_week, start_time, end_time, students_count FROM time_slots`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying time slots: %w", err)
	}
	defer rows.Close()

	var slots []db.TimeSlot
	for rows.Next() {
		var s db.TimeSlot
		if err := rows.Scan(&s.ID, &s.CourseCode, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.StudentsCount); err != nil {
			return nil, fmt.Errorf("error scanning time slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating time slots: %w", err)
	}
	return slots, nil
}

func (r *courseRepository) CountCourses() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// UpsertCourse inserts the course or, on a re-scrape of a known code,
// refreshes its name, raw schedule and enrollment.
func (r *courseRepository) UpsertCourse(course *db.Course) error {
	query := `
		INSERT INTO courses (course_code, course_name, schedule_raw, students_enrolled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (course_code) DO UPDATE
		SET course_name = EXCLUDED.course_name,
			schedule_raw = EXCLUDED.schedule_raw,
			students_enrolled = EXCLUDED.students_enrolled,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(query,
		course.CourseCode, course.CourseName, course.ScheduleRaw, course.StudentsEnrolled, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error upserting course %s: %w", course.CourseCode, err)
	}
	return nil
}

// ReplaceTimeSlots deletes the course's existing slots and inserts the
// freshly parsed ones in a single transaction. A full replace, not a
// merge, so stale day/time combinations disappear.
func (r *courseRepository) ReplaceTimeSlots(courseCode string, slots []db.TimeSlot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting slot replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM time_slots WHERE course_code = $1`, courseCode); err != nil {
		return fmt.Errorf("error deleting old time slots for %s: %w", courseCode, err)
	}
	for _, slot := range slots {
		_, err := tx.Exec(`
			INSERT INTO time_slots (course_code, day_of_week, start_time, end_time, students_count)
			VALUES ($1, $2, $3, $4, $5)`,
			courseCode, slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.StudentsCount)
		if err != nil {
			return fmt.Errorf("error inserting time slot for %s: %w", courseCode, err)
		}
	}
	return tx.Commit()
}
