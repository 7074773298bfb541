package main

import (
	"database/sql"
	"log"
	"os"

	"campusclubs/internal/db"
	"campusclubs/internal/repository"
	"campusclubs/internal/schedule"
	"campusclubs/internal/scraper"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	portalURL := os.Getenv("PORTAL_URL")
	if portalURL == "" {
		log.Fatal("PORTAL_URL not set")
	}

	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	s, err := scraper.New(portalURL, os.Getenv("PORTAL_USERNAME"), os.Getenv("PORTAL_PASSWORD"), scraper.SelectorsFromEnv())
	if err != nil {
		log.Fatalf("Failed to create scraper: %v", err)
	}
	if err := s.Login(); err != nil {
		log.Fatalf("Portal login failed: %v", err)
	}

	rows, err := s.FetchCourses()
	if err != nil {
		log.Fatalf("Failed to fetch courses: %v", err)
	}
	if len(rows) == 0 {
		log.Fatal("No courses found; check the portal selectors")
	}
	log.Printf("Found %d course entries", len(rows))

	repo := repository.NewCourseRepository(database)
	saved, slotsTotal := 0, 0
	for _, row := range rows {
		slots := buildSlots(row)

		scheduleRaw := row.ScheduleRaw
		course := &db.Course{
			CourseCode:       row.CourseCode,
			CourseName:       row.CourseName,
			ScheduleRaw:      &scheduleRaw,
			StudentsEnrolled: schedule.ParseEnrollment(row.EnrollmentRaw),
		}
		if err := repo.UpsertCourse(course); err != nil {
			log.Printf("Error saving course %s: %v", row.CourseCode, err)
			continue
		}
		if err := repo.ReplaceTimeSlots(row.CourseCode, slots); err != nil {
			log.Printf("Error saving time slots for %s: %v", row.CourseCode, err)
			continue
		}
		saved++
		slotsTotal += len(slots)
	}
	log.Printf("Saved %d courses and %d time slots", saved, slotsTotal)
}

// buildSlots expands one course row into per-day time slots. A course
// whose schedule has no parseable, well-ordered time range yields no
// slots at all, even when day letters were recognized.
func buildSlots(row scraper.CourseRow) []db.TimeSlot {
	parsed := schedule.ParseSchedule(row.ScheduleRaw)
	start, end, ok := parsed.TimeRange()
	if !ok {
		return nil
	}

	students := schedule.ParseEnrollment(row.EnrollmentRaw)
	slots := make([]db.TimeSlot, 0, len(parsed.Days))
	for _, day := range parsed.Days {
		slots = append(slots, db.TimeSlot{
			CourseCode:    row.CourseCode,
			DayOfWeek:     day,
			StartTime:     start,
			EndTime:       end,
			StudentsCount: students,
		})
	}
	return slots
}
