package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap stores a flat string map in a JSONB column (club social links).
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
	return json.Unmarshal(b, m)
}

type User struct {
	UID          string
	Name         string
	Email        string
	Phone        *string
	PasswordHash string
}

type Club struct {
	UID         string
	Name        string
	Description *string
	Budget      float64
	IconURL     *string
	SocialLinks JSONMap
	Status      string
}

type ClubMember struct {
	ID       int
	UserUID  string
	ClubUID  string
	Type     string // "member" or "exec"
	Role     *string
	JoinedAt time.Time
}

type Event struct {
	UID           string
	Name          string
	StartDatetime time.Time
	EndDatetime   *time.Time
	ClubUID       *string
	Description   *string
	Location      *string
	Limit         *int
	Type          string // "in-person" or "online"
	Status        string
	BannerURL     *string
	ReminderSent  bool
}

type EventParticipant struct {
	ID       int
	UserUID  string
	EventUID string
	Type     string // "inperson" or "online"
	JoinedAt time.Time
}

type Comment struct {
	UID       string
	EventUID  string
	UserUID   string
	ParentUID *string
	Content   string
	CreatedAt time.Time
}

// Course is a scraped portal course. ScheduleRaw keeps the unparsed
// schedule string for audit.
type Course struct {
	ID               int
	CourseCode       string
	CourseName       string
	ScheduleRaw      *string
	StudentsEnrolled int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TimeSlot is one day/time occurrence of a course. Start and end are
// zero-padded "HH:MM" strings so lexical order matches clock order.
type TimeSlot struct {
	ID            int
	CourseCode    string
	DayOfWeek     string
	StartTime     string
	EndTime       string
	StudentsCount int
}
