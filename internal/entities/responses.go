package entities

import "campusclubs/internal/db"

// Auth

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	UID         string `json:"uid"`
}

type MeResponse struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Clubs

type ClubResponse struct {
	UID         string     `json:"uid"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Budget      string     `json:"budget"`
	IconURL     *string    `json:"icon_url,omitempty"`
	SocialLinks db.JSONMap `json:"social_links"`
}

type ClubMemberResponse struct {
	UserUID string  `json:"user_uid"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Role    *string `json:"role"`
}

type MyClubResponse struct {
	UID    string  `json:"uid"`
	Name   string  `json:"name"`
	Role   *string `json:"role"`
	Budget string  `json:"budget"`
}

// Events

type EventResponse struct {
	UID              string  `json:"uid"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	StartDatetime    string  `json:"start_datetime"`
	EndDatetime      *string `json:"end_datetime"`
	Location         *string `json:"location"`
	Limit            *int    `json:"limit"`
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	ClubUID          *string `json:"club_uid"`
	ClubName         *string `json:"club_name"`
	ClubIcon         *string `json:"club_icon,omitempty"`
	ParticipantCount int     `json:"participant_count"`
	BannerURL        *string `json:"banner_url"`
	IsAttending      bool    `json:"is_attending"`
}

// Comments

type CommentResponse struct {
	UID       string            `json:"uid"`
	UserUID   string            `json:"user_uid"`
	UserName  string            `json:"user_name"`
	Content   string            `json:"content"`
	CreatedAt string            `json:"created_at"`
	Replies   []CommentResponse `json:"replies"`
}

// Calendar

// DensityCell is one (day, start, end) group of the heatmap. Density
// duplicates TotalStudents on purpose: the frontend keys heat intensity
// off the "density" field.
type DensityCell struct {
	Day           string `json:"day"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	TotalStudents int    `json:"total_students"`
	CourseCount   int    `json:"course_count"`
	Density       int    `json:"density"`
}

type OptimalTime struct {
	Day            string `json:"day"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	StudentCount   int    `json:"student_count"`
	Recommendation string `json:"recommendation"`
}

type CalendarStats struct {
	TotalCourses         int     `json:"total_courses"`
	TotalTimeSlots       int     `json:"total_time_slots"`
	TotalStudentsTracked int     `json:"total_students_tracked"`
	BusiestDay           *string `json:"busiest_day"`
	BusiestTime          *string `json:"busiest_time"`
}
