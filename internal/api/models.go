package api

import "campusclubs/internal/db"

// Auth
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Clubs
type CreateClubRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Budget      *float64   `json:"budget"`
	SocialLinks db.JSONMap `json:"social_links"`
}

type UpdateClubRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Budget      *float64   `json:"budget"`
	IconURL     *string    `json:"icon_url"`
	SocialLinks db.JSONMap `json:"social_links"`
}

// Events
type CreateEventRequest struct {
	Name          string  `json:"name"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   *string `json:"end_datetime"`
	Description   *string `json:"description"`
	Location      *string `json:"location"`
	Limit         *int    `json:"limit"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	ClubUID       *string `json:"club_uid"`
	BannerURL     *string `json:"banner_url"`
}

type UpdateEventRequest struct {
	Name          *string `json:"name"`
	StartDatetime *string `json:"start_datetime"`
	EndDatetime   *string `json:"end_datetime"`
	Description   *string `json:"description"`
	Location      *string `json:"location"`
	Limit         *int    `json:"limit"`
	Type          *string `json:"type"`
	Status        *string `json:"status"`
	BannerURL     *string `json:"banner_url"`
}

// Comments
type CreateCommentRequest struct {
	Content   string  `json:"content"`
	ParentUID *string `json:"parent_uid"`
}
