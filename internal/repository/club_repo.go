package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusclubs/internal/db"
	"campusclubs/internal/entities"

	"github.com/google/uuid"
)

type ClubRepository struct {
	DB *sql.DB
}

func NewClubRepository(database *sql.DB) *ClubRepository {
	return &ClubRepository{DB: database}
}

func (r *ClubRepository) CreateClub(club *db.Club) error {
	club.UID = uuid.NewString()
	if club.Status == "" {
		club.Status = "Approved"
	}
	query := `
		INSERT INTO clubs (uid, name, description, budget, icon_url, social_links, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.Exec(query,
		club.UID, club.Name, club.Description, club.Budget, club.IconURL, club.SocialLinks, club.Status)
	if err != nil {
		return fmt.Errorf("error inserting club: %w", err)
	}
	return nil
}

// GetClub returns nil, nil when the club does not exist.
func (r *ClubRepository) GetClub(uid string) (*db.Club, error) {
	var club db.Club
	query := `SELECT uid, name, description, budget, icon_url, social_links, status FROM clubs WHERE uid = $1`
	err := r.DB.QueryRow(query, uid).Scan(
		&club.UID, &club.Name, &club.Description, &club.Budget, &club.IconURL, &club.SocialLinks, &club.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying club: %w", err)
	}
	return &club, nil
}

func (r *ClubRepository) UpdateClub(club *db.Club) error {
	query := `
		UPDATE clubs SET name = $1, description = $2, budget = $3, icon_url = $4, social_links = $5
		WHERE uid = $6`
	_, err := r.DB.Exec(query,
		club.Name, club.Description, club.Budget, club.IconURL, club.SocialLinks, club.UID)
	if err != nil {
		return fmt.Errorf("error updating club: %w", err)
	}
	return nil
}

func (r *ClubRepository) AddMember(userUID, clubUID, memberType string, role *string) error {
	query := `
		INSERT INTO club_members (user_uid, club_uid, type, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(query, userUID, clubUID, memberType, role, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error inserting club member: %w", err)
	}
	return nil
}

// GetMembership returns nil, nil when the user has no membership row.
func (r *ClubRepository) GetMembership(userUID, clubUID string) (*db.ClubMember, error) {
	var m db.ClubMember
	query := `
		SELECT id, user_uid, club_uid, type, role, joined_at
		FROM club_members WHERE user_uid = $1 AND club_uid = $2`
	err := r.DB.QueryRow(query, userUID, clubUID).Scan(
		&m.ID, &m.UserUID, &m.ClubUID, &m.Type, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying club membership: %w", err)
	}
	return &m, nil
}

// IsExec reports whether the user holds an exec membership in the club.
func (r *ClubRepository) IsExec(userUID, clubUID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM club_members WHERE user_uid = $1 AND club_uid = $2 AND type = 'exec'
		)`
	if err := r.DB.QueryRow(query, userUID, clubUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking exec membership: %w", err)
	}
	return exists, nil
}

// ListMembers joins the users table so the member listing carries names.
func (r *ClubRepository) ListMembers(clubUID string) ([]entities.ClubMemberResponse, error) {
	query := `
		SELECT cm.user_uid, u.name, cm.type, cm.role
		FROM club_members cm
		JOIN users u ON u.uid = cm.user_uid
		WHERE cm.club_uid = $1
		ORDER BY cm.joined_at`
	rows, err := r.DB.Query(query, clubUID)
	if err != nil {
		return nil, fmt.Errorf("error querying club members: %w", err)
	}
	defer rows.Close()

	var members []entities.ClubMemberResponse
	for rows.Next() {
		var m entities.ClubMemberResponse
		if err := rows.Scan(&m.UserUID, &m.Name, &m.Type, &m.Role); err != nil {
			return nil, fmt.Errorf("error scanning club member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating club members: %w", err)
	}
	return members, nil
}

// ListExecClubs returns the clubs where the user is an exec, with their role.
func (r *ClubRepository) ListExecClubs(userUID string) ([]entities.MyClubResponse, error) {
	query := `
		SELECT c.uid, c.name, cm.role, c.budget
		FROM club_members cm
		JOIN clubs c ON c.uid = cm.club_uid
		WHERE cm.user_uid = $1 AND cm.type = 'exec'
		ORDER BY c.name`
	rows, err := r.DB.Query(query, userUID)
	if err != nil {
		return nil, fmt.Errorf("error querying exec clubs: %w", err)
	}
	defer rows.Close()

	var clubs []entities.MyClubResponse
	for rows.Next() {
		var c entities.MyClubResponse
		if err := rows.Scan(&c.UID, &c.Name, &c.Role, &c.Budget); err != nil {
			return nil, fmt.Errorf("error scanning exec club: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating exec clubs: %w", err)
	}
	return clubs, nil
}
