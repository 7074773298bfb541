package service

import (
	"fmt"

	"campusclubs/internal/db"
	"campusclubs/internal/entities"
	httperrors "campusclubs/internal/errors"
	"campusclubs/internal/repository"
)

const defaultClubBudget = 500

type ClubService struct {
	Repo *repository.ClubRepository
}

func NewClubService(repo *repository.ClubRepository) *ClubService {
	return &ClubService{Repo: repo}
}

// CreateClub creates the club and makes the creator an exec with the
// "founder" role.
func (s *ClubService) CreateClub(creatorUID, name string, description *string, budget *float64, socialLinks db.JSONMap) (*db.Club, error) {
	club := &db.Club{
		Name:        name,
		Description: description,
		Budget:      defaultClubBudget,
		SocialLinks: socialLinks,
	}
	if budget != nil {
		club.Budget = *budget
	}
	if err := s.Repo.CreateClub(club); err != nil {
		return nil, err
	}

	role := "founder"
	if err := s.Repo.AddMember(creatorUID, club.UID, "exec", &role); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *ClubService) GetClub(uid string) (*entities.ClubResponse, error) {
	club, err := s.Repo.GetClub(uid)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, httperrors.ErrNotFound("club not found")
	}
	return &entities.ClubResponse{
		UID:         club.UID,
		Name:        club.Name,
		Description: club.Description,
		Budget:      fmt.Sprintf("%.2f", club.Budget),
		IconURL:     club.IconURL,
		SocialLinks: club.SocialLinks,
	}, nil
}

// ClubUpdate carries optional fields for a partial club update.
type ClubUpdate struct {
	Name        *string
	Description *string
	Budget      *float64
	IconURL     *string
	SocialLinks db.JSONMap
}

// UpdateClub applies a partial update; only club execs may call it.
func (s *ClubService) UpdateClub(userUID, clubUID string, update ClubUpdate) error {
	isExec, err := s.Repo.IsExec(userUID, clubUID)
	if err != nil {
		return err
	}
	if !isExec {
		return httperrors.ErrForbidden("only club execs can edit club info")
	}

	club, err := s.Repo.GetClub(clubUID)
	if err != nil {
		return err
	}
	if club == nil {
		return httperrors.ErrNotFound("club not found")
	}

	if update.Name != nil {
		club.Name = *update.Name
	}
	if update.Description != nil {
		club.Description = update.Description
	}
	if update.Budget != nil {
		club.Budget = *update.Budget
	}
	if update.IconURL != nil {
		club.IconURL = update.IconURL
	}
	if update.SocialLinks != nil {
		club.SocialLinks = update.SocialLinks
	}
	return s.Repo.UpdateClub(club)
}

// JoinClub adds the user as a plain member; duplicate joins are a 400.
func (s *ClubService) JoinClub(userUID, clubUID string) error {
	club, err := s.Repo.GetClub(clubUID)
	if err != nil {
		return err
	}
	if club == nil {
		return httperrors.ErrNotFound("club not found")
	}

	existing, err := s.Repo.GetMembership(userUID, clubUID)
	if err != nil {
		return err
	}
	if existing != nil {
		return httperrors.ErrBadRequest("already a member")
	}
	return s.Repo.AddMember(userUID, clubUID, "member", nil)
}

func (s *ClubService) ListMembers(clubUID string) ([]entities.ClubMemberResponse, error) {
	members, err := s.Repo.ListMembers(clubUID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []entities.ClubMemberResponse{}
	}
	return members, nil
}

func (s *ClubService) MyClubs(userUID string) ([]entities.MyClubResponse, error) {
	clubs, err := s.Repo.ListExecClubs(userUID)
	if err != nil {
		return nil, err
	}
	if clubs == nil {
		clubs = []entities.MyClubResponse{}
	}
	return clubs, nil
}
