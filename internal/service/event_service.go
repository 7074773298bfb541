package service

import (
	"log"
	"time"

	"campusclubs/internal/db"
	"campusclubs/internal/entities"
	httperrors "campusclubs/internal/errors"
	"campusclubs/internal/repository"
)

type EventService struct {
	Repo     *repository.EventRepository
	Clubs    *repository.ClubRepository
	Users    *repository.UserRepository
	Comments *repository.CommentRepository
	Notify   *NotifyService
}

func NewEventService(repo *repository.EventRepository, clubs *repository.ClubRepository,
	users *repository.UserRepository, comments *repository.CommentRepository, notify *NotifyService) *EventService {
	return &EventService{Repo: repo, Clubs: clubs, Users: users, Comments: comments, Notify: notify}
}

// computedStatus derives the visible status from the end time: an event
// with a past end time reads "completed" regardless of its stored status.
func computedStatus(event *db.Event) string {
	if event.EndDatetime != nil && event.EndDatetime.Before(time.Now().UTC()) {
		return "completed"
	}
	return "upcoming"
}

func (s *EventService) toResponse(event *db.Event, viewerUID string) (*entities.EventResponse, error) {
	count, err := s.Repo.CountParticipants(event.UID)
	if err != nil {
		return nil, err
	}

	resp := &entities.EventResponse{
		UID:              event.UID,
		Name:             event.Name,
		Description:      event.Description,
		StartDatetime:    event.StartDatetime.Format(time.RFC3339),
		Location:         event.Location,
		Limit:            event.Limit,
		Type:             event.Type,
		Status:           computedStatus(event),
		ClubUID:          event.ClubUID,
		ParticipantCount: count,
		BannerURL:        event.BannerURL,
	}
	if event.EndDatetime != nil {
		end := event.EndDatetime.Format(time.RFC3339)
		resp.EndDatetime = &end
	}
	if event.ClubUID != nil {
		club, err := s.Clubs.GetClub(*event.ClubUID)
		if err != nil {
			return nil, err
		}
		if club != nil {
			resp.ClubName = &club.Name
			resp.ClubIcon = club.IconURL
		}
	}
	if viewerUID != "" {
		attending, err := s.Repo.IsParticipant(viewerUID, event.UID)
		if err != nil {
			return nil, err
		}
		resp.IsAttending = attending
	}
	return resp, nil
}

// ListEvents returns every event, newest start first.
func (s *EventService) ListEvents(viewerUID string) ([]entities.EventResponse, error) {
	events, err := s.Repo.ListEvents()
	if err != nil {
		return nil, err
	}
	return s.toResponses(events, viewerUID)
}

// ListClubEvents returns the events of one club.
func (s *EventService) ListClubEvents(clubUID, viewerUID string) ([]entities.EventResponse, error) {
	club, err := s.Clubs.GetClub(clubUID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, httperrors.ErrNotFound("club not found")
	}
	events, err := s.Repo.ListEventsByClub(clubUID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(events, viewerUID)
}

func (s *EventService) toResponses(events []db.Event, viewerUID string) ([]entities.EventResponse, error) {
	result := make([]entities.EventResponse, 0, len(events))
	for i := range events {
		resp, err := s.toResponse(&events[i], viewerUID)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// CreateEvent creates an event; club-linked events require the creator
// to be an exec of the club.
func (s *EventService) CreateEvent(creatorUID string, event *db.Event) error {
	if event.ClubUID != nil {
		club, err := s.Clubs.GetClub(*event.ClubUID)
		if err != nil {
			return err
		}
		if club == nil {
			return httperrors.ErrNotFound("club not found")
		}
		isExec, err := s.Clubs.IsExec(creatorUID, *event.ClubUID)
		if err != nil {
			return err
		}
		if !isExec {
			return httperrors.ErrForbidden("only club execs can create events for this club")
		}
	}
	return s.Repo.CreateEvent(event)
}

func (s *EventService) GetEvent(uid, viewerUID string) (*entities.EventResponse, error) {
	event, err := s.Repo.GetEvent(uid)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, httperrors.ErrNotFound("event not found")
	}
	return s.toResponse(event, viewerUID)
}

// EventUpdate carries optional fields for a partial event update.
type EventUpdate struct {
	Name          *string
	StartDatetime *time.Time
	EndDatetime   **time.Time
	Description   *string
	Location      *string
	Limit         *int
	Type          *string
	Status        *string
	BannerURL     *string
}

// UpdateEvent applies a partial update; club-linked events require exec.
func (s *EventService) UpdateEvent(userUID, eventUID string, update EventUpdate) error {
	event, err := s.requireManageable(userUID, eventUID, "only club execs can edit this event")
	if err != nil {
		return err
	}

	if update.Name != nil {
		event.Name = *update.Name
	}
	if update.StartDatetime != nil {
		event.StartDatetime = *update.StartDatetime
	}
	if update.EndDatetime != nil {
		event.EndDatetime = *update.EndDatetime
	}
	if update.Description != nil {
		event.Description = update.Description
	}
	if update.Location != nil {
		event.Location = update.Location
	}
	if update.Limit != nil {
		event.Limit = update.Limit
	}
	if update.Type != nil {
		event.Type = *update.Type
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	if update.BannerURL != nil {
		event.BannerURL = update.BannerURL
	}
	return s.Repo.UpdateEvent(event)
}

// DeleteEvent removes the event; club-linked events require exec.
func (s *EventService) DeleteEvent(userUID, eventUID string) error {
	if _, err := s.requireManageable(userUID, eventUID, "only club execs can delete this event"); err != nil {
		return err
	}
	return s.Repo.DeleteEvent(eventUID)
}

func (s *EventService) requireManageable(userUID, eventUID, forbiddenMsg string) (*db.Event, error) {
	event, err := s.Repo.GetEvent(eventUID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, httperrors.ErrNotFound("event not found")
	}
	if event.ClubUID != nil {
		isExec, err := s.Clubs.IsExec(userUID, *event.ClubUID)
		if err != nil {
			return nil, err
		}
		if !isExec {
			return nil, httperrors.ErrForbidden(forbiddenMsg)
		}
	}
	return event, nil
}

// JoinEvent registers the user for an event. Club events require club
// membership, completed events cannot be joined, and duplicate joins
// are rejected.
func (s *EventService) JoinEvent(userUID, eventUID string) error {
	event, err := s.Repo.GetEvent(eventUID)
	if err != nil {
		return err
	}
	if event == nil {
		return httperrors.ErrNotFound("event not found")
	}

	if event.ClubUID != nil {
		membership, err := s.Clubs.GetMembership(userUID, *event.ClubUID)
		if err != nil {
			return err
		}
		if membership == nil {
			return httperrors.ErrForbidden("must be a club member to join this event")
		}
	}

	joined, err := s.Repo.IsParticipant(userUID, eventUID)
	if err != nil {
		return err
	}
	if joined {
		return httperrors.ErrBadRequest("already joined")
	}

	if computedStatus(event) == "completed" {
		return httperrors.ErrForbidden("cannot join a completed event")
	}

	participantType := "online"
	if event.Type == "in-person" {
		participantType = "inperson"
	}
	if err := s.Repo.AddParticipant(userUID, eventUID, participantType); err != nil {
		return err
	}

	go func(userUID string, event db.Event) {
		user, err := s.Users.GetByUID(userUID)
		if err != nil || user == nil {
			return
		}
		if err := s.Notify.SendEventJoinEmail(*user, event); err != nil {
			log.Printf("Failed to send join confirmation for event %s to %s: %v", event.UID, user.Email, err)
		}
	}(userUID, *event)
	return nil
}

// LeaveEvent removes the user's participation.
func (s *EventService) LeaveEvent(userUID, eventUID string) error {
	event, err := s.Repo.GetEvent(eventUID)
	if err != nil {
		return err
	}
	if event == nil {
		return httperrors.ErrNotFound("event not found")
	}

	removed, err := s.Repo.RemoveParticipant(userUID, eventUID)
	if err != nil {
		return err
	}
	if !removed {
		return httperrors.ErrBadRequest("not registered for this event")
	}
	return nil
}

// ListComments returns the event's comments threaded: top-level comments
// oldest first, each with its replies nested.
func (s *EventService) ListComments(eventUID string) ([]entities.CommentResponse, error) {
	event, err := s.Repo.GetEvent(eventUID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, httperrors.ErrNotFound("event not found")
	}

	comments, err := s.Comments.ListByEvent(eventUID)
	if err != nil {
		return nil, err
	}
	return threadComments(comments), nil
}

// threadComments nests replies under their parents at any depth. Comments
// arrive ordered by created_at, so a parent is always seen before its
// replies and the tree cannot cycle.
func threadComments(comments []repository.CommentWithAuthor) []entities.CommentResponse {
	byUID := make(map[string]*entities.CommentResponse, len(comments))
	children := make(map[string][]string, len(comments))
	var topLevel []string
	for _, c := range comments {
		byUID[c.UID] = &entities.CommentResponse{
			UID:       c.UID,
			UserUID:   c.UserUID,
			UserName:  c.UserName,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
		if c.ParentUID == nil {
			topLevel = append(topLevel, c.UID)
		} else if _, ok := byUID[*c.ParentUID]; ok {
			children[*c.ParentUID] = append(children[*c.ParentUID], c.UID)
		}
	}

	var materialize func(uid string) entities.CommentResponse
	materialize = func(uid string) entities.CommentResponse {
		resp := *byUID[uid]
		resp.Replies = make([]entities.CommentResponse, 0, len(children[uid]))
		for _, child := range children[uid] {
			resp.Replies = append(resp.Replies, materialize(child))
		}
		return resp
	}

	result := make([]entities.CommentResponse, 0, len(topLevel))
	for _, uid := range topLevel {
		result = append(result, materialize(uid))
	}
	return result
}

// AddComment posts a comment or, with a parent, a reply.
func (s *EventService) AddComment(userUID, eventUID, content string, parentUID *string) (*db.Comment, error) {
	event, err := s.Repo.GetEvent(eventUID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, httperrors.ErrNotFound("event not found")
	}

	comment := &db.Comment{
		EventUID:  eventUID,
		UserUID:   userUID,
		ParentUID: parentUID,
		Content:   content,
	}
	if err := s.Comments.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
