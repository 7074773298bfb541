package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusclubs/internal/db"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(database *sql.DB) *EventRepository {
	return &EventRepository{DB: database}
}

const eventColumns = `uid, name, start_datetime, end_datetime, club_uid, description, location, attendee_limit, type, status, banner_url, reminder_sent`

func scanEvent(row interface{ Scan(...interface{}) error }) (*db.Event, error) {
	var e db.Event
	err := row.Scan(
		&e.UID, &e.Name, &e.StartDatetime, &e.EndDatetime, &e.ClubUID,
		&e.Description, &e.Location, &e.Limit, &e.Type, &e.Status,
		&e.BannerURL, &e.ReminderSent)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) CreateEvent(event *db.Event) error {
	event.UID = uuid.NewString()
	if event.Status == "" {
		event.Status = "scheduled"
	}
	query := `
		INSERT INTO events (uid, name, start_datetime, end_datetime, club_uid, description, location, attendee_limit, type, status, banner_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.Exec(query,
		event.UID, event.Name, event.StartDatetime, event.EndDatetime, event.ClubUID,
		event.Description, event.Location, event.Limit, event.Type, event.Status, event.BannerURL)
	if err != nil {
		return fmt.Errorf("error inserting event: %w", err)
	}
	return nil
}

// GetEvent returns nil, nil when the event does not exist.
func (r *EventRepository) GetEvent(uid string) (*db.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE uid = $1`
	event, err := scanEvent(r.DB.QueryRow(query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying event: %w", err)
	}
	return event, nil
}

// ListEvents returns all events, newest start first.
func (r *EventRepository) ListEvents() ([]db.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_datetime DESC`
	return r.queryEvents(query)
}

// ListEventsByClub returns the club's events, newest start first.
func (r *EventRepository) ListEventsByClub(clubUID string) ([]db.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE club_uid = $1 ORDER BY start_datetime DESC`
	return r.queryEvents(query, clubUID)
}

func (r *EventRepository) queryEvents(query string, args ...interface{}) ([]db.Event, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []db.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) UpdateEvent(event *db.Event) error {
	query := `
		UPDATE events SET name = $1, start_datetime = $2, end_datetime = $3, description = $4,
			location = $5, attendee_limit = $6, type = $7, status = $8, banner_url = $9
		WHERE uid = $10`
	_, err := r.DB.Exec(query,
		event.Name, event.StartDatetime, event.EndDatetime, event.Description,
		event.Location, event.Limit, event.Type, event.Status, event.BannerURL, event.UID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	return nil
}

// DeleteEvent removes the event and its participants and comments.
func (r *EventRepository) DeleteEvent(uid string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM event_participants WHERE event_uid = $1`, uid); err != nil {
		return fmt.Errorf("error deleting event participants: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE event_uid = $1`, uid); err != nil {
		return fmt.Errorf("error deleting event comments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM events WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	return tx.Commit()
}

func (r *EventRepository) CountParticipants(eventUID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM event_participants WHERE event_uid = $1`
	if err := r.DB.QueryRow(query, eventUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting participants: %w", err)
	}
	return count, nil
}

// IsParticipant reports whether the user already joined the event.
func (r *EventRepository) IsParticipant(userUID, eventUID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_participants WHERE user_uid = $1 AND event_uid = $2)`
	if err := r.DB.QueryRow(query, userUID, eventUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking participation: %w", err)
	}
	return exists, nil
}

func (r *EventRepository) AddParticipant(userUID, eventUID, participantType string) error {
	query := `
		INSERT INTO event_participants (user_uid, event_uid, type, joined_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.DB.Exec(query, userUID, eventUID, participantType, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error inserting participant: %w", err)
	}
	return nil
}

// RemoveParticipant reports whether a participation row was deleted.
func (r *EventRepository) RemoveParticipant(userUID, eventUID string) (bool, error) {
	result, err := r.DB.Exec(`DELETE FROM event_participants WHERE user_uid = $1 AND event_uid = $2`, userUID, eventUID)
	if err != nil {
		return false, fmt.Errorf("error deleting participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return affected > 0, nil
}

// GetScheduledEventUIDsPastEnd finds scheduled events whose end time has passed.
func (r *EventRepository) GetScheduledEventUIDsPastEnd() ([]string, error) {
	query := `SELECT uid FROM events WHERE status = 'scheduled' AND end_datetime IS NOT NULL AND end_datetime < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying ended events: %w", err)
	}
	defer rows.Close()

	var uids []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("error scanning event uid: %w", err)
		}
		uids = append(uids, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating ended events: %w", err)
	}
	return uids, nil
}

// UpdateEventStatuses sets the status on a batch of events.
func (r *EventRepository) UpdateEventStatuses(uids []string, newStatus string) error {
	if len(uids) == 0 {
		return nil
	}
	query := `UPDATE events SET status = $1 WHERE uid = ANY($2)`
	if _, err := r.DB.Exec(query, newStatus, pq.Array(uids)); err != nil {
		return fmt.Errorf("error updating event statuses: %w", err)
	}
	return nil
}

// GetEventsStartingBefore finds scheduled events that start before the
// cutoff and have not had reminders sent yet.
func (r *EventRepository) GetEventsStartingBefore(cutoff time.Time) ([]db.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = 'scheduled' AND reminder_sent = FALSE
		AND start_datetime > NOW() AND start_datetime <= $1`
	return r.queryEvents(query, cutoff)
}

func (r *EventRepository) MarkReminderSent(eventUID string) error {
	if _, err := r.DB.Exec(`UPDATE events SET reminder_sent = TRUE WHERE uid = $1`, eventUID); err != nil {
		return fmt.Errorf("error marking reminder sent: %w", err)
	}
	return nil
}

// GetParticipantPhones returns the phone numbers of participants who
// registered one.
func (r *EventRepository) GetParticipantPhones(eventUID string) ([]string, error) {
	query := `
		SELECT u.phone
		FROM event_participants ep
		JOIN users u ON u.uid = ep.user_uid
		WHERE ep.event_uid = $1 AND u.phone IS NOT NULL`
	rows, err := r.DB.Query(query, eventUID)
	if err != nil {
		return nil, fmt.Errorf("error querying participant phones: %w", err)
	}
	defer rows.Close()

	var phones []string
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("error scanning phone: %w", err)
		}
		phones = append(phones, phone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating phones: %w", err)
	}
	return phones, nil
}
