package service

import (
	"fmt"
	"log"
	"time"

	"campusclubs/internal/repository"
)

// Reminders go out to participants of events starting within this window.
const reminderWindow = time.Hour

type JobService struct {
	Repo   *repository.EventRepository
	Notify *NotifyService
}

func NewJobService(repo *repository.EventRepository, notify *NotifyService) *JobService {
	return &JobService{Repo: repo, Notify: notify}
}

// MarkEndedEventsCompleted finds scheduled events past their end time and
// flips their stored status to "completed".
func (s *JobService) MarkEndedEventsCompleted() error {
	uids, err := s.Repo.GetScheduledEventUIDsPastEnd()
	if err != nil {
		return fmt.Errorf("cron job: failed to get ended events: %w", err)
	}
	if len(uids) == 0 {
		return nil
	}

	if err := s.Repo.UpdateEventStatuses(uids, "completed"); err != nil {
		return fmt.Errorf("cron job: failed to update event statuses: %w", err)
	}
	log.Printf("Cron job: marked %d events as completed", len(uids))
	return nil
}

// SendUpcomingEventReminders texts participants of events starting within
// the next hour, once per event.
func (s *JobService) SendUpcomingEventReminders() error {
	events, err := s.Repo.GetEventsStartingBefore(time.Now().UTC().Add(reminderWindow))
	if err != nil {
		return fmt.Errorf("cron job: failed to get upcoming events: %w", err)
	}

	for _, event := range events {
		phones, err := s.Repo.GetParticipantPhones(event.UID)
		if err != nil {
			log.Printf("Cron job: failed to get participant phones for event %s: %v", event.UID, err)
			continue
		}
		for _, phone := range phones {
			if err := s.Notify.SendEventReminderSMS(phone, event); err != nil {
				log.Printf("Cron job: failed to send reminder SMS for event %s: %v", event.UID, err)
			}
		}
		if err := s.Repo.MarkReminderSent(event.UID); err != nil {
			log.Printf("Cron job: failed to mark reminder sent for event %s: %v", event.UID, err)
		}
	}
	return nil
}
