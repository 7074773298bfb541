package api

import (
	"encoding/json"
	"net/http"
	"time"

	"campusclubs/internal/auth"
	"campusclubs/internal/db"
	"campusclubs/internal/service"

	"github.com/gorilla/mux"
)

type EventHandler struct {
	Service *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{Service: svc}
}

func parseISODatetime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	// Frontends sometimes omit the zone offset.
	return time.Parse("2006-01-02T15:04:05", s)
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.ListEvents(auth.UserUID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid request body"})
		return
	}
	if req.Name == "" || req.StartDatetime == "" || req.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "name, start_datetime and type are required"})
		return
	}

	start, err := parseISODatetime(req.StartDatetime)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid datetime format, use ISO format"})
		return
	}
	var end *time.Time
	if req.EndDatetime != nil && *req.EndDatetime != "" {
		t, err := parseISODatetime(*req.EndDatetime)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid datetime format, use ISO format"})
			return
		}
		end = &t
	}

	event := &db.Event{
		Name:          req.Name,
		StartDatetime: start,
		EndDatetime:   end,
		ClubUID:       req.ClubUID,
		Description:   req.Description,
		Location:      req.Location,
		Limit:         req.Limit,
		Type:          req.Type,
		Status:        req.Status,
		BannerURL:     req.BannerURL,
	}
	if err := h.Service.CreateEvent(auth.UserUID(r), event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"uid": event.UID, "name": event.Name})
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.Service.GetEvent(mux.Vars(r)["uid"], auth.UserUID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid request body"})
		return
	}

	update := service.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Limit:       req.Limit,
		Type:        req.Type,
		Status:      req.Status,
		BannerURL:   req.BannerURL,
	}
	if req.StartDatetime != nil {
		t, err := parseISODatetime(*req.StartDatetime)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid start_datetime format"})
			return
		}
		update.StartDatetime = &t
	}
	if req.EndDatetime != nil {
		if *req.EndDatetime == "" {
			var cleared *time.Time
			update.EndDatetime = &cleared
		} else {
			t, err := parseISODatetime(*req.EndDatetime)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid end_datetime format"})
				return
			}
			ptr := &t
			update.EndDatetime = &ptr
		}
	}

	if err := h.Service.UpdateEvent(auth.UserUID(r), mux.Vars(r)["uid"], update); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "updated"})
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEvent(auth.UserUID(r), mux.Vars(r)["uid"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "deleted"})
}

func (h *EventHandler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.JoinEvent(auth.UserUID(r), mux.Vars(r)["uid"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"msg": "joined"})
}

func (h *EventHandler) LeaveEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.LeaveEvent(auth.UserUID(r), mux.Vars(r)["uid"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "left event"})
}

func (h *EventHandler) ListClubEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.ListClubEvents(mux.Vars(r)["uid"], auth.UserUID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.Service.ListComments(mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *EventHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid request body"})
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "content required"})
		return
	}

	comment, err := h.Service.AddComment(auth.UserUID(r), mux.Vars(r)["uid"], req.Content, req.ParentUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"uid": comment.UID})
}
