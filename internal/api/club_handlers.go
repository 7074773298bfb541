package api

import (
	"encoding/json"
	"net/http"

	"campusclubs/internal/auth"
	"campusclubs/internal/service"

	"github.com/gorilla/mux"
)

type ClubHandler struct {
	Service *service.ClubService
}

func NewClubHandler(svc *service.ClubService) *ClubHandler {
	return &ClubHandler{Service: svc}
}

func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	var req CreateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "name required"})
		return
	}

	club, err := h.Service.CreateClub(auth.UserUID(r), req.Name, req.Description, req.Budget, req.SocialLinks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"uid": club.UID, "name": club.Name})
}

func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	club, err := h.Service.GetClub(mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (h *ClubHandler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	var req UpdateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid request body"})
		return
	}

	update := service.ClubUpdate{
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		IconURL:     req.IconURL,
		SocialLinks: req.SocialLinks,
	}
	if err := h.Service.UpdateClub(auth.UserUID(r), mux.Vars(r)["uid"], update); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "updated"})
}

func (h *ClubHandler) JoinClub(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.JoinClub(auth.UserUID(r), mux.Vars(r)["uid"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"msg": "joined"})
}

func (h *ClubHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.ListMembers(mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *ClubHandler) MyClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.Service.MyClubs(auth.UserUID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubs)
}
