package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nhle/taskboard/internal/checklist"
)

type checklistResponse struct {
	checklist.View
	Applied bool `json:"applied"`
}

// cardVars resolves the list and card from the path, writing 404 when the
// card is unknown.
func (s *Server) cardVars(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	vars := mux.Vars(r)
	listID, cardID := vars["listID"], vars["cardID"]
	if s.Board.FindCard(listID, cardID) == nil {
		writeError(w, http.StatusNotFound, "card not found")
		return "", "", false
	}
	return listID, cardID, true
}

func indexVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return idx, true
}

// GetChecklist handles GET /lists/{listID}/cards/{cardID}/checklist.
func (s *Server) GetChecklist(w http.ResponseWriter, r *http.Request) {
	listID, cardID, ok := s.cardVars(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, checklistResponse{View: s.Checklist.Render(listID, cardID)})
}

// AddChecklistItem handles POST /lists/{listID}/cards/{cardID}/checklist.
func (s *Server) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	listID, cardID, ok := s.cardVars(w, r)
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	view, applied := s.Checklist.Add(listID, cardID, body.Text)
	status := http.StatusOK
	if applied {
		status = http.StatusCreated
	}
	writeJSON(w, status, checklistResponse{View: view, Applied: applied})
}

// ToggleChecklistItem handles POST .../checklist/{index}/toggle.
func (s *Server) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	listID, cardID, ok := s.cardVars(w, r)
	if !ok {
		return
	}
	idx, ok := indexVar(w, r)
	if !ok {
		return
	}
	view, applied := s.Checklist.Toggle(listID, cardID, idx)
	writeJSON(w, http.StatusOK, checklistResponse{View: view, Applied: applied})
}

// DeleteChecklistItem handles DELETE .../checklist/{index}.
func (s *Server) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	listID, cardID, ok := s.cardVars(w, r)
	if !ok {
		return
	}
	idx, ok := indexVar(w, r)
	if !ok {
		return
	}
	view, applied := s.Checklist.DeleteOne(listID, cardID, idx)
	writeJSON(w, http.StatusOK, checklistResponse{View: view, Applied: applied})
}

// ClearDoneItems handles POST .../checklist/clear-done.
func (s *Server) ClearDoneItems(w http.ResponseWriter, r *http.Request) {
	listID, cardID, ok := s.cardVars(w, r)
	if !ok {
		return
	}
	view, applied := s.Checklist.DeleteDone(listID, cardID)
	writeJSON(w, http.StatusOK, checklistResponse{View: view, Applied: applied})
}
