package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

const checklistPath = "/lists/{listID}/cards/{cardID}/checklist"

// RegisterRoutes sets up all routes for the API.
func RegisterRoutes(router *mux.Router, s *Server) {
	router.HandleFunc("/board", s.GetBoard).Methods(http.MethodGet)

	router.HandleFunc(checklistPath, s.GetChecklist).Methods(http.MethodGet)
	router.HandleFunc(checklistPath, s.AddChecklistItem).Methods(http.MethodPost)
	router.HandleFunc(checklistPath+"/clear-done", s.ClearDoneItems).Methods(http.MethodPost)
	router.HandleFunc(checklistPath+"/{index:-?[0-9]+}/toggle", s.ToggleChecklistItem).Methods(http.MethodPost)
	router.HandleFunc(checklistPath+"/{index:-?[0-9]+}", s.DeleteChecklistItem).Methods(http.MethodDelete)

	router.HandleFunc("/due", s.ClassifyDue).Methods(http.MethodGet)
	router.HandleFunc("/search", s.Search).Methods(http.MethodGet)
	router.HandleFunc("/theme", s.GetTheme).Methods(http.MethodGet)
	router.HandleFunc("/theme/toggle", s.ToggleTheme).Methods(http.MethodPost)
}
