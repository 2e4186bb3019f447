package api

import (
	"net/http"
	"strconv"

	"github.com/nhle/taskboard/internal/checklist"
	"github.com/nhle/taskboard/internal/duedate"
	"github.com/nhle/taskboard/internal/theme"
)

type progressJSON struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type cardJSON struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	DueDate     string           `json:"due_date,omitempty"`
	DueCategory duedate.Category `json:"due_category"`
	Done        bool             `json:"done"`
	Checklist   progressJSON     `json:"checklist"`
}

type listJSON struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Cards []cardJSON `json:"cards"`
}

type boardJSON struct {
	Theme theme.Mode `json:"theme"`
	Lists []listJSON `json:"lists"`
}

// GetBoard handles GET /board.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	now := s.Now()
	out := boardJSON{Theme: s.currentMode(), Lists: []listJSON{}}
	if s.Board != nil {
		for _, l := range s.Board.Lists {
			lj := listJSON{ID: l.ID, Title: l.Title, Cards: []cardJSON{}}
			for _, c := range l.Cards {
				done, total, pct := checklist.Progress(c.Checklist)
				lj.Cards = append(lj.Cards, cardJSON{
					ID:          c.ID,
					Title:       c.Title,
					Description: c.Description,
					DueDate:     c.DueDate,
					DueCategory: duedate.Classify(c.DueDate, c.Done, now),
					Done:        c.Done,
					Checklist:   progressJSON{Done: done, Total: total, Percent: pct},
				})
			}
			out.Lists = append(out.Lists, lj)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type dueResponse struct {
	Date      string           `json:"date"`
	Done      bool             `json:"done"`
	Category  duedate.Category `json:"category"`
	DaysUntil *int             `json:"days_until,omitempty"`
}

// ClassifyDue handles GET /due?date=YYYY-MM-DD&done=bool.
func (s *Server) ClassifyDue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")

	done := false
	if raw := q.Get("done"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "done must be a boolean")
			return
		}
		done = v
	}

	now := s.Now()
	resp := dueResponse{Date: date, Done: done, Category: duedate.Classify(date, done, now)}
	if days, ok := duedate.DaysUntil(date, now); ok {
		resp.DaysUntil = &days
	}
	writeJSON(w, http.StatusOK, resp)
}

type searchResponse struct {
	Query   string   `json:"query"`
	Visible []string `json:"visible"`
	Hidden  []string `json:"hidden"`
}

// Search handles GET /search?q=...
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	resp := searchResponse{Query: query, Visible: []string{}, Hidden: []string{}}

	if s.Board != nil {
		res := s.Filter.Apply(query, s.Board.Lists)
		resp.Visible = append(resp.Visible, res.Order...)
		resp.Hidden = append(resp.Hidden, res.Hidden(s.Board.Lists)...)
	}
	writeJSON(w, http.StatusOK, resp)
}

type themeResponse struct {
	Mode theme.Mode `json:"mode"`
	Dark bool       `json:"dark"`
	Icon string     `json:"icon"`
}

func (s *Server) currentMode() theme.Mode {
	if s.Theme == nil {
		return theme.Current()
	}
	return s.Theme.Mode()
}

// GetTheme handles GET /theme.
func (s *Server) GetTheme(w http.ResponseWriter, r *http.Request) {
	mode := s.currentMode()
	writeJSON(w, http.StatusOK, themeResponse{Mode: mode, Dark: mode == theme.Dark, Icon: theme.Icon(mode)})
}

// ToggleTheme handles POST /theme/toggle.
func (s *Server) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if s.Theme == nil {
		writeError(w, http.StatusServiceUnavailable, "theme toggle not configured")
		return
	}
	mode := s.Theme.Toggle(r.Context())
	writeJSON(w, http.StatusOK, themeResponse{Mode: mode, Dark: mode == theme.Dark, Icon: theme.Icon(mode)})
}
