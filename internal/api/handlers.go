package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zero2one-app/zero2one/internal/domain"
)

// validate checks request bodies against their struct tags.
var validate = validator.New()

// maxImportBytes bounds import payloads.
const maxImportBytes = 4 << 20

// ─── State & catalogs ───────────────────────────────────────────────────────

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]*domain.Task)
	s.session.View(func(st *domain.UserState) {
		for _, c := range domain.Categories() {
			list := make([]*domain.Task, 0, len(st.Tasks[c]))
			for _, t := range st.Tasks[c] {
				copied := *t
				list = append(list, &copied)
			}
			out[string(c)] = list
		}
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var active, history []domain.EventInstance
	s.session.View(func(st *domain.UserState) {
		active = append(active, st.ActiveEvents...)
		history = append(history, st.EventHistory...)
	})
	writeJSON(w, http.StatusOK, map[string][]domain.EventInstance{
		"active":  active,
		"history": history,
	})
}

func (s *Server) handlePenalties(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	list, err := s.session.Penalties(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []domain.PenaltyRecord{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	defs, done := s.session.Achievements()
	type entry struct {
		domain.AchievementDef
		Unlocked bool `json:"unlocked"`
	}
	out := make([]entry, 0, len(defs))
	for _, def := range defs {
		out = append(out, entry{AchievementDef: def, Unlocked: done[def.ID]})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	defs, prog := s.session.Chains()
	type entry struct {
		domain.ChainDef
		Progress domain.ChainProgress `json:"progress"`
	}
	out := make([]entry, 0, len(defs))
	for _, def := range defs {
		out = append(out, entry{ChainDef: def, Progress: prog[def.ID]})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	avail := make(map[string]bool)
	for _, def := range s.session.AvailableJobs() {
		avail[def.Name] = true
	}
	type entry struct {
		domain.JobDef
		Available bool `json:"available"`
	}
	var out []entry
	for _, def := range s.session.JobCatalog() {
		out = append(out, entry{JobDef: def, Available: avail[def.Name]})
	}
	writeJSON(w, http.StatusOK, out)
}

// ─── Task mutations ─────────────────────────────────────────────────────────

type createTaskRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=500"`
	Category    string  `json:"category" validate:"required,oneof=daily weekly special"`
	Attribute   string  `json:"attribute" validate:"required"`
	Points      float64 `json:"points" validate:"required,gt=0"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	task, err := s.session.AddTask(req.Name, req.Description,
		domain.Category(req.Category), req.Attribute, req.Points)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(chi.URLParam(r, "category"))
	id := chi.URLParam(r, "id")

	res, err := s.session.CompleteTask(category, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRemoveTask(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(chi.URLParam(r, "category"))
	if !domain.IsCategory(category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	if err := s.session.RemoveTask(category, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Jobs ───────────────────────────────────────────────────────────────────

type acceptJobRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

func (s *Server) handleAcceptJob(w http.ResponseWriter, r *http.Request) {
	var req acceptJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	def, err := s.session.AcceptJob(req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	list, err := s.feed.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.feed.MarkShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Engine cycle & data management ─────────────────────────────────────────

func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	res, err := s.session.Cycle()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.session.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="zero2one-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}
	if err := s.session.Import(data); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Status())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.session.Status())
}

// ─── Error mapping ──────────────────────────────────────────────────────────

// writeDomainError maps sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateTask),
		errors.Is(err, domain.ErrAlreadyCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidAttribute),
		errors.Is(err, domain.ErrInvalidPoints),
		errors.Is(err, domain.ErrEmptyTaskName),
		errors.Is(err, domain.ErrBadImport):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidJob):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// validationMessage flattens validator errors into one readable line
// without leaking struct names.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			return e.Field() + " is required"
		case "oneof":
			return e.Field() + " must be one of: " + e.Param()
		case "gt":
			return e.Field() + " must be greater than " + e.Param()
		case "max":
			return e.Field() + " is too long"
		}
		return e.Field() + " is invalid"
	}
	return "invalid request"
}
