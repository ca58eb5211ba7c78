package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/service"
)

type TimeLogController struct {
	*core.BaseComponent
	LogSvc service.TimeLogService `infra:"dep:svc_time_log"`
}

func NewTimeLogController() *TimeLogController {
	return &TimeLogController{BaseComponent: core.NewBaseComponent(consts.COMP_CTRL_TIMELOG)}
}

func (c *TimeLogController) Mount(r chi.Router) {
	r.Route("/api/v1/time-logs", func(r chi.Router) {
		r.Post("/", c.create)
		r.Put("/{logID}", c.update)
		r.Delete("/{logID}", c.delete)
	})
	r.Get("/api/v1/users/{userID}/time-logs", c.listByUser)
}

func (c *TimeLogController) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var in service.TimeLogInput
	if !decodeBody(w, r, &in) {
		return
	}
	log, err := c.LogSvc.CreateLog(r.Context(), actor, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (c *TimeLogController) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(r, "logID")
	if !ok {
		writeBadRequest(w, "invalid time log id")
		return
	}
	var in service.TimeLogInput
	if !decodeBody(w, r, &in) {
		return
	}
	log, err := c.LogSvc.UpdateLog(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (c *TimeLogController) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(r, "logID")
	if !ok {
		writeBadRequest(w, "invalid time log id")
		return
	}
	if err := c.LogSvc.DeleteLog(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *TimeLogController) listByUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(r); !ok {
		writeUnauthorized(w)
		return
	}
	userID, ok := pathID(r, "userID")
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}
	logs, err := c.LogSvc.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
