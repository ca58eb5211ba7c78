package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/config"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/dao"
	"github.com/grand-thief-cash/workplan/internal/model"
	"github.com/grand-thief-cash/workplan/internal/service"
)

type TaskController struct {
	*core.BaseComponent
	TaskDao    dao.TaskDao            `infra:"dep:dao_task"`
	EtaSvc     service.EtaService     `infra:"dep:svc_eta"`
	PrivacySvc service.PrivacyService `infra:"dep:svc_privacy"`
}

func NewTaskController() *TaskController {
	return &TaskController{BaseComponent: core.NewBaseComponent(consts.COMP_CTRL_TASK)}
}

// taskView is the API shape of a task: the privacy-projected task plus its
// schedule projection.
type taskView struct {
	*model.Task
	ETA *time.Time `json:"eta,omitempty"`
}

func (c *TaskController) Mount(r chi.Router) {
	r.Route("/api/v1/tasks", func(r chi.Router) {
		r.Get("/", c.list)
		r.Get("/{taskID}", c.get)
	})
}

func (c *TaskController) list(w http.ResponseWriter, r *http.Request) {
	viewer, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	tasks, err := c.TaskDao.List(r.Context(), config.GetBizConfig().MaxListSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	projected, err := c.PrivacySvc.ProjectAll(r.Context(), viewer, tasks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	etas, err := c.EtaSvc.BatchETA(r.Context(), ids)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]taskView, 0, len(projected))
	for _, t := range projected {
		views = append(views, taskView{Task: t, ETA: etas[t.ID]})
	}
	writeJSON(w, http.StatusOK, views)
}

func (c *TaskController) get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(r, "taskID")
	if !ok {
		writeBadRequest(w, "invalid task id")
		return
	}
	task, err := c.TaskDao.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if task == nil {
		writeError(w, r, service.ErrTaskNotFound)
		return
	}
	projected, err := c.PrivacySvc.Project(r.Context(), viewer, task)
	if err != nil {
		writeError(w, r, err)
		return
	}
	etas, err := c.EtaSvc.BatchETA(r.Context(), []int64{id})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskView{Task: projected, ETA: etas[id]})
}
