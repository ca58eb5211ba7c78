package service

import (
	"context"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/dao"
	"github.com/grand-thief-cash/workplan/internal/model"
)

type PrivacyService interface {
	core.Component
	// Project returns a copy of the task as the viewer may see it. A
	// private task's description stays readable for the assigned user,
	// admins, and the manager of the assigned department; everyone else
	// gets a copy with the description nulled. No other field changes.
	Project(ctx context.Context, viewerID int64, task *model.Task) (*model.Task, error)
	ProjectAll(ctx context.Context, viewerID int64, tasks []*model.Task) ([]*model.Task, error)
}

type privacyServiceImpl struct {
	*core.BaseComponent
	UserDao dao.UserDao       `infra:"dep:dao_user"`
	DeptDao dao.DepartmentDao `infra:"dep:dao_department"`
}

func NewPrivacyService() PrivacyService {
	return &privacyServiceImpl{BaseComponent: core.NewBaseComponent(consts.COMP_SVC_PRIVACY)}
}

// viewerScope caches the viewer lookups so projecting a list does one set
// of queries, not one per task.
type viewerScope struct {
	isAdmin      bool
	managedDepts map[int64]bool
}

func (s *privacyServiceImpl) scopeFor(ctx context.Context, viewerID int64) (*viewerScope, error) {
	scope := &viewerScope{managedDepts: map[int64]bool{}}
	viewer, err := s.UserDao.Get(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return scope, nil
	}
	scope.isAdmin = viewer.Role == consts.RoleAdmin
	depts, err := s.DeptDao.ManagedBy(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, d := range depts {
		scope.managedDepts[d.ID] = true
	}
	return scope, nil
}

func (s *privacyServiceImpl) project(viewerID int64, scope *viewerScope, task *model.Task) *model.Task {
	if task == nil {
		return nil
	}
	if !task.IsPrivate ||
		task.AssignedUserID == viewerID ||
		scope.isAdmin ||
		scope.managedDepts[task.AssignedDepartmentID] {
		copied := *task
		return &copied
	}
	masked := *task
	masked.Description = nil
	return &masked
}

func (s *privacyServiceImpl) Project(ctx context.Context, viewerID int64, task *model.Task) (*model.Task, error) {
	scope, err := s.scopeFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.project(viewerID, scope, task), nil
}

func (s *privacyServiceImpl) ProjectAll(ctx context.Context, viewerID int64, tasks []*model.Task) ([]*model.Task, error) {
	scope, err := s.scopeFor(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Task, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, s.project(viewerID, scope, task))
	}
	return out, nil
}
