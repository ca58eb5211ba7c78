package service

import (
	"context"
	"errors"
	"time"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/config"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/dao"
	"github.com/grand-thief-cash/workplan/internal/model"
	"github.com/grand-thief-cash/workplan/internal/timerange"
)

// TimeLogInput carries the client-supplied fields of a time log entry.
type TimeLogInput struct {
	TaskID int64  `json:"task_id"`
	UserID int64  `json:"user_id"`
	Period string `json:"period"`
	Note   string `json:"note"`
}

type TimeLogService interface {
	core.Component
	CreateLog(ctx context.Context, actorID int64, in TimeLogInput) (*model.TimeLog, error)
	UpdateLog(ctx context.Context, actorID int64, logID int64, in TimeLogInput) (*model.TimeLog, error)
	DeleteLog(ctx context.Context, actorID int64, logID int64) error
	ListByUser(ctx context.Context, userID int64) ([]*model.TimeLog, error)
	// Editable reports whether the entry is still inside its edit window.
	Editable(log *model.TimeLog, now time.Time) bool
}

type timeLogServiceImpl struct {
	*core.BaseComponent
	LogDao  dao.TimeLogDao `infra:"dep:dao_time_log"`
	TaskDao dao.TaskDao    `infra:"dep:dao_task"`
	UserDao dao.UserDao    `infra:"dep:dao_user"`

	authz scheduleAuthorizer
	now   func() time.Time
}

func NewTimeLogService() TimeLogService {
	return &timeLogServiceImpl{
		BaseComponent: core.NewBaseComponent(consts.COMP_SVC_TIMELOG),
		now:           time.Now,
	}
}

func (s *timeLogServiceImpl) Start(ctx context.Context) error {
	s.authz = scheduleAuthorizer{userDao: s.UserDao}
	return s.BaseComponent.Start(ctx)
}

// Editable allows changes until the configured number of days after the
// logged period ends.
func (s *timeLogServiceImpl) Editable(log *model.TimeLog, now time.Time) bool {
	period, err := timerange.Parse(log.Period)
	if err != nil {
		return false
	}
	window := time.Duration(config.GetBizConfig().TimeLogEditDays) * 24 * time.Hour
	return now.Before(period.End.Add(window))
}

func (s *timeLogServiceImpl) validatePeriod(literal string) (timerange.Range, error) {
	r, err := timerange.Parse(literal)
	if errors.Is(err, timerange.ErrInverted) {
		return timerange.Range{}, ErrNonPositiveDuration
	}
	if err != nil {
		return timerange.Range{}, err
	}
	return r, nil
}

func (s *timeLogServiceImpl) CreateLog(ctx context.Context, actorID int64, in TimeLogInput) (*model.TimeLog, error) {
	period, err := s.validatePeriod(in.Period)
	if err != nil {
		return nil, err
	}
	ok, err := s.authz.canManage(ctx, actorID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	exists, err := s.TaskDao.Exists(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}
	log := &model.TimeLog{
		TaskID: in.TaskID,
		UserID: in.UserID,
		Period: period.Format(),
		Note:   in.Note,
	}
	if err := s.LogDao.Insert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *timeLogServiceImpl) UpdateLog(ctx context.Context, actorID int64, logID int64, in TimeLogInput) (*model.TimeLog, error) {
	period, err := s.validatePeriod(in.Period)
	if err != nil {
		return nil, err
	}
	log, err := s.LogDao.Get(ctx, logID)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrTimeLogNotFound
	}
	ok, err := s.authz.canManage(ctx, actorID, log.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	if !s.Editable(log, s.now()) {
		return nil, ErrEditWindowClosed
	}
	log.Period = period.Format()
	log.Note = in.Note
	if err := s.LogDao.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *timeLogServiceImpl) DeleteLog(ctx context.Context, actorID int64, logID int64) error {
	log, err := s.LogDao.Get(ctx, logID)
	if err != nil {
		return err
	}
	if log == nil {
		return ErrTimeLogNotFound
	}
	ok, err := s.authz.canManage(ctx, actorID, log.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	if !s.Editable(log, s.now()) {
		return ErrEditWindowClosed
	}
	return s.LogDao.Delete(ctx, logID)
}

func (s *timeLogServiceImpl) ListByUser(ctx context.Context, userID int64) ([]*model.TimeLog, error) {
	return s.LogDao.FindByUser(ctx, userID)
}
