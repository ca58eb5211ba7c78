package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/grand-thief-cash/workplan/internal/application/components/logging"
	"github.com/grand-thief-cash/workplan/internal/application/components/prometheus"
	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/config"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/dao"
	"github.com/grand-thief-cash/workplan/internal/model"
	"github.com/grand-thief-cash/workplan/internal/timerange"
)

// SlotInput carries the client-supplied fields of a plan slot. Period is a
// range literal; the service re-encodes it canonically before persisting.
type SlotInput struct {
	TaskID       int64  `json:"task_id"`
	UserID       int64  `json:"user_id"`
	Period       string `json:"period"`
	AllowOverlap bool   `json:"allow_overlap"`
}

type SlotService interface {
	core.Component
	CreateSlot(ctx context.Context, actorID int64, in SlotInput) (*model.PlanSlot, error)
	UpdateSlot(ctx context.Context, actorID int64, slotID int64, in SlotInput) (*model.PlanSlot, error)
	// MoveSlot shifts a slot to start at the quarter-hour nearest the given
	// instant, keeping its duration and overlap policy.
	MoveSlot(ctx context.Context, actorID int64, slotID int64, newStart time.Time) (*model.PlanSlot, error)
	DeleteSlot(ctx context.Context, actorID int64, slotID int64) error
	GetSlot(ctx context.Context, actorID int64, slotID int64) (*model.PlanSlot, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.PlanSlot, error)
}

type slotServiceImpl struct {
	*core.BaseComponent
	SlotDao dao.SlotDao `infra:"dep:dao_plan_slot"`
	TaskDao dao.TaskDao `infra:"dep:dao_task"`
	UserDao dao.UserDao `infra:"dep:dao_user"`

	authz scheduleAuthorizer

	slotWrites    *prom.CounterVec
	slotConflicts *prom.CounterVec
}

func NewSlotService() SlotService {
	return &slotServiceImpl{BaseComponent: core.NewBaseComponent(consts.COMP_SVC_SLOT)}
}

func (s *slotServiceImpl) Start(ctx context.Context) error {
	s.authz = scheduleAuthorizer{userDao: s.UserDao}
	if m := prometheus.C(); m != nil {
		s.slotWrites = m.NewCounter("slot_writes_total", "Plan slot writes by operation.", []string{"op"})
		s.slotConflicts = m.NewCounter("slot_conflicts_total", "Slot writes rejected for overlap.", nil)
	}
	return s.BaseComponent.Start(ctx)
}

func (s *slotServiceImpl) countWrite(op string) {
	if s.slotWrites != nil {
		s.slotWrites.WithLabelValues(op).Inc()
	}
}

func (s *slotServiceImpl) countConflict() {
	if s.slotConflicts != nil {
		s.slotConflicts.WithLabelValues().Inc()
	}
}

// validatePeriod decodes and vets a period literal. The checks run in a
// fixed order so clients always see the most fundamental problem first.
func (s *slotServiceImpl) validatePeriod(literal string) (timerange.Range, error) {
	r, err := timerange.Parse(literal)
	if errors.Is(err, timerange.ErrInverted) {
		return timerange.Range{}, ErrNonPositiveDuration
	}
	if err != nil {
		return timerange.Range{}, err
	}
	minDur := time.Duration(config.GetBizConfig().MinSlotMinutes) * time.Minute
	if r.Duration() < minDur {
		return timerange.Range{}, ErrDurationTooShort
	}
	if !timerange.IsRangeAligned(r) {
		return timerange.Range{}, ErrNotAligned
	}
	return r, nil
}

// checkOverlap compares the candidate range against the user's other
// slots. Slots carrying allow_overlap are exempt from the check in both
// directions, so they are not obstacles here. excludeID skips the slot
// being updated; pass a negative id on create.
func (s *slotServiceImpl) checkOverlap(ctx context.Context, userID int64, candidate timerange.Range, excludeID int64) error {
	slots, err := s.SlotDao.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	stored := make([]timerange.Conflict, 0, len(slots))
	for _, slot := range slots {
		if slot.AllowOverlap {
			continue
		}
		period, err := timerange.Parse(slot.Period)
		if err != nil {
			return fmt.Errorf("stored slot %d has unreadable period: %w", slot.ID, err)
		}
		stored = append(stored, timerange.Conflict{ID: slot.ID, Period: period})
	}
	if ids := timerange.ConflictsWith(candidate, stored, excludeID); len(ids) > 0 {
		s.countConflict()
		return &OverlapConflictError{SlotIDs: ids}
	}
	return nil
}

func (s *slotServiceImpl) CreateSlot(ctx context.Context, actorID int64, in SlotInput) (*model.PlanSlot, error) {
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
	if !in.AllowOverlap {
		if err := s.checkOverlap(ctx, in.UserID, period, -1); err != nil {
			return nil, err
		}
	}
	slot := &model.PlanSlot{
		TaskID:          in.TaskID,
		UserID:          in.UserID,
		Period:          period.Format(),
		AllowOverlap:    in.AllowOverlap,
		CreatedByUserID: actorID,
	}
	if err := s.SlotDao.Insert(ctx, slot); err != nil {
		return nil, err
	}
	s.countWrite("create")
	logging.Infof(ctx, "slot %d created for user %d on task %d period %s",
		slot.ID, slot.UserID, slot.TaskID, slot.Period)
	return slot, nil
}

func (s *slotServiceImpl) UpdateSlot(ctx context.Context, actorID int64, slotID int64, in SlotInput) (*model.PlanSlot, error) {
	period, err := s.validatePeriod(in.Period)
	if err != nil {
		return nil, err
	}
	slot, err := s.SlotDao.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	ok, err := s.authz.canManage(ctx, actorID, slot.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	if in.TaskID != 0 && in.TaskID != slot.TaskID {
		exists, err := s.TaskDao.Exists(ctx, in.TaskID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrTaskNotFound
		}
		slot.TaskID = in.TaskID
	}
	// Turning allow_overlap off re-checks the range against everyone else,
	// so a previously forced slot cannot keep its conflicts silently.
	if !in.AllowOverlap {
		if err := s.checkOverlap(ctx, slot.UserID, period, slotID); err != nil {
			return nil, err
		}
	}
	slot.Period = period.Format()
	slot.AllowOverlap = in.AllowOverlap
	if err := s.SlotDao.Update(ctx, slot); err != nil {
		return nil, err
	}
	s.countWrite("update")
	return slot, nil
}

func (s *slotServiceImpl) MoveSlot(ctx context.Context, actorID int64, slotID int64, newStart time.Time) (*model.PlanSlot, error) {
	slot, err := s.SlotDao.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	current, err := timerange.Parse(slot.Period)
	if err != nil {
		return nil, fmt.Errorf("stored slot %d has unreadable period: %w", slot.ID, err)
	}
	start := timerange.RoundToQuarter(newStart)
	moved := timerange.New(start, start.Add(current.Duration()))
	return s.UpdateSlot(ctx, actorID, slotID, SlotInput{
		TaskID:       slot.TaskID,
		UserID:       slot.UserID,
		Period:       moved.Format(),
		AllowOverlap: slot.AllowOverlap,
	})
}

func (s *slotServiceImpl) DeleteSlot(ctx context.Context, actorID int64, slotID int64) error {
	slot, err := s.SlotDao.Get(ctx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	ok, err := s.authz.canManage(ctx, actorID, slot.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	if err := s.SlotDao.Delete(ctx, slotID); err != nil {
		return err
	}
	s.countWrite("delete")
	return nil
}

func (s *slotServiceImpl) GetSlot(ctx context.Context, actorID int64, slotID int64) (*model.PlanSlot, error) {
	slot, err := s.SlotDao.Get(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	return slot, nil
}

func (s *slotServiceImpl) ListByUser(ctx context.Context, userID int64) ([]*model.PlanSlot, error) {
	return s.SlotDao.FindByUser(ctx, userID)
}
