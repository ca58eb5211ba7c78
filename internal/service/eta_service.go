package service

import (
	"context"
	"fmt"
	"time"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/dao"
	"github.com/grand-thief-cash/workplan/internal/timerange"
)

type EtaService interface {
	core.Component
	// BatchETA projects a completion time per task: the latest end across
	// the task's slots. Tasks with no slots map to nil.
	BatchETA(ctx context.Context, taskIDs []int64) (map[int64]*time.Time, error)
}

type etaServiceImpl struct {
	*core.BaseComponent
	SlotDao dao.SlotDao `infra:"dep:dao_plan_slot"`
}

func NewEtaService() EtaService {
	return &etaServiceImpl{BaseComponent: core.NewBaseComponent(consts.COMP_SVC_ETA)}
}

func (s *etaServiceImpl) BatchETA(ctx context.Context, taskIDs []int64) (map[int64]*time.Time, error) {
	out := make(map[int64]*time.Time, len(taskIDs))
	for _, id := range taskIDs {
		out[id] = nil
	}
	if len(taskIDs) == 0 {
		return out, nil
	}
	slots, err := s.SlotDao.FindByTasks(ctx, taskIDs)
	if err != nil {
		return nil, err
	}
	for _, slot := range slots {
		period, err := timerange.Parse(slot.Period)
		if err != nil {
			return nil, fmt.Errorf("stored slot %d has unreadable period: %w", slot.ID, err)
		}
		cur := out[slot.TaskID]
		// Strict After keeps the first slot seen on a tie.
		if cur == nil || period.End.After(*cur) {
			end := period.End
			out[slot.TaskID] = &end
		}
	}
	return out, nil
}
