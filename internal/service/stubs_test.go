package service

import (
	"context"
	"sync"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/model"
)

// In-memory DAO stubs. Each embeds a BaseComponent so it satisfies the
// component half of the DAO interfaces without a database.

type stubSlotDao struct {
	*core.BaseComponent
	mu     sync.Mutex
	nextID int64
	slots  map[int64]*model.PlanSlot
}

func newStubSlotDao() *stubSlotDao {
	return &stubSlotDao{
		BaseComponent: core.NewBaseComponent("stub_slot_dao"),
		nextID:        1,
		slots:         map[int64]*model.PlanSlot{},
	}
}

func (d *stubSlotDao) Get(_ context.Context, id int64) (*model.PlanSlot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.slots[id]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (d *stubSlotDao) FindByUser(_ context.Context, userID int64) ([]*model.PlanSlot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*model.PlanSlot
	for _, slot := range d.slots {
		if slot.UserID == userID {
			copied := *slot
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (d *stubSlotDao) FindByTasks(_ context.Context, taskIDs []int64) ([]*model.PlanSlot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range taskIDs {
		want[id] = true
	}
	var out []*model.PlanSlot
	for _, slot := range d.slots {
		if want[slot.TaskID] {
			copied := *slot
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (d *stubSlotDao) Insert(_ context.Context, slot *model.PlanSlot) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot.ID = d.nextID
	d.nextID++
	copied := *slot
	d.slots[slot.ID] = &copied
	return nil
}

func (d *stubSlotDao) Update(_ context.Context, slot *model.PlanSlot) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	copied := *slot
	d.slots[slot.ID] = &copied
	return nil
}

func (d *stubSlotDao) Delete(_ context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.slots, id)
	return nil
}

type stubTaskDao struct {
	*core.BaseComponent
	tasks map[int64]*model.Task
}

func newStubTaskDao(tasks ...*model.Task) *stubTaskDao {
	d := &stubTaskDao{
		BaseComponent: core.NewBaseComponent("stub_task_dao"),
		tasks:         map[int64]*model.Task{},
	}
	for _, t := range tasks {
		d.tasks[t.ID] = t
	}
	return d
}

func (d *stubTaskDao) Get(_ context.Context, id int64) (*model.Task, error) {
	return d.tasks[id], nil
}

func (d *stubTaskDao) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := d.tasks[id]
	return ok, nil
}

func (d *stubTaskDao) List(_ context.Context, limit int) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range d.tasks {
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (d *stubTaskDao) GetByIDs(_ context.Context, ids []int64) ([]*model.Task, error) {
	var out []*model.Task
	for _, id := range ids {
		if t, ok := d.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubUserDao struct {
	*core.BaseComponent
	users map[int64]*model.User
}

func newStubUserDao(users ...*model.User) *stubUserDao {
	d := &stubUserDao{
		BaseComponent: core.NewBaseComponent("stub_user_dao"),
		users:         map[int64]*model.User{},
	}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *stubUserDao) Get(_ context.Context, id int64) (*model.User, error) {
	return d.users[id], nil
}

type stubDeptDao struct {
	*core.BaseComponent
	depts map[int64]*model.Department
}

func newStubDeptDao(depts ...*model.Department) *stubDeptDao {
	d := &stubDeptDao{
		BaseComponent: core.NewBaseComponent("stub_dept_dao"),
		depts:         map[int64]*model.Department{},
	}
	for _, dept := range depts {
		d.depts[dept.ID] = dept
	}
	return d
}

func (d *stubDeptDao) Get(_ context.Context, id int64) (*model.Department, error) {
	return d.depts[id], nil
}

func (d *stubDeptDao) ManagedBy(_ context.Context, userID int64) ([]*model.Department, error) {
	var out []*model.Department
	for _, dept := range d.depts {
		if dept.ManagerUserID == userID {
			out = append(out, dept)
		}
	}
	return out, nil
}

type stubTimeLogDao struct {
	*core.BaseComponent
	mu     sync.Mutex
	nextID int64
	logs   map[int64]*model.TimeLog
}

func newStubTimeLogDao() *stubTimeLogDao {
	return &stubTimeLogDao{
		BaseComponent: core.NewBaseComponent("stub_time_log_dao"),
		nextID:        1,
		logs:          map[int64]*model.TimeLog{},
	}
}

func (d *stubTimeLogDao) Get(_ context.Context, id int64) (*model.TimeLog, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	log, ok := d.logs[id]
	if !ok {
		return nil, nil
	}
	copied := *log
	return &copied, nil
}

func (d *stubTimeLogDao) FindByUser(_ context.Context, userID int64) ([]*model.TimeLog, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*model.TimeLog
	for _, log := range d.logs {
		if log.UserID == userID {
			copied := *log
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (d *stubTimeLogDao) Insert(_ context.Context, log *model.TimeLog) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	log.ID = d.nextID
	d.nextID++
	copied := *log
	d.logs[log.ID] = &copied
	return nil
}

func (d *stubTimeLogDao) Update(_ context.Context, log *model.TimeLog) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	copied := *log
	d.logs[log.ID] = &copied
	return nil
}

func (d *stubTimeLogDao) Delete(_ context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.logs, id)
	return nil
}
