package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/grand-thief-cash/workplan/internal/application/components/postgresgorm"
	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/config"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/model"
)

type SlotDao interface {
	core.Component
	Get(ctx context.Context, id int64) (*model.PlanSlot, error)
	FindByUser(ctx context.Context, userID int64) ([]*model.PlanSlot, error)
	FindByTasks(ctx context.Context, taskIDs []int64) ([]*model.PlanSlot, error)
	Insert(ctx context.Context, slot *model.PlanSlot) error
	Update(ctx context.Context, slot *model.PlanSlot) error
	Delete(ctx context.Context, id int64) error
}

type slotDaoImpl struct {
	*core.BaseComponent
	GormComp *postgresgorm.PostgresGormComponent `infra:"dep:postgres_gorm"`

	db *gorm.DB
}

func NewSlotDao() SlotDao {
	return &slotDaoImpl{BaseComponent: core.NewBaseComponent(consts.COMP_DAO_SLOT)}
}

func (d *slotDaoImpl) Start(ctx context.Context) error {
	db, err := d.GormComp.GetDB(config.GetBizConfig().DataSource)
	if err != nil {
		return err
	}
	d.db = db
	return d.BaseComponent.Start(ctx)
}

func (d *slotDaoImpl) Get(ctx context.Context, id int64) (*model.PlanSlot, error) {
	var slot model.PlanSlot
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (d *slotDaoImpl) FindByUser(ctx context.Context, userID int64) ([]*model.PlanSlot, error) {
	var slots []*model.PlanSlot
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (d *slotDaoImpl) FindByTasks(ctx context.Context, taskIDs []int64) ([]*model.PlanSlot, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var slots []*model.PlanSlot
	err := d.db.WithContext(ctx).Where("task_id IN ?", taskIDs).Order("id").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (d *slotDaoImpl) Insert(ctx context.Context, slot *model.PlanSlot) error {
	return d.db.WithContext(ctx).Create(slot).Error
}

func (d *slotDaoImpl) Update(ctx context.Context, slot *model.PlanSlot) error {
	return d.db.WithContext(ctx).Save(slot).Error
}

func (d *slotDaoImpl) Delete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&model.PlanSlot{}, id).Error
}
