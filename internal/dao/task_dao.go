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

type TaskDao interface {
	core.Component
	Get(ctx context.Context, id int64) (*model.Task, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit int) ([]*model.Task, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*model.Task, error)
}

type taskDaoImpl struct {
	*core.BaseComponent
	GormComp *postgresgorm.PostgresGormComponent `infra:"dep:postgres_gorm"`

	db *gorm.DB
}

func NewTaskDao() TaskDao {
	return &taskDaoImpl{BaseComponent: core.NewBaseComponent(consts.COMP_DAO_TASK)}
}

func (d *taskDaoImpl) Start(ctx context.Context) error {
	db, err := d.GormComp.GetDB(config.GetBizConfig().DataSource)
	if err != nil {
		return err
	}
	d.db = db
	return d.BaseComponent.Start(ctx)
}

func (d *taskDaoImpl) Get(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (d *taskDaoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *taskDaoImpl) List(ctx context.Context, limit int) ([]*model.Task, error) {
	var tasks []*model.Task
	q := d.db.WithContext(ctx).Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (d *taskDaoImpl) GetByIDs(ctx context.Context, ids []int64) ([]*model.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tasks []*model.Task
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
