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

type TimeLogDao interface {
	core.Component
	Get(ctx context.Context, id int64) (*model.TimeLog, error)
	FindByUser(ctx context.Context, userID int64) ([]*model.TimeLog, error)
	Insert(ctx context.Context, log *model.TimeLog) error
	Update(ctx context.Context, log *model.TimeLog) error
	Delete(ctx context.Context, id int64) error
}

type timeLogDaoImpl struct {
	*core.BaseComponent
	GormComp *postgresgorm.PostgresGormComponent `infra:"dep:postgres_gorm"`

	db *gorm.DB
}

func NewTimeLogDao() TimeLogDao {
	return &timeLogDaoImpl{BaseComponent: core.NewBaseComponent(consts.COMP_DAO_TIMELOG)}
}

func (d *timeLogDaoImpl) Start(ctx context.Context) error {
	db, err := d.GormComp.GetDB(config.GetBizConfig().DataSource)
	if err != nil {
		return err
	}
	d.db = db
	return d.BaseComponent.Start(ctx)
}

func (d *timeLogDaoImpl) Get(ctx context.Context, id int64) (*model.TimeLog, error) {
	var log model.TimeLog
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (d *timeLogDaoImpl) FindByUser(ctx context.Context, userID int64) ([]*model.TimeLog, error) {
	var logs []*model.TimeLog
	err := d.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (d *timeLogDaoImpl) Insert(ctx context.Context, log *model.TimeLog) error {
	return d.db.WithContext(ctx).Create(log).Error
}

func (d *timeLogDaoImpl) Update(ctx context.Context, log *model.TimeLog) error {
	return d.db.WithContext(ctx).Save(log).Error
}

func (d *timeLogDaoImpl) Delete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&model.TimeLog{}, id).Error
}
