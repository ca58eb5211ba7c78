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

type DepartmentDao interface {
	core.Component
	Get(ctx context.Context, id int64) (*model.Department, error)
	// ManagedBy lists the departments whose manager is the given user.
	ManagedBy(ctx context.Context, userID int64) ([]*model.Department, error)
}

type departmentDaoImpl struct {
	*core.BaseComponent
	GormComp *postgresgorm.PostgresGormComponent `infra:"dep:postgres_gorm"`

	db *gorm.DB
}

func NewDepartmentDao() DepartmentDao {
	return &departmentDaoImpl{BaseComponent: core.NewBaseComponent(consts.COMP_DAO_DEPT)}
}

func (d *departmentDaoImpl) Start(ctx context.Context) error {
	db, err := d.GormComp.GetDB(config.GetBizConfig().DataSource)
	if err != nil {
		return err
	}
	d.db = db
	return d.BaseComponent.Start(ctx)
}

func (d *departmentDaoImpl) Get(ctx context.Context, id int64) (*model.Department, error) {
	var dept model.Department
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (d *departmentDaoImpl) ManagedBy(ctx context.Context, userID int64) ([]*model.Department, error) {
	var depts []*model.Department
	err := d.db.WithContext(ctx).Where("manager_user_id = ?", userID).Find(&depts).Error
	if err != nil {
		return nil, err
	}
	return depts, nil
}
