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

type UserDao interface {
	core.Component
	Get(ctx context.Context, id int64) (*model.User, error)
}

type userDaoImpl struct {
	*core.BaseComponent
	GormComp *postgresgorm.PostgresGormComponent `infra:"dep:postgres_gorm"`

	db *gorm.DB
}

func NewUserDao() UserDao {
	return &userDaoImpl{BaseComponent: core.NewBaseComponent(consts.COMP_DAO_USER)}
}

func (d *userDaoImpl) Start(ctx context.Context) error {
	db, err := d.GormComp.GetDB(config.GetBizConfig().DataSource)
	if err != nil {
		return err
	}
	d.db = db
	return d.BaseComponent.Start(ctx)
}

func (d *userDaoImpl) Get(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
