package service

import (
	"context"

	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/dao"
)

// scheduleAuthorizer decides whether an actor may touch another user's
// schedule: the user themselves, or any actor holding the manager or admin
// role.
type scheduleAuthorizer struct {
	userDao dao.UserDao
}

func (a *scheduleAuthorizer) canManage(ctx context.Context, actorID, targetUserID int64) (bool, error) {
	if actorID == targetUserID {
		return true, nil
	}
	actor, err := a.userDao.Get(ctx, actorID)
	if err != nil {
		return false, err
	}
	if actor == nil {
		return false, nil
	}
	return actor.Role == consts.RoleAdmin || actor.Role == consts.RoleManager, nil
}
