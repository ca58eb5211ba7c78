package service

import (
	"context"
	"testing"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/model"
)

func newTestPrivacyService() *privacyServiceImpl {
	return &privacyServiceImpl{
		BaseComponent: core.NewBaseComponent(consts.COMP_SVC_PRIVACY),
		UserDao: newStubUserDao(
			&model.User{ID: 1, Role: consts.RoleMember, DepartmentID: 100},
			&model.User{ID: 2, Role: consts.RoleManager, DepartmentID: 100},
			&model.User{ID: 3, Role: consts.RoleAdmin},
			&model.User{ID: 4, Role: consts.RoleMember, DepartmentID: 200},
		),
		DeptDao: newStubDeptDao(
			&model.Department{ID: 100, ManagerUserID: 2},
			&model.Department{ID: 200, ManagerUserID: 4},
		),
	}
}

func TestProjectPrivacyMatrix(t *testing.T) {
	svc := newTestPrivacyService()
	desc := "quarterly numbers"
	private := &model.Task{
		ID:                   1,
		Title:                "board prep",
		Description:          &desc,
		IsPrivate:            true,
		AssignedUserID:       1,
		AssignedDepartmentID: 100,
	}
	public := &model.Task{
		ID:             2,
		Title:          "clean up backlog",
		Description:    &desc,
		IsPrivate:      false,
		AssignedUserID: 1,
	}

	cases := []struct {
		name     string
		viewerID int64
		task     *model.Task
		wantMask bool
	}{
		{"assignee sees own private description", 1, private, false},
		{"department manager sees it", 2, private, false},
		{"admin sees it", 3, private, false},
		{"unrelated member gets it nulled", 4, private, true},
		{"public task visible to everyone", 4, public, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Project(context.Background(), tc.viewerID, tc.task)
			if err != nil {
				t.Fatalf("project: %v", err)
			}
			if tc.wantMask {
				if got.Description != nil {
					t.Fatalf("description = %q, want nil", *got.Description)
				}
			} else if got.Description == nil || *got.Description != desc {
				t.Fatalf("description = %v, want %q", got.Description, desc)
			}
			// Every field but the description passes through untouched.
			if got.Title != tc.task.Title {
				t.Fatalf("title = %q, want %q", got.Title, tc.task.Title)
			}
			if got.ID != tc.task.ID || got.IsPrivate != tc.task.IsPrivate ||
				got.AssignedUserID != tc.task.AssignedUserID {
				t.Fatal("non-description fields must pass through unchanged")
			}
			// Projection never mutates the stored task.
			if tc.task.Description == nil {
				t.Fatal("projection mutated the source task")
			}
		})
	}
}

func TestProjectAllMasksOnlyPrivate(t *testing.T) {
	svc := newTestPrivacyService()
	secret := "pay bands"
	open := "sprint notes"
	tasks := []*model.Task{
		{ID: 1, Title: "comp review", Description: &secret, IsPrivate: true, AssignedUserID: 1, AssignedDepartmentID: 100},
		{ID: 2, Title: "retro", Description: &open, IsPrivate: false, AssignedUserID: 1},
	}
	got, err := svc.ProjectAll(context.Background(), 4, tasks)
	if err != nil {
		t.Fatalf("project all: %v", err)
	}
	if got[0].Description != nil {
		t.Fatalf("private description = %q, want nil", *got[0].Description)
	}
	if got[0].Title != "comp review" {
		t.Fatalf("private title = %q, want unchanged", got[0].Title)
	}
	if got[1].Description == nil || *got[1].Description != open {
		t.Fatalf("public description = %v, want %q", got[1].Description, open)
	}
}
