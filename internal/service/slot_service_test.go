package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/model"
)

const (
	testTaskID     = int64(10)
	testUserID     = int64(1)
	managerID      = int64(2)
	adminID        = int64(3)
	outsiderID     = int64(4)
	otherManagerID = int64(5)
	testDeptID     = int64(100)
	otherDeptID    = int64(200)
)

func newTestSlotService(t *testing.T) (*slotServiceImpl, *stubSlotDao) {
	t.Helper()
	slotDao := newStubSlotDao()
	svc := &slotServiceImpl{
		BaseComponent: core.NewBaseComponent(consts.COMP_SVC_SLOT),
		SlotDao:       slotDao,
		TaskDao:       newStubTaskDao(&model.Task{ID: testTaskID, Title: "write report"}),
		UserDao: newStubUserDao(
			&model.User{ID: testUserID, Role: consts.RoleMember, DepartmentID: testDeptID},
			&model.User{ID: managerID, Role: consts.RoleManager, DepartmentID: testDeptID},
			&model.User{ID: adminID, Role: consts.RoleAdmin},
			&model.User{ID: outsiderID, Role: consts.RoleMember, DepartmentID: otherDeptID},
			&model.User{ID: otherManagerID, Role: consts.RoleManager, DepartmentID: otherDeptID},
		),
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start slot service: %v", err)
	}
	return svc, slotDao
}

func TestCreateSlotPersistsCanonicalPeriod(t *testing.T) {
	svc, _ := newTestSlotService(t)
	// Postgres-shaped input must come back canonical.
	slot, err := svc.CreateSlot(context.Background(), testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: `["2024-03-04 09:00:00+00","2024-03-04 10:00:00+00")`,
	})
	if err != nil {
		t.Fatalf("create slot: %v", err)
	}
	want := "[2024-03-04T09:00:00.000Z, 2024-03-04T10:00:00.000Z)"
	if slot.Period != want {
		t.Fatalf("persisted period = %q, want %q", slot.Period, want)
	}
	if slot.CreatedByUserID != testUserID {
		t.Fatalf("created_by = %d, want %d", slot.CreatedByUserID, testUserID)
	}
}

func TestCreateSlotRejectsUnaligned(t *testing.T) {
	svc, _ := newTestSlotService(t)
	_, err := svc.CreateSlot(context.Background(), testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T14:05:00Z, 2024-03-04T15:05:00Z)",
	})
	if !errors.Is(err, ErrNotAligned) {
		t.Fatalf("error = %v, want ErrNotAligned", err)
	}
}

func TestCreateSlotDurationChecks(t *testing.T) {
	svc, _ := newTestSlotService(t)
	// Inverted range surfaces as non-positive duration.
	_, err := svc.CreateSlot(context.Background(), testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T10:00:00Z, 2024-03-04T09:00:00Z)",
	})
	if !errors.Is(err, ErrNonPositiveDuration) {
		t.Fatalf("error = %v, want ErrNonPositiveDuration", err)
	}
	// Five minutes is short, and the short check outranks alignment.
	_, err = svc.CreateSlot(context.Background(), testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T09:05:00Z)",
	})
	if !errors.Is(err, ErrDurationTooShort) {
		t.Fatalf("error = %v, want ErrDurationTooShort", err)
	}
}

func TestCreateSlotAuthorization(t *testing.T) {
	svc, _ := newTestSlotService(t)
	ctx := context.Background()
	in := SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T10:00:00Z)",
	}

	if _, err := svc.CreateSlot(ctx, outsiderID, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider error = %v, want ErrForbidden", err)
	}
	if _, err := svc.CreateSlot(ctx, managerID, in); err != nil {
		t.Fatalf("manager should schedule for a member: %v", err)
	}

	// The manager role carries, regardless of department.
	in.Period = "[2024-03-04T11:00:00Z, 2024-03-04T12:00:00Z)"
	if _, err := svc.CreateSlot(ctx, otherManagerID, in); err != nil {
		t.Fatalf("manager of another department should also schedule: %v", err)
	}

	in.Period = "[2024-03-04T12:00:00Z, 2024-03-04T13:00:00Z)"
	if _, err := svc.CreateSlot(ctx, adminID, in); err != nil {
		t.Fatalf("admin should schedule for anyone: %v", err)
	}
}

func TestCreateSlotUnknownTask(t *testing.T) {
	svc, _ := newTestSlotService(t)
	_, err := svc.CreateSlot(context.Background(), testUserID, SlotInput{
		TaskID: 999,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T10:00:00Z)",
	})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestCreateSlotConflictThenForcedRetry(t *testing.T) {
	svc, _ := newTestSlotService(t)
	ctx := context.Background()

	first, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T11:00:00Z)",
	})
	if err != nil {
		t.Fatalf("first slot: %v", err)
	}

	colliding := SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T10:00:00Z, 2024-03-04T12:00:00Z)",
	}
	_, err = svc.CreateSlot(ctx, testUserID, colliding)
	oc, ok := AsOverlapConflict(err)
	if !ok {
		t.Fatalf("error = %v, want overlap conflict", err)
	}
	if len(oc.SlotIDs) != 1 || oc.SlotIDs[0] != first.ID {
		t.Fatalf("conflict ids = %v, want [%d]", oc.SlotIDs, first.ID)
	}

	// The force retry carries allow_overlap and must succeed.
	colliding.AllowOverlap = true
	forced, err := svc.CreateSlot(ctx, testUserID, colliding)
	if err != nil {
		t.Fatalf("forced retry: %v", err)
	}
	if !forced.AllowOverlap {
		t.Fatal("forced slot must record allow_overlap")
	}

	// A later range clear of the strict slot needs no force.
	if _, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T12:00:00Z, 2024-03-04T13:00:00Z)",
	}); err != nil {
		t.Fatalf("touching slot: %v", err)
	}
}

func TestForcedSlotsAreNotObstacles(t *testing.T) {
	svc, _ := newTestSlotService(t)
	ctx := context.Background()

	// A forced slot is exempt from the overlap check in both directions.
	if _, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID:       testTaskID,
		UserID:       testUserID,
		Period:       "[2024-03-04T14:00:00Z, 2024-03-04T16:00:00Z)",
		AllowOverlap: true,
	}); err != nil {
		t.Fatalf("forced slot: %v", err)
	}

	// A strict slot crossing it must still be accepted.
	if _, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T15:00:00Z, 2024-03-04T17:00:00Z)",
	}); err != nil {
		t.Fatalf("strict slot over a forced one: %v", err)
	}

	// Two strict slots still conflict with each other.
	_, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T16:00:00Z, 2024-03-04T18:00:00Z)",
	})
	if _, ok := AsOverlapConflict(err); !ok {
		t.Fatalf("error = %v, want overlap conflict", err)
	}
}

func TestUpdateSlotExcludesItself(t *testing.T) {
	svc, _ := newTestSlotService(t)
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T10:00:00Z)",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Shifting inside its own old range must not conflict with itself.
	updated, err := svc.UpdateSlot(ctx, testUserID, slot.ID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:15:00Z, 2024-03-04T10:15:00Z)",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := "[2024-03-04T09:15:00.000Z, 2024-03-04T10:15:00.000Z)"
	if updated.Period != want {
		t.Fatalf("updated period = %q, want %q", updated.Period, want)
	}
}

func TestUpdateSlotRechecksWhenOverlapDisallowed(t *testing.T) {
	svc, _ := newTestSlotService(t)
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T11:00:00Z)",
	}); err != nil {
		t.Fatalf("first slot: %v", err)
	}
	forced, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID:       testTaskID,
		UserID:       testUserID,
		Period:       "[2024-03-04T10:00:00Z, 2024-03-04T12:00:00Z)",
		AllowOverlap: true,
	})
	if err != nil {
		t.Fatalf("forced slot: %v", err)
	}

	// Dropping allow_overlap while still colliding must fail.
	_, err = svc.UpdateSlot(ctx, testUserID, forced.ID, SlotInput{
		TaskID:       testTaskID,
		UserID:       testUserID,
		Period:       forced.Period,
		AllowOverlap: false,
	})
	if _, ok := AsOverlapConflict(err); !ok {
		t.Fatalf("error = %v, want overlap conflict", err)
	}
}

func TestMoveSlotRoundsToQuarter(t *testing.T) {
	svc, _ := newTestSlotService(t)
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T10:00:00Z)",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 13:08 rounds up to 13:15; duration is preserved.
	moved, err := svc.MoveSlot(ctx, testUserID, slot.ID,
		time.Date(2024, 3, 4, 13, 8, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	want := "[2024-03-04T13:15:00.000Z, 2024-03-04T14:15:00.000Z)"
	if moved.Period != want {
		t.Fatalf("moved period = %q, want %q", moved.Period, want)
	}
}

func TestDeleteSlot(t *testing.T) {
	svc, slotDao := newTestSlotService(t)
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, testUserID, SlotInput{
		TaskID: testTaskID,
		UserID: testUserID,
		Period: "[2024-03-04T09:00:00Z, 2024-03-04T10:00:00Z)",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteSlot(ctx, outsiderID, slot.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider delete error = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteSlot(ctx, testUserID, slot.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if got, _ := slotDao.Get(ctx, slot.ID); got != nil {
		t.Fatal("slot still present after delete")
	}
	if err := svc.DeleteSlot(ctx, testUserID, slot.ID); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("second delete error = %v, want ErrSlotNotFound", err)
	}
}
