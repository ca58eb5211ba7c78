package service

import (
	"context"
	"testing"
	"time"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/model"
)

func TestBatchETA(t *testing.T) {
	slotDao := newStubSlotDao()
	ctx := context.Background()
	seed := []*model.PlanSlot{
		{TaskID: 1, UserID: 1, Period: "[2024-03-04T09:00:00.000Z, 2024-03-04T10:00:00.000Z)"},
		{TaskID: 1, UserID: 2, Period: "[2024-03-05T09:00:00.000Z, 2024-03-05T11:00:00.000Z)"},
		{TaskID: 2, UserID: 1, Period: "[2024-03-06T14:00:00.000Z, 2024-03-06T15:00:00.000Z)"},
		// Different start, same end as the slot above on task 2.
		{TaskID: 2, UserID: 2, Period: "[2024-03-06T14:30:00.000Z, 2024-03-06T15:00:00.000Z)"},
	}
	for _, s := range seed {
		if err := slotDao.Insert(ctx, s); err != nil {
			t.Fatalf("seed slot: %v", err)
		}
	}

	svc := &etaServiceImpl{
		BaseComponent: core.NewBaseComponent(consts.COMP_SVC_ETA),
		SlotDao:       slotDao,
	}

	etas, err := svc.BatchETA(ctx, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("BatchETA: %v", err)
	}

	want1 := time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC)
	if etas[1] == nil || !etas[1].Equal(want1) {
		t.Fatalf("eta for task 1 = %v, want %v", etas[1], want1)
	}
	want2 := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	if etas[2] == nil || !etas[2].Equal(want2) {
		t.Fatalf("eta for task 2 = %v, want %v", etas[2], want2)
	}
	// No slots means no projection, not a zero time.
	if etas[3] != nil {
		t.Fatalf("eta for slotless task = %v, want nil", etas[3])
	}
}

func TestBatchETAEmptyInput(t *testing.T) {
	svc := &etaServiceImpl{
		BaseComponent: core.NewBaseComponent(consts.COMP_SVC_ETA),
		SlotDao:       newStubSlotDao(),
	}
	etas, err := svc.BatchETA(context.Background(), nil)
	if err != nil {
		t.Fatalf("BatchETA: %v", err)
	}
	if len(etas) != 0 {
		t.Fatalf("etas = %v, want empty", etas)
	}
}
