package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
	"github.com/grand-thief-cash/workplan/internal/service"
)

type SlotController struct {
	*core.BaseComponent
	SlotSvc service.SlotService `infra:"dep:svc_slot"`
}

func NewSlotController() *SlotController {
	return &SlotController{BaseComponent: core.NewBaseComponent(consts.COMP_CTRL_SLOT)}
}

func (c *SlotController) Mount(r chi.Router) {
	r.Route("/api/v1/slots", func(r chi.Router) {
		r.Post("/", c.create)
		r.Get("/{slotID}", c.get)
		r.Put("/{slotID}", c.update)
		r.Delete("/{slotID}", c.delete)
		r.Post("/{slotID}/move", c.move)
	})
	r.Get("/api/v1/users/{userID}/slots", c.listByUser)
}

func (c *SlotController) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	var in service.SlotInput
	if !decodeBody(w, r, &in) {
		return
	}
	slot, err := c.SlotSvc.CreateSlot(r.Context(), actor, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (c *SlotController) get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(r, "slotID")
	if !ok {
		writeBadRequest(w, "invalid slot id")
		return
	}
	slot, err := c.SlotSvc.GetSlot(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (c *SlotController) update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(r, "slotID")
	if !ok {
		writeBadRequest(w, "invalid slot id")
		return
	}
	var in service.SlotInput
	if !decodeBody(w, r, &in) {
		return
	}
	slot, err := c.SlotSvc.UpdateSlot(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

type moveRequest struct {
	NewStart time.Time `json:"new_start"`
}

func (c *SlotController) move(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(r, "slotID")
	if !ok {
		writeBadRequest(w, "invalid slot id")
		return
	}
	var in moveRequest
	if !decodeBody(w, r, &in) {
		return
	}
	if in.NewStart.IsZero() {
		writeBadRequest(w, "new_start is required")
		return
	}
	slot, err := c.SlotSvc.MoveSlot(r.Context(), actor, id, in.NewStart)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (c *SlotController) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, ok := pathID(r, "slotID")
	if !ok {
		writeBadRequest(w, "invalid slot id")
		return
	}
	if err := c.SlotSvc.DeleteSlot(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *SlotController) listByUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(r); !ok {
		writeUnauthorized(w)
		return
	}
	userID, ok := pathID(r, "userID")
	if !ok {
		writeBadRequest(w, "invalid user id")
		return
	}
	slots, err := c.SlotSvc.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}
