package repository

import (
	"fmt"

	"codecamp-backend/internal/domains/camp/model"
)

type opKind int

const (
	opAdd opKind = iota
	opUpdate
	opDelete
)

func (k opKind) String() string {
	switch k {
	case opAdd:
		return "add"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type stagedOp struct {
	kind   opKind
	entity model.Entity
}

// changeSet is the staged half of a unit-of-work, shared by both stores.
// Staging a camp reduces its EventDate to the calendar date.
type changeSet struct {
	ops []stagedOp
}

func (cs *changeSet) add(e model.Entity) error {
	switch v := e.(type) {
	case *model.Camp:
		if v == nil {
			return model.ErrUnsupportedEntity
		}
		if err := v.Validate(); err != nil {
			return err
		}
		v.EventDate = model.DateOnly(v.EventDate)
	case *model.Talk:
		if v == nil {
			return model.ErrUnsupportedEntity
		}
		if err := v.Validate(); err != nil {
			return err
		}
	case *model.Speaker:
		if v == nil {
			return model.ErrUnsupportedEntity
		}
		if err := v.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("add %T: %w", e, model.ErrUnsupportedEntity)
	}
	cs.ops = append(cs.ops, stagedOp{kind: opAdd, entity: e})
	return nil
}

func (cs *changeSet) update(e model.Entity) error {
	switch v := e.(type) {
	case *model.Camp:
		if v == nil || v.CampID == 0 {
			return model.ErrNotPersisted
		}
		if err := v.Validate(); err != nil {
			return err
		}
		v.EventDate = model.DateOnly(v.EventDate)
	case *model.Talk:
		if v == nil || v.TalkID == 0 {
			return model.ErrNotPersisted
		}
		if err := v.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("update %T: %w", e, model.ErrUnsupportedEntity)
	}
	cs.ops = append(cs.ops, stagedOp{kind: opUpdate, entity: e})
	return nil
}

func (cs *changeSet) delete(e model.Entity) error {
	switch v := e.(type) {
	case *model.Camp:
		if v == nil || v.CampID == 0 {
			return model.ErrNotPersisted
		}
	case *model.Talk:
		if v == nil || v.TalkID == 0 {
			return model.ErrNotPersisted
		}
	default:
		return fmt.Errorf("delete %T: %w", e, model.ErrUnsupportedEntity)
	}
	cs.ops = append(cs.ops, stagedOp{kind: opDelete, entity: e})
	return nil
}

func (cs *changeSet) empty() bool { return len(cs.ops) == 0 }

func (cs *changeSet) reset() { cs.ops = nil }

// idAssignments collects ids generated during a commit. They are written
// back to the entities only once the commit has succeeded.
type idAssignments struct {
	camps    map[*model.Camp]int
	talks    map[*model.Talk]int
	speakers map[*model.Speaker]int
}

func newIDAssignments() *idAssignments {
	return &idAssignments{
		camps:    map[*model.Camp]int{},
		talks:    map[*model.Talk]int{},
		speakers: map[*model.Speaker]int{},
	}
}

// campID resolves the id of c, including a camp inserted earlier in the
// same commit. 0 means unknown.
func (a *idAssignments) campID(c *model.Camp) int {
	if c == nil {
		return 0
	}
	if c.CampID != 0 {
		return c.CampID
	}
	return a.camps[c]
}

func (a *idAssignments) speakerID(s *model.Speaker) int {
	if s == nil {
		return 0
	}
	if s.SpeakerID != 0 {
		return s.SpeakerID
	}
	return a.speakers[s]
}

func (a *idAssignments) apply() {
	for c, id := range a.camps {
		c.CampID = id
	}
	for t, id := range a.talks {
		t.TalkID = id
	}
	for s, id := range a.speakers {
		s.SpeakerID = id
	}
}
