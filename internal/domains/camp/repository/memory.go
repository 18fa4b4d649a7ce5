package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"codecamp-backend/internal/domains/camp/model"
)

// MemoryStore is an in-process store for development and tests. It applies
// the same constraints the database schema does (unique moniker, talk
// foreign keys, cascade on camp delete) when a unit-of-work commits.
type MemoryStore struct {
	mu    sync.RWMutex
	state *memState
}

type memState struct {
	camps    map[int]model.Camp // Talks always nil
	talks    map[int]talkRow
	speakers map[int]model.Speaker

	// sequences only grow, ids are never reused
	nextCampID    int
	nextTalkID    int
	nextSpeakerID int
}

type talkRow struct {
	TalkID    int
	CampID    int
	SpeakerID int
	Title     string
	Abstract  string
	Level     int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memState{
			camps:    map[int]model.Camp{},
			talks:    map[int]talkRow{},
			speakers: map[int]model.Speaker{},
		},
	}
}

// Ensure interfaces are met.
var _ Factory = (*MemoryStore)(nil)
var _ Repository = (*memoryRepository)(nil)

// New opens a unit-of-work over the store.
func (s *MemoryStore) New() Repository {
	return &memoryRepository{store: s}
}

func (st *memState) clone() *memState {
	next := &memState{
		camps:         make(map[int]model.Camp, len(st.camps)),
		talks:         make(map[int]talkRow, len(st.talks)),
		speakers:      make(map[int]model.Speaker, len(st.speakers)),
		nextCampID:    st.nextCampID,
		nextTalkID:    st.nextTalkID,
		nextSpeakerID: st.nextSpeakerID,
	}
	for k, v := range st.camps {
		next.camps[k] = v
	}
	for k, v := range st.talks {
		next.talks[k] = v
	}
	for k, v := range st.speakers {
		next.speakers[k] = v
	}
	return next
}

func (st *memState) campByMoniker(moniker string) (model.Camp, bool) {
	for _, c := range st.camps {
		if c.Moniker == moniker {
			return c, true
		}
	}
	return model.Camp{}, false
}

// ════════════════════════════════════════════════════════════════
// READS
// ════════════════════════════════════════════════════════════════

type memoryRepository struct {
	store   *MemoryStore
	changes changeSet
}

func (r *memoryRepository) GetAllCamps(ctx context.Context, includeTalks bool) ([]*model.Camp, error) {
	return r.findCamps(ctx, includeTalks, func(model.Camp) bool { return true })
}

func (r *memoryRepository) GetCamp(ctx context.Context, moniker string, includeTalks bool) (*model.Camp, error) {
	camps, err := r.findCamps(ctx, includeTalks, func(c model.Camp) bool { return c.Moniker == moniker })
	if err != nil || len(camps) == 0 {
		return nil, err
	}
	return camps[0], nil
}

func (r *memoryRepository) GetCampsByEventDate(ctx context.Context, date time.Time, includeTalks bool) ([]*model.Camp, error) {
	return r.findCamps(ctx, includeTalks, func(c model.Camp) bool {
		return c.IsScheduled() && model.SameDate(c.EventDate, date)
	})
}

func (r *memoryRepository) GetTalksByMoniker(ctx context.Context, moniker string) ([]*model.Talk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	st := r.store.state
	row, ok := st.campByMoniker(moniker)
	if !ok {
		return []*model.Talk{}, nil
	}
	camp := copyCamp(row)
	return st.talksOf(camp, true), nil
}

func (r *memoryRepository) GetTalkByMoniker(ctx context.Context, moniker string, talkID int, includeSpeaker bool) (*model.Talk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	st := r.store.state
	row, ok := st.campByMoniker(moniker)
	if !ok {
		return nil, nil
	}
	t, ok := st.talks[talkID]
	if !ok || t.CampID != row.CampID {
		return nil, nil
	}
	return st.buildTalk(t, copyCamp(row), includeSpeaker), nil
}

func (r *memoryRepository) GetSpeaker(ctx context.Context, speakerID int) (*model.Speaker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.state.speakers[speakerID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memoryRepository) findCamps(ctx context.Context, includeTalks bool, match func(model.Camp) bool) ([]*model.Camp, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	st := r.store.state
	out := []*model.Camp{}
	for _, row := range st.camps {
		if !match(row) {
			continue
		}
		camp := copyCamp(row)
		if includeTalks {
			camp.Talks = st.talksOf(camp, true)
		}
		out = append(out, camp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Moniker < out[j].Moniker })
	return out, nil
}

// talksOf builds the talks of camp ordered by id. Caller holds the read lock.
func (st *memState) talksOf(camp *model.Camp, includeSpeaker bool) []*model.Talk {
	talks := []*model.Talk{}
	for _, t := range st.talks {
		if t.CampID == camp.CampID {
			talks = append(talks, st.buildTalk(t, camp, includeSpeaker))
		}
	}
	sort.Slice(talks, func(i, j int) bool { return talks[i].TalkID < talks[j].TalkID })
	return talks
}

func (st *memState) buildTalk(t talkRow, camp *model.Camp, includeSpeaker bool) *model.Talk {
	talk := &model.Talk{
		TalkID:   t.TalkID,
		Title:    t.Title,
		Abstract: t.Abstract,
		Level:    t.Level,
		Camp:     camp,
		Speaker:  &model.Speaker{SpeakerID: t.SpeakerID},
	}
	if includeSpeaker {
		if s, ok := st.speakers[t.SpeakerID]; ok {
			talk.Speaker = &s
		}
	}
	return talk
}

func copyCamp(row model.Camp) *model.Camp {
	c := row
	c.Talks = nil
	return &c
}

// ════════════════════════════════════════════════════════════════
// STAGING + COMMIT
// ════════════════════════════════════════════════════════════════

func (r *memoryRepository) Add(e model.Entity) error    { return r.changes.add(e) }
func (r *memoryRepository) Update(e model.Entity) error { return r.changes.update(e) }
func (r *memoryRepository) Delete(e model.Entity) error { return r.changes.delete(e) }

// SaveChanges applies the staged set to a copy of the state and swaps it in
// only if every operation succeeded.
func (r *memoryRepository) SaveChanges(ctx context.Context) (bool, error) {
	if r.changes.empty() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, model.NewPersistenceError("save changes", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	next := r.store.state.clone()
	ids := newIDAssignments()
	affected := 0
	for _, op := range r.changes.ops {
		n, err := next.apply(op, ids)
		if err != nil {
			return false, model.NewPersistenceError(fmt.Sprintf("save changes: %s %T", op.kind, op.entity), err)
		}
		affected += n
	}

	r.store.state = next
	ids.apply()
	r.changes.reset()
	return affected > 0, nil
}

func (st *memState) apply(op stagedOp, ids *idAssignments) (int, error) {
	switch e := op.entity.(type) {
	case *model.Camp:
		switch op.kind {
		case opAdd:
			return st.insertCamp(e, ids)
		case opUpdate:
			return st.updateCamp(e), nil
		case opDelete:
			return st.deleteCamp(e.CampID), nil
		}
	case *model.Talk:
		switch op.kind {
		case opAdd:
			return st.insertTalk(e, ids)
		case opUpdate:
			return st.updateTalk(e, ids)
		case opDelete:
			if _, ok := st.talks[e.TalkID]; !ok {
				return 0, nil
			}
			delete(st.talks, e.TalkID)
			return 1, nil
		}
	case *model.Speaker:
		if op.kind == opAdd {
			st.nextSpeakerID++
			row := *e
			row.SpeakerID = st.nextSpeakerID
			st.speakers[row.SpeakerID] = row
			ids.speakers[e] = row.SpeakerID
			return 1, nil
		}
	}
	return 0, model.ErrUnsupportedEntity
}

func (st *memState) insertCamp(c *model.Camp, ids *idAssignments) (int, error) {
	if _, exists := st.campByMoniker(c.Moniker); exists {
		return 0, model.ErrDuplicateMoniker
	}
	st.nextCampID++
	row := *c
	row.CampID = st.nextCampID
	row.Talks = nil
	st.camps[row.CampID] = row
	ids.camps[c] = row.CampID
	return 1, nil
}

func (st *memState) updateCamp(c *model.Camp) int {
	row, ok := st.camps[c.CampID]
	if !ok {
		return 0
	}
	next := *c
	next.Moniker = row.Moniker
	next.Talks = nil
	if sameCampContent(row, next) {
		return 0
	}
	st.camps[c.CampID] = next
	return 1
}

func sameCampContent(a, b model.Camp) bool {
	return a.Name == b.Name &&
		a.EventDate.Equal(b.EventDate) &&
		a.Length == b.Length &&
		a.Location == b.Location
}

func (st *memState) deleteCamp(campID int) int {
	if _, ok := st.camps[campID]; !ok {
		return 0
	}
	delete(st.camps, campID)
	for id, t := range st.talks {
		if t.CampID == campID {
			delete(st.talks, id)
		}
	}
	return 1
}

func (st *memState) checkSpeaker(s *model.Speaker, ids *idAssignments) (int, error) {
	id := ids.speakerID(s)
	if _, ok := st.speakers[id]; !ok {
		return 0, model.ErrSpeakerNotFound
	}
	return id, nil
}

func (st *memState) insertTalk(t *model.Talk, ids *idAssignments) (int, error) {
	campID := ids.campID(t.Camp)
	if _, ok := st.camps[campID]; !ok {
		return 0, model.ErrCampNotFound
	}
	speakerID, err := st.checkSpeaker(t.Speaker, ids)
	if err != nil {
		return 0, err
	}

	st.nextTalkID++
	st.talks[st.nextTalkID] = talkRow{
		TalkID:    st.nextTalkID,
		CampID:    campID,
		SpeakerID: speakerID,
		Title:     t.Title,
		Abstract:  t.Abstract,
		Level:     t.Level,
	}
	ids.talks[t] = st.nextTalkID
	return 1, nil
}

func (st *memState) updateTalk(t *model.Talk, ids *idAssignments) (int, error) {
	row, ok := st.talks[t.TalkID]
	if !ok {
		return 0, nil
	}
	speakerID, err := st.checkSpeaker(t.Speaker, ids)
	if err != nil {
		return 0, err
	}

	// camp_id is never rewritten
	next := row
	next.SpeakerID = speakerID
	next.Title = t.Title
	next.Abstract = t.Abstract
	next.Level = t.Level
	if next == row {
		return 0, nil
	}
	st.talks[t.TalkID] = next
	return 1, nil
}
