// Package mapper translates between camp entities and their wire models.
//
// Each (source, destination) pair has a Profile: an explicit table of
// per-field copy functions built and validated once in New. Entity to model
// is a total copy (nested talks and speakers included, location flattened).
// Model to entity is selective: identity and relationship fields (CampID,
// Moniker on merge, Talks, TalkID, Camp, Speaker) are ignored and must be
// assigned explicitly by the caller.
package mapper

import (
	"errors"

	"codecamp-backend/internal/domains/camp/model"
)

type Mapper struct {
	campToModel    *Profile[model.Camp, model.CampModel]
	talkToModel    *Profile[model.Talk, model.TalkModel]
	speakerToModel *Profile[model.Speaker, model.SpeakerModel]

	newCamp        *Profile[model.CampModel, model.Camp]
	mergeCamp      *Profile[model.CampModel, model.Camp]
	modelToTalk    *Profile[model.TalkModel, model.Talk]
	modelToSpeaker *Profile[model.SpeakerModel, model.Speaker]
}

// New builds every profile and validates its field table.
func New() (*Mapper, error) {
	m := &Mapper{}
	m.speakerToModel = speakerToModelProfile()
	m.talkToModel = talkToModelProfile(m)
	m.campToModel = campToModelProfile(m)
	m.newCamp = modelToCampProfile(false)
	m.mergeCamp = modelToCampProfile(true)
	m.modelToTalk = modelToTalkProfile()
	m.modelToSpeaker = modelToSpeakerProfile()

	if err := errors.Join(
		m.campToModel.Validate(),
		m.talkToModel.Validate(),
		m.speakerToModel.Validate(),
		m.newCamp.Validate(),
		m.mergeCamp.Validate(),
		m.modelToTalk.Validate(),
		m.modelToSpeaker.Validate(),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNew is New for wiring code; it panics on an invalid table.
func MustNew() *Mapper {
	m, err := New()
	if err != nil {
		panic(err)
	}
	return m
}

// ── Entity → Model ───────────────────────────────────────────

func (m *Mapper) CampToModel(c *model.Camp) model.CampModel {
	return m.campToModel.MapNew(c)
}

func (m *Mapper) CampsToModels(camps []*model.Camp) []model.CampModel {
	out := make([]model.CampModel, 0, len(camps))
	for _, c := range camps {
		out = append(out, m.CampToModel(c))
	}
	return out
}

func (m *Mapper) TalkToModel(t *model.Talk) model.TalkModel {
	return m.talkToModel.MapNew(t)
}

func (m *Mapper) TalksToModels(talks []*model.Talk) []model.TalkModel {
	out := make([]model.TalkModel, 0, len(talks))
	for _, t := range talks {
		out = append(out, m.TalkToModel(t))
	}
	return out
}

func (m *Mapper) SpeakerToModel(s *model.Speaker) model.SpeakerModel {
	return m.speakerToModel.MapNew(s)
}

// ── Model → Entity ───────────────────────────────────────────

// ToCamp builds a new camp (defaults applied) from a create payload.
func (m *Mapper) ToCamp(src *model.CampModel) *model.Camp {
	c := model.NewCamp("")
	m.newCamp.Map(src, c)
	return c
}

// MergeCamp copies content fields onto an existing camp. Moniker, CampID
// and Talks are never written.
func (m *Mapper) MergeCamp(src *model.CampModel, dst *model.Camp) {
	m.mergeCamp.Map(src, dst)
}

// ToTalk builds a talk with content fields only; Camp and Speaker are left nil.
func (m *Mapper) ToTalk(src *model.TalkModel) *model.Talk {
	t := &model.Talk{}
	m.modelToTalk.Map(src, t)
	return t
}

// MergeTalk copies content fields onto an existing talk. TalkID, Camp and
// Speaker are never written.
func (m *Mapper) MergeTalk(src *model.TalkModel, dst *model.Talk) {
	m.modelToTalk.Map(src, dst)
}

func (m *Mapper) ToSpeaker(src *model.SpeakerModel) *model.Speaker {
	s := &model.Speaker{}
	m.modelToSpeaker.Map(src, s)
	return s
}
