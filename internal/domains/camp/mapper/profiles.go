package mapper

import (
	"codecamp-backend/internal/domains/camp/model"
)

// ════════════════════════════════════════════════════════════════
// CAMP
// ════════════════════════════════════════════════════════════════

func campToModelProfile(m *Mapper) *Profile[model.Camp, model.CampModel] {
	return NewProfile[model.Camp, model.CampModel]().
		ForMember("Name", func(s *model.Camp, d *model.CampModel) { d.Name = s.Name }).
		ForMember("Moniker", func(s *model.Camp, d *model.CampModel) { d.Moniker = s.Moniker }).
		ForMember("EventDate", func(s *model.Camp, d *model.CampModel) { d.EventDate = model.NewDate(s.EventDate) }).
		ForMember("Length", func(s *model.Camp, d *model.CampModel) { d.Length = s.Length }).
		// Location được flatten thành location_* fields
		ForMember("LocationVenueName", func(s *model.Camp, d *model.CampModel) { d.LocationVenueName = s.Location.VenueName }).
		ForMember("LocationAddress1", func(s *model.Camp, d *model.CampModel) { d.LocationAddress1 = s.Location.Address1 }).
		ForMember("LocationAddress2", func(s *model.Camp, d *model.CampModel) { d.LocationAddress2 = s.Location.Address2 }).
		ForMember("LocationAddress3", func(s *model.Camp, d *model.CampModel) { d.LocationAddress3 = s.Location.Address3 }).
		ForMember("LocationCityTown", func(s *model.Camp, d *model.CampModel) { d.LocationCityTown = s.Location.CityTown }).
		ForMember("LocationStateProvince", func(s *model.Camp, d *model.CampModel) { d.LocationStateProvince = s.Location.StateProvince }).
		ForMember("LocationPostalCode", func(s *model.Camp, d *model.CampModel) { d.LocationPostalCode = s.Location.PostalCode }).
		ForMember("LocationCountry", func(s *model.Camp, d *model.CampModel) { d.LocationCountry = s.Location.Country }).
		ForMember("Talks", func(s *model.Camp, d *model.CampModel) { d.Talks = m.TalksToModels(s.Talks) })
}

// modelToCampProfile builds the create table, or the merge table when merge
// is true. Merge never touches the moniker: it is the camp's identity.
func modelToCampProfile(merge bool) *Profile[model.CampModel, model.Camp] {
	p := NewProfile[model.CampModel, model.Camp]().
		Ignore("CampID", "Talks").
		ForMember("Name", func(s *model.CampModel, d *model.Camp) { d.Name = s.Name }).
		ForMember("EventDate", func(s *model.CampModel, d *model.Camp) { d.EventDate = model.DateOnly(s.EventDate.Time) }).
		ForMember("Length", func(s *model.CampModel, d *model.Camp) { d.Length = s.Length }).
		ForMember("Location", func(s *model.CampModel, d *model.Camp) {
			d.Location = model.Location{
				VenueName:     s.LocationVenueName,
				Address1:      s.LocationAddress1,
				Address2:      s.LocationAddress2,
				Address3:      s.LocationAddress3,
				CityTown:      s.LocationCityTown,
				StateProvince: s.LocationStateProvince,
				PostalCode:    s.LocationPostalCode,
				Country:       s.LocationCountry,
			}
		})

	if merge {
		return p.Ignore("Moniker")
	}
	return p.ForMember("Moniker", func(s *model.CampModel, d *model.Camp) { d.Moniker = s.Moniker })
}

// ════════════════════════════════════════════════════════════════
// TALK
// ════════════════════════════════════════════════════════════════

func talkToModelProfile(m *Mapper) *Profile[model.Talk, model.TalkModel] {
	return NewProfile[model.Talk, model.TalkModel]().
		ForMember("TalkID", func(s *model.Talk, d *model.TalkModel) { d.TalkID = s.TalkID }).
		ForMember("Title", func(s *model.Talk, d *model.TalkModel) { d.Title = s.Title }).
		ForMember("Abstract", func(s *model.Talk, d *model.TalkModel) { d.Abstract = s.Abstract }).
		ForMember("Level", func(s *model.Talk, d *model.TalkModel) { d.Level = s.Level }).
		ForMember("Speaker", func(s *model.Talk, d *model.TalkModel) {
			if s.Speaker == nil {
				d.Speaker = nil
				return
			}
			sm := m.SpeakerToModel(s.Speaker)
			d.Speaker = &sm
		})
}

// modelToTalkProfile serves both create and update: relationship fields are
// resolved by the caller through the repository.
func modelToTalkProfile() *Profile[model.TalkModel, model.Talk] {
	return NewProfile[model.TalkModel, model.Talk]().
		Ignore("TalkID", "Camp", "Speaker").
		ForMember("Title", func(s *model.TalkModel, d *model.Talk) { d.Title = s.Title }).
		ForMember("Abstract", func(s *model.TalkModel, d *model.Talk) { d.Abstract = s.Abstract }).
		ForMember("Level", func(s *model.TalkModel, d *model.Talk) { d.Level = s.Level })
}

// ════════════════════════════════════════════════════════════════
// SPEAKER
// ════════════════════════════════════════════════════════════════

func speakerToModelProfile() *Profile[model.Speaker, model.SpeakerModel] {
	return NewProfile[model.Speaker, model.SpeakerModel]().
		ForMember("SpeakerID", func(s *model.Speaker, d *model.SpeakerModel) { d.SpeakerID = s.SpeakerID }).
		ForMember("FirstName", func(s *model.Speaker, d *model.SpeakerModel) { d.FirstName = s.FirstName }).
		ForMember("LastName", func(s *model.Speaker, d *model.SpeakerModel) { d.LastName = s.LastName }).
		ForMember("MiddleName", func(s *model.Speaker, d *model.SpeakerModel) { d.MiddleName = s.MiddleName }).
		ForMember("Bio", func(s *model.Speaker, d *model.SpeakerModel) { d.Bio = s.Bio }).
		ForMember("Company", func(s *model.Speaker, d *model.SpeakerModel) { d.Company = s.Company }).
		ForMember("CompanyURL", func(s *model.Speaker, d *model.SpeakerModel) { d.CompanyURL = s.CompanyURL }).
		ForMember("BlogURL", func(s *model.Speaker, d *model.SpeakerModel) { d.BlogURL = s.BlogURL }).
		ForMember("Twitter", func(s *model.Speaker, d *model.SpeakerModel) { d.Twitter = s.Twitter }).
		ForMember("GitHub", func(s *model.Speaker, d *model.SpeakerModel) { d.GitHub = s.GitHub })
}

func modelToSpeakerProfile() *Profile[model.SpeakerModel, model.Speaker] {
	return NewProfile[model.SpeakerModel, model.Speaker]().
		Ignore("SpeakerID").
		ForMember("FirstName", func(s *model.SpeakerModel, d *model.Speaker) { d.FirstName = s.FirstName }).
		ForMember("LastName", func(s *model.SpeakerModel, d *model.Speaker) { d.LastName = s.LastName }).
		ForMember("MiddleName", func(s *model.SpeakerModel, d *model.Speaker) { d.MiddleName = s.MiddleName }).
		ForMember("Bio", func(s *model.SpeakerModel, d *model.Speaker) { d.Bio = s.Bio }).
		ForMember("Company", func(s *model.SpeakerModel, d *model.Speaker) { d.Company = s.Company }).
		ForMember("CompanyURL", func(s *model.SpeakerModel, d *model.Speaker) { d.CompanyURL = s.CompanyURL }).
		ForMember("BlogURL", func(s *model.SpeakerModel, d *model.Speaker) { d.BlogURL = s.BlogURL }).
		ForMember("Twitter", func(s *model.SpeakerModel, d *model.Speaker) { d.Twitter = s.Twitter }).
		ForMember("GitHub", func(s *model.SpeakerModel, d *model.Speaker) { d.GitHub = s.GitHub })
}
