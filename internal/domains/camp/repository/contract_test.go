package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecamp-backend/internal/domains/camp/model"
)

// Every Repository implementation must pass the same suite.

func TestMemoryRepository(t *testing.T) {
	runContract(t, func(t *testing.T) Factory { return NewMemoryStore() })
}

func TestPostgresRepository(t *testing.T) {
	runContract(t, newPostgresFactory)
}

// newPostgresFactory connects to TEST_DATABASE_URL and resets the camp
// tables. The test is skipped when no database is reachable.
func newPostgresFactory(t *testing.T) Factory {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("postgres unavailable: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE talks, camps, speakers RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return NewPostgresFactory(pool)
}

var eventDay = time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)

func atlanta() *model.Camp {
	c := model.NewCamp("ATL2024")
	c.Name = "Atlanta Code Camp"
	c.EventDate = eventDay
	c.Location = model.Location{VenueName: "Atlanta Convention Center", CityTown: "Atlanta", Country: "USA"}
	return c
}

func mustSave(t *testing.T, repo Repository) {
	t.Helper()
	ok, err := repo.SaveChanges(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func seedSpeaker(t *testing.T, f Factory, first, last string) *model.Speaker {
	t.Helper()
	s := &model.Speaker{FirstName: first, LastName: last}
	repo := f.New()
	require.NoError(t, repo.Add(s))
	mustSave(t, repo)
	require.NotZero(t, s.SpeakerID)
	return s
}

func seedCamp(t *testing.T, f Factory, c *model.Camp) *model.Camp {
	t.Helper()
	repo := f.New()
	require.NoError(t, repo.Add(c))
	mustSave(t, repo)
	require.NotZero(t, c.CampID)
	return c
}

func seedTalk(t *testing.T, f Factory, camp *model.Camp, speaker *model.Speaker, title string) *model.Talk {
	t.Helper()
	talk := &model.Talk{Title: title, Level: 200, Camp: camp, Speaker: speaker}
	repo := f.New()
	require.NoError(t, repo.Add(talk))
	mustSave(t, repo)
	require.NotZero(t, talk.TalkID)
	return talk
}

func runContract(t *testing.T, newFactory func(t *testing.T) Factory) {
	ctx := context.Background()

	t.Run("create then get camp", func(t *testing.T) {
		f := newFactory(t)
		created := seedCamp(t, f, atlanta())

		got, err := f.New().GetCamp(ctx, "ATL2024", false)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.CampID, got.CampID)
		assert.Equal(t, "Atlanta Code Camp", got.Name)
		assert.True(t, eventDay.Equal(got.EventDate))
		assert.Equal(t, 1, got.Length)
		assert.Equal(t, "Atlanta", got.Location.CityTown)
		assert.Nil(t, got.Talks)

		missing, err := f.New().GetCamp(ctx, "atl2024", false)
		require.NoError(t, err)
		assert.Nil(t, missing, "moniker match is case-sensitive")
	})

	t.Run("duplicate moniker fails and persists nothing", func(t *testing.T) {
		f := newFactory(t)
		seedCamp(t, f, atlanta())

		repo := f.New()
		dup := atlanta()
		dup.Name = "Second"
		require.NoError(t, repo.Add(dup))

		ok, err := repo.SaveChanges(ctx)
		assert.False(t, ok)
		assert.ErrorIs(t, err, model.ErrDuplicateMoniker)
		assert.ErrorIs(t, err, model.ErrPersistence)
		assert.Zero(t, dup.CampID)

		all, err := f.New().GetAllCamps(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Atlanta Code Camp", all[0].Name)
	})

	t.Run("include talks loads full set with speakers", func(t *testing.T) {
		f := newFactory(t)
		camp := seedCamp(t, f, atlanta())
		speaker := seedSpeaker(t, f, "Shawn", "Wildermuth")
		t1 := seedTalk(t, f, camp, speaker, "Entity Framework From Scratch")
		t2 := seedTalk(t, f, camp, speaker, "Writing Sample Data Made Easy")

		got, err := f.New().GetCamp(ctx, "ATL2024", true)
		require.NoError(t, err)
		require.Len(t, got.Talks, 2)
		assert.Equal(t, t1.TalkID, got.Talks[0].TalkID)
		assert.Equal(t, t2.TalkID, got.Talks[1].TalkID)
		assert.Equal(t, "Shawn", got.Talks[0].Speaker.FirstName)
		assert.Equal(t, got.CampID, got.Talks[0].CampID())

		bare, err := f.New().GetCamp(ctx, "ATL2024", false)
		require.NoError(t, err)
		assert.Nil(t, bare.Talks)
	})

	t.Run("get all camps ordered by moniker", func(t *testing.T) {
		f := newFactory(t)
		for _, m := range []string{"SEA2025", "ATL2024", "NYC2023"} {
			c := model.NewCamp(m)
			c.Name = m
			seedCamp(t, f, c)
		}

		all, err := f.New().GetAllCamps(ctx, true)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "ATL2024", all[0].Moniker)
		assert.Equal(t, "NYC2023", all[1].Moniker)
		assert.Equal(t, "SEA2025", all[2].Moniker)
		assert.NotNil(t, all[0].Talks)
		assert.Empty(t, all[0].Talks)
	})

	t.Run("camps by event date", func(t *testing.T) {
		f := newFactory(t)
		seedCamp(t, f, atlanta())
		unscheduled := model.NewCamp("TBD")
		unscheduled.Name = "Someday"
		seedCamp(t, f, unscheduled)

		got, err := f.New().GetCampsByEventDate(ctx, eventDay.Add(15*time.Hour), false)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ATL2024", got[0].Moniker)

		none, err := f.New().GetCampsByEventDate(ctx, eventDay.AddDate(0, 0, 1), false)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("event date is filed under its local calendar date", func(t *testing.T) {
		f := newFactory(t)
		camp := atlanta()
		// 20:00 on the 14th at UTC-5, already the 15th in UTC
		camp.EventDate = time.Date(2024, 9, 14, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))
		seedCamp(t, f, camp)

		got, err := f.New().GetCampsByEventDate(ctx, eventDay, false)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "ATL2024", got[0].Moniker)
		assert.Equal(t, eventDay, got[0].EventDate)

		next, err := f.New().GetCampsByEventDate(ctx, eventDay.AddDate(0, 0, 1), false)
		require.NoError(t, err)
		assert.Empty(t, next)

		// same local date seen from another zone
		tokyo := time.Date(2024, 9, 14, 23, 0, 0, 0, time.FixedZone("JST", 9*3600))
		got, err = f.New().GetCampsByEventDate(ctx, tokyo, false)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("camps are ordered by moniker byte order", func(t *testing.T) {
		f := newFactory(t)
		for _, moniker := range []string{"atl-2024", "ATL2025", "Atl_2023"} {
			c := model.NewCamp(moniker)
			c.Name = moniker
			c.EventDate = eventDay
			seedCamp(t, f, c)
		}

		want := []string{"ATL2025", "Atl_2023", "atl-2024"}

		all, err := f.New().GetAllCamps(ctx, false)
		require.NoError(t, err)
		byDate, err := f.New().GetCampsByEventDate(ctx, eventDay, false)
		require.NoError(t, err)

		for _, camps := range [][]*model.Camp{all, byDate} {
			got := make([]string, 0, len(camps))
			for _, c := range camps {
				got = append(got, c.Moniker)
			}
			assert.Equal(t, want, got)
		}
	})

	t.Run("talk with unknown speaker is rejected", func(t *testing.T) {
		f := newFactory(t)
		camp := seedCamp(t, f, atlanta())

		repo := f.New()
		talk := &model.Talk{Title: "Ghost talk", Camp: camp, Speaker: &model.Speaker{SpeakerID: 7}}
		require.NoError(t, repo.Add(talk))

		ok, err := repo.SaveChanges(ctx)
		assert.False(t, ok)
		assert.ErrorIs(t, err, model.ErrSpeakerNotFound)
		assert.Zero(t, talk.TalkID)

		talks, err := f.New().GetTalksByMoniker(ctx, "ATL2024")
		require.NoError(t, err)
		assert.Empty(t, talks)
	})

	t.Run("batch is atomic", func(t *testing.T) {
		f := newFactory(t)

		repo := f.New()
		camp := atlanta()
		require.NoError(t, repo.Add(camp))
		require.NoError(t, repo.Add(&model.Talk{Title: "Bad", Camp: camp, Speaker: &model.Speaker{SpeakerID: 7}}))

		_, err := repo.SaveChanges(ctx)
		require.Error(t, err)
		assert.Zero(t, camp.CampID)

		got, err := f.New().GetCamp(ctx, "ATL2024", false)
		require.NoError(t, err)
		assert.Nil(t, got, "camp from a failed batch must not be visible")
	})

	t.Run("batch links new talk to new camp and speaker", func(t *testing.T) {
		f := newFactory(t)

		repo := f.New()
		camp := atlanta()
		speaker := &model.Speaker{FirstName: "Ada", LastName: "Lovelace"}
		talk := &model.Talk{Title: "Notes", Camp: camp, Speaker: speaker}
		require.NoError(t, repo.Add(camp))
		require.NoError(t, repo.Add(speaker))
		require.NoError(t, repo.Add(talk))
		mustSave(t, repo)

		assert.NotZero(t, camp.CampID)
		assert.NotZero(t, speaker.SpeakerID)
		assert.NotZero(t, talk.TalkID)

		got, err := f.New().GetTalkByMoniker(ctx, "ATL2024", talk.TalkID, true)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Ada", got.Speaker.FirstName)
	})

	t.Run("cascade delete keeps speakers and never reuses ids", func(t *testing.T) {
		f := newFactory(t)
		camp := seedCamp(t, f, atlanta())
		speaker := seedSpeaker(t, f, "Shawn", "Wildermuth")
		old := seedTalk(t, f, camp, speaker, "One")
		seedTalk(t, f, camp, speaker, "Two")

		repo := f.New()
		require.NoError(t, repo.Delete(camp))
		mustSave(t, repo)

		gone, err := f.New().GetCamp(ctx, "ATL2024", true)
		require.NoError(t, err)
		assert.Nil(t, gone)

		talks, err := f.New().GetTalksByMoniker(ctx, "ATL2024")
		require.NoError(t, err)
		assert.Empty(t, talks)

		still, err := f.New().GetSpeaker(ctx, speaker.SpeakerID)
		require.NoError(t, err)
		require.NotNil(t, still)

		again := seedCamp(t, f, atlanta())
		assert.Greater(t, again.CampID, camp.CampID)
		fresh := seedTalk(t, f, again, speaker, "Three")
		assert.Greater(t, fresh.TalkID, old.TalkID)
	})

	t.Run("talk delete keeps speaker", func(t *testing.T) {
		f := newFactory(t)
		camp := seedCamp(t, f, atlanta())
		speaker := seedSpeaker(t, f, "Shawn", "Wildermuth")
		talk := seedTalk(t, f, camp, speaker, "One")

		repo := f.New()
		require.NoError(t, repo.Delete(talk))
		mustSave(t, repo)

		got, err := f.New().GetTalkByMoniker(ctx, "ATL2024", talk.TalkID, true)
		require.NoError(t, err)
		assert.Nil(t, got)

		s, err := f.New().GetSpeaker(ctx, speaker.SpeakerID)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("camp update writes content but never moniker", func(t *testing.T) {
		f := newFactory(t)
		seedCamp(t, f, atlanta())

		repo := f.New()
		camp, err := repo.GetCamp(ctx, "ATL2024", false)
		require.NoError(t, err)
		camp.Name = "Atlanta Code Camp 2024"
		camp.Length = 2
		camp.Moniker = "OTHER"
		require.NoError(t, repo.Update(camp))
		mustSave(t, repo)

		got, err := f.New().GetCamp(ctx, "ATL2024", false)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Atlanta Code Camp 2024", got.Name)
		assert.Equal(t, 2, got.Length)

		other, err := f.New().GetCamp(ctx, "OTHER", false)
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("unchanged update reports false", func(t *testing.T) {
		f := newFactory(t)
		seedCamp(t, f, atlanta())

		repo := f.New()
		camp, err := repo.GetCamp(ctx, "ATL2024", false)
		require.NoError(t, err)
		require.NoError(t, repo.Update(camp))

		ok, err := repo.SaveChanges(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("talk update keeps camp and checks speaker", func(t *testing.T) {
		f := newFactory(t)
		camp := seedCamp(t, f, atlanta())
		other := model.NewCamp("SEA2025")
		other.Name = "Seattle"
		seedCamp(t, f, other)
		first := seedSpeaker(t, f, "Shawn", "Wildermuth")
		second := seedSpeaker(t, f, "Ada", "Lovelace")
		talk := seedTalk(t, f, camp, first, "One")

		repo := f.New()
		loaded, err := repo.GetTalkByMoniker(ctx, "ATL2024", talk.TalkID, true)
		require.NoError(t, err)
		loaded.Title = "One, revised"
		loaded.Speaker = second
		loaded.Camp = other
		require.NoError(t, repo.Update(loaded))
		mustSave(t, repo)

		got, err := f.New().GetTalkByMoniker(ctx, "ATL2024", talk.TalkID, true)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "One, revised", got.Title)
		assert.Equal(t, second.SpeakerID, got.SpeakerID())
		assert.Equal(t, camp.CampID, got.CampID())

		repo = f.New()
		got.Speaker = &model.Speaker{SpeakerID: 999}
		require.NoError(t, repo.Update(got))
		_, err = repo.SaveChanges(ctx)
		assert.ErrorIs(t, err, model.ErrSpeakerNotFound)
	})

	t.Run("talks by moniker does not distinguish missing camp", func(t *testing.T) {
		f := newFactory(t)
		seedCamp(t, f, atlanta())

		empty, err := f.New().GetTalksByMoniker(ctx, "ATL2024")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		missing, err := f.New().GetTalksByMoniker(ctx, "NOPE")
		require.NoError(t, err)
		assert.NotNil(t, missing)
		assert.Empty(t, missing)
	})

	t.Run("talk lookup is scoped to camp", func(t *testing.T) {
		f := newFactory(t)
		camp := seedCamp(t, f, atlanta())
		other := model.NewCamp("SEA2025")
		other.Name = "Seattle"
		seedCamp(t, f, other)
		speaker := seedSpeaker(t, f, "Shawn", "Wildermuth")
		talk := seedTalk(t, f, camp, speaker, "One")

		wrong, err := f.New().GetTalkByMoniker(ctx, "SEA2025", talk.TalkID, true)
		require.NoError(t, err)
		assert.Nil(t, wrong)

		stub, err := f.New().GetTalkByMoniker(ctx, "ATL2024", talk.TalkID, false)
		require.NoError(t, err)
		require.NotNil(t, stub)
		assert.Equal(t, speaker.SpeakerID, stub.Speaker.SpeakerID)
		assert.Empty(t, stub.Speaker.FirstName)
	})

	t.Run("staging rejects invalid input", func(t *testing.T) {
		f := newFactory(t)
		repo := f.New()

		assert.ErrorIs(t, repo.Update(atlanta()), model.ErrNotPersisted)
		assert.ErrorIs(t, repo.Delete(&model.Talk{}), model.ErrNotPersisted)
		assert.ErrorIs(t, repo.Delete(&model.Speaker{SpeakerID: 1}), model.ErrUnsupportedEntity)
		assert.ErrorIs(t, repo.Add(&model.Talk{Title: "No camp", Speaker: &model.Speaker{SpeakerID: 1}}), model.ErrCampRequired)
		assert.True(t, model.IsValidation(repo.Add(model.NewCamp("has space"))))

		ok, err := repo.SaveChanges(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "nothing staged")
	})

	t.Run("failed commit keeps staged set for retry", func(t *testing.T) {
		f := newFactory(t)
		seedCamp(t, f, atlanta())

		repo := f.New()
		dup := atlanta()
		require.NoError(t, repo.Add(dup))
		_, err := repo.SaveChanges(ctx)
		require.Error(t, err)

		// free the moniker, the retry should now succeed
		cleaner := f.New()
		existing, err := cleaner.GetCamp(ctx, "ATL2024", false)
		require.NoError(t, err)
		require.NoError(t, cleaner.Delete(existing))
		mustSave(t, cleaner)

		ok, err := repo.SaveChanges(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotZero(t, dup.CampID)
	})
}
