package repository

import (
	"context"
	"fmt"
	"time"

	"codecamp-backend/internal/domains/camp/model"
)

// Seed loads a small sample graph when the store has no camps. Used for the
// memory driver in development, where there is no database to pre-populate.
func Seed(ctx context.Context, f Factory) (bool, error) {
	repo := f.New()

	camps, err := repo.GetAllCamps(ctx, false)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if len(camps) > 0 {
		return false, nil
	}

	shawn := &model.Speaker{
		FirstName:  "Shawn",
		LastName:   "Wildermuth",
		Bio:        "I'm a speaker",
		CompanyURL: "http://wilderminds.com",
		Company:    "Wilder Minds LLC",
		GitHub:     "shawnwildermuth",
		Twitter:    "shawnwildermuth",
		BlogURL:    "http://wildermuth.com",
	}
	resa := &model.Speaker{
		FirstName:  "Resa",
		LastName:   "Wildermuth",
		Bio:        "I'm a speaker",
		CompanyURL: "http://wilderminds.com",
		Company:    "Wilder Minds LLC",
		Twitter:    "resawildermuth",
		BlogURL:    "http://shawnandresa.com",
	}

	camp := model.NewCamp("ATL2018")
	camp.Name = "Atlanta Code Camp"
	camp.EventDate = time.Date(2018, 10, 18, 0, 0, 0, 0, time.UTC)
	camp.Location = model.Location{
		VenueName:     "Atlanta Convention Center",
		Address1:      "123 Main Street",
		CityTown:      "Atlanta",
		StateProvince: "GA",
		PostalCode:    "12345",
		Country:       "USA",
	}

	talks := []*model.Talk{
		{Title: "Entity Framework From Scratch", Abstract: "Entity Framework from scratch in an hour. Probably cover it all", Level: 100, Camp: camp, Speaker: shawn},
		{Title: "Writing Sample Data Made Easy", Abstract: "Thinking of good sample data examples is tiring.", Level: 200, Camp: camp, Speaker: resa},
	}

	for _, e := range []model.Entity{shawn, resa, camp, talks[0], talks[1]} {
		if err := repo.Add(e); err != nil {
			return false, fmt.Errorf("seed: %w", err)
		}
	}
	if _, err := repo.SaveChanges(ctx); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	return true, nil
}
