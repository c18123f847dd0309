package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"confhall/internal/auth"
	"confhall/internal/entity"
	"confhall/internal/filter"
	"confhall/internal/session"
)

// fixture is the JSON shape the --fixture flag loads.
type fixture struct {
	Conferences []fixtureConference `json:"conferences"`
	Sessions    []fixtureSession    `json:"sessions"`
}

type fixtureConference struct {
	Key             string   `json:"key"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	OrganizerUserID string   `json:"organizerUserId"`
	Topics          []string `json:"topics"`
	City            string   `json:"city"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	MaxAttendees    int      `json:"maxAttendees"`
	SeatsAvailable  int      `json:"seatsAvailable"`
}

type fixtureSession struct {
	Conference    string   `json:"conference"`
	Name          string   `json:"name"`
	Speaker       string   `json:"speaker"`
	Highlights    []string `json:"highlights"`
	Duration      string   `json:"duration"`
	TypeOfSession []string `json:"typeOfSession"`
	Date          string   `json:"date"`
	StartTime     string   `json:"startTime"`
}

// seed loads a fixture file, storing conferences directly and creating
// sessions through the service as each conference's organizer so the
// normal coercion and featured-speaker paths run.
func (a *app) seed(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	organizers := make(map[string]string, len(fx.Conferences))
	for _, fc := range fx.Conferences {
		conf := entity.Conference{
			Key:             fc.Key,
			Name:            fc.Name,
			Description:     fc.Description,
			OrganizerUserID: fc.OrganizerUserID,
			Topics:          fc.Topics,
			City:            fc.City,
			MaxAttendees:    fc.MaxAttendees,
			SeatsAvailable:  fc.SeatsAvailable,
		}
		if fc.StartDate != "" {
			d, err := time.Parse(filter.DateLayout, fc.StartDate)
			if err != nil {
				return fmt.Errorf("conference %q start date: %w", fc.Key, err)
			}
			conf.StartDate = d
			conf.Month = int(d.Month())
		}
		if fc.EndDate != "" {
			d, err := time.Parse(filter.DateLayout, fc.EndDate)
			if err != nil {
				return fmt.Errorf("conference %q end date: %w", fc.Key, err)
			}
			conf.EndDate = d
		}
		if err := a.store.PutConference(ctx, conf); err != nil {
			return err
		}
		organizers[fc.Key] = fc.OrganizerUserID
	}

	for _, fs := range fx.Sessions {
		organizer, ok := organizers[fs.Conference]
		if !ok {
			return fmt.Errorf("session %q references unknown conference %q", fs.Name, fs.Conference)
		}
		claims := &auth.Claims{}
		claims.Subject = organizer
		_, err := a.service.CreateSession(auth.WithClaims(ctx, claims), fs.Conference, session.Draft{
			Name:          fs.Name,
			Speaker:       fs.Speaker,
			Highlights:    fs.Highlights,
			Duration:      fs.Duration,
			TypeOfSession: fs.TypeOfSession,
			Date:          fs.Date,
			StartTime:     fs.StartTime,
		})
		if err != nil {
			return fmt.Errorf("session %q: %w", fs.Name, err)
		}
	}

	a.logger.Debug("fixture loaded",
		"conferences", len(fx.Conferences), "sessions", len(fx.Sessions))
	return nil
}
