package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"confhall/internal/auth"
	cachemem "confhall/internal/cache/memory"
	"confhall/internal/entity"
	"confhall/internal/filter"
	"confhall/internal/session"
	"confhall/internal/storage/memory"
	"confhall/internal/timecode"
)

const organizerID = "organizer-1"

// newService builds a service over fresh in-memory collaborators with one
// conference "c1" owned by organizerID.
func newService(t *testing.T) (*session.Service, *memory.Engine) {
	t.Helper()
	engine := memory.NewEngine(nil)
	conf := entity.Conference{Key: "c1", Name: "GopherCon", OrganizerUserID: organizerID}
	if err := engine.PutConference(context.Background(), conf); err != nil {
		t.Fatalf("put conference: %v", err)
	}
	return session.NewService(engine, cachemem.NewCache(), nil), engine
}

// asUser returns a context carrying claims for the given user ID.
func asUser(userID string) context.Context {
	claims := &auth.Claims{}
	claims.Subject = userID
	return auth.WithClaims(context.Background(), claims)
}

// create is a fixture helper that fails the test on error.
func create(t *testing.T, svc *session.Service, confKey string, draft session.Draft) entity.Session {
	t.Helper()
	sess, err := svc.CreateSession(asUser(organizerID), confKey, draft)
	if err != nil {
		t.Fatalf("create session %q: %v", draft.Name, err)
	}
	return sess
}

func TestCreateSessionCoercion(t *testing.T) {
	svc, engine := newService(t)

	sess := create(t, svc, "c1", session.Draft{
		Name:          "Intro to Go",
		Speaker:       "Alice",
		Highlights:    []string{"generics", "iterators"},
		Duration:      "60 minutes",
		TypeOfSession: []string{"WORKSHOP", "LECTURE"},
		Date:          "2026-06-15",
		StartTime:     "9 05 AM",
	})

	if sess.StartTime != 545 {
		t.Errorf("StartTime = %d, want 545 minutes", sess.StartTime)
	}
	if want := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC); !sess.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", sess.Date, want)
	}
	if len(sess.TypeOfSession) != 2 ||
		sess.TypeOfSession[0] != entity.TypeWorkshop ||
		sess.TypeOfSession[1] != entity.TypeLecture {
		t.Errorf("TypeOfSession = %v, want canonical [WORKSHOP LECTURE]", sess.TypeOfSession)
	}
	if sess.OrganizerUserID != organizerID {
		t.Errorf("OrganizerUserID = %q, want acting user", sess.OrganizerUserID)
	}
	if sess.ConferenceKey != "c1" {
		t.Errorf("ConferenceKey = %q, want c1", sess.ConferenceKey)
	}

	// The session must be durably readable under its allocated key.
	stored, err := engine.GetSession(context.Background(), sess.Key)
	if err != nil {
		t.Fatalf("GetSession(%q): %v", sess.Key, err)
	}
	if stored.Name != "Intro to Go" || stored.StartTime != 545 {
		t.Errorf("stored session = %+v", stored)
	}
}

func TestCreateSessionOptionalFieldsAbsent(t *testing.T) {
	svc, _ := newService(t)

	sess := create(t, svc, "c1", session.Draft{Name: "Hallway track"})
	if sess.HasStartTime() {
		t.Errorf("StartTime = %d, want unset", sess.StartTime)
	}
	if sess.HasDate() {
		t.Errorf("Date = %v, want unset", sess.Date)
	}
	if len(sess.TypeOfSession) != 0 {
		t.Errorf("TypeOfSession = %v, want empty", sess.TypeOfSession)
	}
}

func TestCreateSessionConferenceNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateSession(asUser(organizerID), "no-such-conf", session.Draft{Name: "X"})
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateSessionUnauthorized(t *testing.T) {
	svc, _ := newService(t)

	// No claims at all.
	_, err := svc.CreateSession(context.Background(), "c1", session.Draft{Name: "X"})
	if !errors.Is(err, session.ErrUnauthorized) {
		t.Errorf("no claims: err = %v, want ErrUnauthorized", err)
	}

	// Wrong user, regardless of what else the draft carries.
	drafts := []session.Draft{
		{Name: "X"},
		{Name: "X", StartTime: "9 00 AM", Date: "2026-06-15"},
		{Name: "X", TypeOfSession: []string{"KEYNOTE"}, Speaker: "Alice"},
	}
	for _, d := range drafts {
		_, err := svc.CreateSession(asUser("intruder"), "c1", d)
		if !errors.Is(err, session.ErrUnauthorized) {
			t.Errorf("wrong owner (%+v): err = %v, want ErrUnauthorized", d, err)
		}
	}
}

func TestCreateSessionInvalidValues(t *testing.T) {
	svc, _ := newService(t)
	ctx := asUser(organizerID)

	_, err := svc.CreateSession(ctx, "c1", session.Draft{Name: "X", StartTime: "13 00 PM"})
	if !errors.Is(err, timecode.ErrInvalidTimeFormat) {
		t.Errorf("bad start time: err = %v, want ErrInvalidTimeFormat", err)
	}

	_, err = svc.CreateSession(ctx, "c1", session.Draft{Name: "X", Date: "June 2026"})
	if !errors.Is(err, filter.ErrInvalidFilter) {
		t.Errorf("bad date: err = %v, want ErrInvalidFilter", err)
	}

	_, err = svc.CreateSession(ctx, "c1", session.Draft{Name: "X", TypeOfSession: []string{"RAVE"}})
	if !errors.Is(err, filter.ErrInvalidFilter) {
		t.Errorf("unknown type tag: err = %v, want ErrInvalidFilter", err)
	}

	_, err = svc.CreateSession(ctx, "c1", session.Draft{})
	if !errors.Is(err, filter.ErrInvalidFilter) {
		t.Errorf("missing name: err = %v, want ErrInvalidFilter", err)
	}

	// None of the failed creates may have persisted anything.
	all, err := svc.QuerySessions(ctx, nil)
	if err != nil {
		t.Fatalf("QuerySessions: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("store holds %d sessions after failed creates, want 0", len(all))
	}
}

func TestQuerySessionsNoFilters(t *testing.T) {
	svc, _ := newService(t)
	create(t, svc, "c1", session.Draft{Name: "Zebra patterns"})
	create(t, svc, "c1", session.Draft{Name: "API design"})
	create(t, svc, "c1", session.Draft{Name: "Midway retro"})

	got, err := svc.QuerySessions(context.Background(), nil)
	if err != nil {
		t.Fatalf("QuerySessions: %v", err)
	}
	want := []string{"API design", "Midway retro", "Zebra patterns"}
	if len(got) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("got[%d].Name = %q, want %q (name-ascending default order)", i, got[i].Name, w)
		}
	}
}

func TestQuerySessionsEqualityOnly(t *testing.T) {
	svc, _ := newService(t)
	create(t, svc, "c1", session.Draft{Name: "A", Speaker: "Alice"})
	create(t, svc, "c1", session.Draft{Name: "B", Speaker: "Bob"})

	got, err := svc.QuerySessions(context.Background(), []filter.Input{
		{Field: "SPEAKER", Operator: "EQ", Value: "Alice"},
	})
	if err != nil {
		t.Fatalf("QuerySessions: %v", err)
	}
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("got %+v, want just A", got)
	}
}

// TestQuerySessionsMultiInequalitySplit exercises the full split path: the
// first inequality clause in submission order is pushed to storage (and
// drives the sort), the second is applied in memory with not-a-member
// semantics for the list-valued field.
func TestQuerySessionsMultiInequalitySplit(t *testing.T) {
	svc, _ := newService(t)

	create(t, svc, "c1", session.Draft{
		Name: "Late workshop", Speaker: "Alice",
		StartTime: "2 00 PM", TypeOfSession: []string{"LECTURE", "WORKSHOP"},
	})
	create(t, svc, "c1", session.Draft{
		Name: "Late lecture", Speaker: "Alice",
		StartTime: "3 00 PM", TypeOfSession: []string{"LECTURE"},
	})
	create(t, svc, "c1", session.Draft{
		Name: "Noonish lecture", Speaker: "Alice",
		StartTime: "11 30 AM", TypeOfSession: []string{"LECTURE"},
	})
	create(t, svc, "c1", session.Draft{
		Name: "Early lecture", Speaker: "Alice",
		StartTime: "9 00 AM", TypeOfSession: []string{"LECTURE"},
	})
	create(t, svc, "c1", session.Draft{
		Name: "Late keynote", Speaker: "Bob",
		StartTime: "4 00 PM", TypeOfSession: []string{"KEYNOTE"},
	})

	got, err := svc.QuerySessions(context.Background(), []filter.Input{
		{Field: "START_TIME", Operator: "GT", Value: "10 00 AM"},
		{Field: "TYPE_OF_SESSION", Operator: "NE", Value: "WORKSHOP"},
		{Field: "SPEAKER", Operator: "EQ", Value: "Alice"},
	})
	if err != nil {
		t.Fatalf("QuerySessions: %v", err)
	}

	// Alice only, after 10 AM, workshops excluded, ordered by start time.
	want := []string{"Noonish lecture", "Late lecture"}
	if len(got) != len(want) {
		t.Fatalf("got %d sessions %v, want %v", len(got), names(got), want)
	}
	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("got[%d].Name = %q, want %q", i, got[i].Name, w)
		}
	}
}

// TestQuerySessionsSingleListInequality: a filter set whose only clause is
// an inequality on a list-valued field is served entirely in memory; the
// storage query stays orderable and the query succeeds.
func TestQuerySessionsSingleListInequality(t *testing.T) {
	svc, _ := newService(t)
	create(t, svc, "c1", session.Draft{Name: "Shop", TypeOfSession: []string{"WORKSHOP"}})
	create(t, svc, "c1", session.Draft{Name: "Talk", TypeOfSession: []string{"LECTURE"}})

	got, err := svc.QuerySessions(context.Background(), []filter.Input{
		{Field: "TYPE_OF_SESSION", Operator: "NE", Value: "WORKSHOP"},
	})
	if err != nil {
		t.Fatalf("QuerySessions: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Talk" {
		t.Errorf("got %v, want just Talk", names(got))
	}
}

func TestQuerySessionsInvalidFilter(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.QuerySessions(context.Background(), []filter.Input{
		{Field: "CITY", Operator: "EQ", Value: "Paris"},
	})
	if !errors.Is(err, filter.ErrInvalidFilter) {
		t.Errorf("err = %v, want ErrInvalidFilter", err)
	}

	_, err = svc.QuerySessions(context.Background(), []filter.Input{
		{Field: "START_TIME", Operator: "LT", Value: "not a clock"},
	})
	if !errors.Is(err, timecode.ErrInvalidTimeFormat) {
		t.Errorf("err = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestConferenceScopedLookups(t *testing.T) {
	svc, engine := newService(t)
	conf2 := entity.Conference{Key: "c2", Name: "Other", OrganizerUserID: organizerID}
	if err := engine.PutConference(context.Background(), conf2); err != nil {
		t.Fatalf("put conference: %v", err)
	}

	create(t, svc, "c1", session.Draft{Name: "B talk", Speaker: "Alice", TypeOfSession: []string{"LECTURE"}})
	create(t, svc, "c1", session.Draft{Name: "A shop", Speaker: "Bob", TypeOfSession: []string{"WORKSHOP"}})
	create(t, svc, "c2", session.Draft{Name: "Elsewhere", Speaker: "Alice", TypeOfSession: []string{"LECTURE"}})

	ctx := context.Background()

	all, err := svc.ConferenceSessions(ctx, "c1")
	if err != nil {
		t.Fatalf("ConferenceSessions: %v", err)
	}
	if len(all) != 2 || all[0].Name != "A shop" || all[1].Name != "B talk" {
		t.Errorf("ConferenceSessions = %v", names(all))
	}

	lectures, err := svc.ConferenceSessionsByType(ctx, "c1", entity.TypeLecture)
	if err != nil {
		t.Fatalf("ConferenceSessionsByType: %v", err)
	}
	if len(lectures) != 1 || lectures[0].Name != "B talk" {
		t.Errorf("ConferenceSessionsByType = %v", names(lectures))
	}

	alices, err := svc.SessionsBySpeaker(ctx, "Alice")
	if err != nil {
		t.Fatalf("SessionsBySpeaker: %v", err)
	}
	if len(alices) != 2 || alices[0].Name != "B talk" || alices[1].Name != "Elsewhere" {
		t.Errorf("SessionsBySpeaker = %v", names(alices))
	}
}

func names(sessions []entity.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Name)
	}
	return out
}
