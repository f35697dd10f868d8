package application

import (
	"context"

	"lorcana/internal/models"
	"lorcana/internal/repository"
	"lorcana/internal/stats"

	"golang.org/x/sync/errgroup"
)

type RoundView struct {
	models.Round
	Tally stats.Tally `json:"tally"`
}

type EventSummary struct {
	Event models.Event      `json:"event"`
	Stats models.EventStats `json:"stats"`
	Drift *DriftError       `json:"drift,omitempty"`
}

type EventDetail struct {
	EventSummary
	Rounds []RoundView `json:"rounds"`
}

type DeckView struct {
	Deck   models.Deck      `json:"deck"`
	Stats  models.DeckStats `json:"stats"`
	Events int              `json:"events"`
}

// views builds every read model from the same fold over rounds. Stored
// event counters are only compared against the result, never used for it.
type views struct {
	decks  repository.Deck
	events repository.Event
	rounds repository.Round
	rules  stats.Rules
	logger Logger
}

func newViews(decks repository.Deck, events repository.Event, rounds repository.Round, rules stats.Rules, logger Logger) *views {
	return &views{
		decks:  decks,
		events: events,
		rounds: rounds,
		rules:  rules,
		logger: logger,
	}
}

func (v *views) summarize(e models.Event, rounds []models.Round) (EventSummary, error) {
	st, err := v.rules.ComputeStats(rounds)
	if err != nil {
		return EventSummary{}, err
	}

	sum := EventSummary{Event: e, Stats: st}
	if d := stats.Drift(e.Counters(), st); !d.IsZero() {
		sum.Drift = &DriftError{
			EventID:  e.ID,
			Stored:   e.Counters(),
			Computed: st.MatchCounters(),
		}
		v.logger.Warn("counter drift: %v", sum.Drift)
	}
	return sum, nil
}

func (v *views) eventDetail(ctx context.Context, ownerID, eventID string) (*EventDetail, error) {
	e, err := v.events.FetchEventMeta(ctx, ownerID, eventID)
	if err != nil {
		return nil, storageErr("fetch event", err)
	}

	rounds, err := v.rounds.FetchRounds(ctx, repository.RoundScope{OwnerID: ownerID, EventIDs: []string{eventID}})
	if err != nil {
		return nil, storageErr("fetch rounds", err)
	}

	sum, err := v.summarize(e, rounds)
	if err != nil {
		return nil, err
	}

	tallies, err := stats.Tallies(rounds)
	if err != nil {
		return nil, err
	}
	out := make([]RoundView, len(rounds))
	for i, rd := range rounds {
		out[i] = RoundView{Round: rd, Tally: tallies[i]}
	}

	return &EventDetail{EventSummary: sum, Rounds: out}, nil
}

// eventList loads the rounds of all listed events in one query and groups
// them per event.
func (v *views) eventList(ctx context.Context, filter repository.EventFilter) ([]EventSummary, error) {
	events, err := v.events.ListEvents(ctx, filter)
	if err != nil {
		return nil, storageErr("list events", err)
	}
	if len(events) == 0 {
		return []EventSummary{}, nil
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	rounds, err := v.rounds.FetchRounds(ctx, repository.RoundScope{OwnerID: filter.OwnerID, EventIDs: ids})
	if err != nil {
		return nil, storageErr("fetch rounds", err)
	}

	byEvent := make(map[string][]models.Round, len(events))
	for _, rd := range rounds {
		byEvent[rd.EventID] = append(byEvent[rd.EventID], rd)
	}

	out := make([]EventSummary, 0, len(events))
	for _, e := range events {
		sum, err := v.summarize(e, byEvent[e.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

func (v *views) deckView(ctx context.Context, d models.Deck) (DeckView, error) {
	events, err := v.events.ListEvents(ctx, repository.EventFilter{
		OwnerID:  d.OwnerID,
		DeckID:   d.ID,
		DeckName: d.Name,
	})
	if err != nil {
		return DeckView{}, storageErr("list deck events", err)
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	rounds, err := v.rounds.FetchRounds(ctx, repository.RoundScope{OwnerID: d.OwnerID, EventIDs: ids})
	if err != nil {
		return DeckView{}, storageErr("fetch deck rounds", err)
	}

	st, err := v.rules.ComputeStatsConcurrent(ctx, rounds, foldChunkSize)
	if err != nil {
		return DeckView{}, err
	}
	return DeckView{Deck: d, Stats: st, Events: len(events)}, nil
}

func (v *views) deckList(ctx context.Context, ownerID string) ([]DeckView, error) {
	decks, err := v.decks.ListDecks(ctx, ownerID)
	if err != nil {
		return nil, storageErr("list decks", err)
	}

	out := make([]DeckView, len(decks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deckStatsConcurrency)
	for i, d := range decks {
		g.Go(func() error {
			dv, err := v.deckView(gctx, d)
			if err != nil {
				return err
			}
			out[i] = dv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
