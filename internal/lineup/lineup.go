package lineup

import (
	"context"
	"errors"
	"fanduel-client/internal/components/assert"
	"fanduel-client/internal/components/telemetry"
	"fanduel-client/internal/fanduel"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("fanduel-client/internal/lineup")

const (
	report_orchestrator_create = "orchestrator.create-valid-lineup"
	report_orchestrator_submit = "orchestrator.submit-lineup"
	report_orchestrator_update = "orchestrator.update-lineup"
)

// ErrNoGenerator is returned by CreateValidLineup when the orchestrator was created
// without a Generator.
var ErrNoGenerator = errors.New("lineup: no generator configured")

// Generator selects a valid set of players for a slate under its salary and position
// constraints.
type Generator interface {
	CreateValidLineup(ctx context.Context, details fanduel.SlateDetails, players []fanduel.Player) (fanduel.Lineup, error)
}

type GeneratorFunc func(ctx context.Context, details fanduel.SlateDetails, players []fanduel.Player) (fanduel.Lineup, error)

func (f GeneratorFunc) CreateValidLineup(ctx context.Context, details fanduel.SlateDetails, players []fanduel.Player) (fanduel.Lineup, error) {
	return f(ctx, details, players)
}

// API is the subset of *fanduel.Client the orchestrator depends on.
type API interface {
	SlateDetails(ctx context.Context, slate fanduel.Slate) (fanduel.SlateDetails, error)
	SlatePlayers(ctx context.Context, slate fanduel.Slate) ([]fanduel.Player, error)
	SubmitEntry(ctx context.Context, contestId string, entry fanduel.EntryRequest) ([]fanduel.ContestEntry, error)
	UpdateEntry(ctx context.Context, entryId string, entry fanduel.EntryRequest) ([]fanduel.ContestEntry, error)
}

type Orchestrator struct {
	client    API
	generator Generator
	tel       telemetry.API
}

// NewOrchestrator creates an Orchestrator, `generator` may be nil if only submissions
// are needed.
func NewOrchestrator(client API, generator Generator, tel telemetry.API) Orchestrator {
	assert.NotNil(client)
	assert.NotNil(tel)
	return Orchestrator{
		client:    client,
		generator: generator,
		tel:       telemetry.NewScopedAPI("lineup", tel),
	}
}

// CreateValidLineup fetches the slate's details and players concurrently and hands
// both to the generator. Errors from either are returned unchanged.
func (o Orchestrator) CreateValidLineup(ctx context.Context, slate fanduel.Slate) (fanduel.Lineup, error) {
	ctx, span := tracer.Start(ctx, "orchestrator:createValidLineup")
	defer span.End()

	if o.generator == nil {
		return fanduel.Lineup{}, ErrNoGenerator
	}

	var details fanduel.SlateDetails
	var players []fanduel.Player

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		details, err = o.client.SlateDetails(groupCtx, slate)
		return err
	})
	group.Go(func() error {
		var err error
		players, err = o.client.SlatePlayers(groupCtx, slate)
		return err
	})
	err := group.Wait()
	if err != nil {
		o.tel.ReportBroken(report_orchestrator_create, err, slate.Id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch slate")
		return fanduel.Lineup{}, err
	}

	lineup, err := o.generator.CreateValidLineup(ctx, details, players)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lineup generator failed")
		return fanduel.Lineup{}, err
	}
	o.tel.ReportDebug(report_orchestrator_create, slate.Id, len(lineup.Roster))
	return lineup, nil
}

// EntryRequestFromLineup projects a lineup into the body of a contest entry.
func EntryRequestFromLineup(lineup fanduel.Lineup, currency string) fanduel.EntryRequest {
	slots := make([]fanduel.EntryLineupSlot, 0, len(lineup.Roster))
	for _, slot := range lineup.Roster {
		slots = append(slots, fanduel.EntryLineupSlot{
			Position: slot.Position,
			Player:   fanduel.EntryPlayer{Id: slot.Player.Id},
		})
	}
	return fanduel.EntryRequest{
		Entries: []fanduel.EntryRequestEntry{{
			EntryFee: fanduel.EntryFee{Currency: currency},
			Roster:   fanduel.EntryRoster{Lineup: slots},
		}},
	}
}

// SubmitLineup enters the lineup into a contest of the slate.
func (o Orchestrator) SubmitLineup(ctx context.Context, slate fanduel.Slate, contest fanduel.Contest, lineup fanduel.Lineup) ([]fanduel.ContestEntry, error) {
	entries, err := o.client.SubmitEntry(ctx, contest.Id, EntryRequestFromLineup(lineup, fanduel.DefaultCurrency))
	if err != nil {
		o.tel.ReportWarning(report_orchestrator_submit, err, slate.Id, contest.Id)
		return nil, err
	}
	return entries, nil
}

// UpdateLineup replaces the roster of an entry that was previously submitted.
func (o Orchestrator) UpdateLineup(ctx context.Context, slate fanduel.Slate, entryId string, lineup fanduel.Lineup) ([]fanduel.ContestEntry, error) {
	entries, err := o.client.UpdateEntry(ctx, entryId, EntryRequestFromLineup(lineup, fanduel.DefaultCurrency))
	if err != nil {
		o.tel.ReportWarning(report_orchestrator_update, err, slate.Id, entryId)
		return nil, err
	}
	return entries, nil
}
