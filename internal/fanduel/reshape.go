package fanduel

import (
	"encoding/json"
	"fmt"
)

// the wire* types mirror FanDuel's response shapes, they are only ever converted into the
// exported types by the functions in this file.

type wireContests struct {
	Open   []Contest       `json:"open"`
	Closed json.RawMessage `json:"closed"`
}

type wireSlate struct {
	Slate
	// shadows Slate.Contests while decoding
	Contests *wireContests `json:"contests"`
}

func (w wireSlate) slate() Slate {
	s := w.Slate
	s.Contests = []Contest{}
	if w.Contests != nil && w.Contests.Open != nil {
		s.Contests = w.Contests.Open
	}
	return s
}

type wireFixtureLists struct {
	FixtureLists *[]wireSlate `json:"fixture_lists"`
}

func slatesFromWire(res wireFixtureLists) ([]Slate, error) {
	if res.FixtureLists == nil {
		return nil, &ShapeError{Path: "fixture_lists"}
	}
	slates := make([]Slate, 0, len(*res.FixtureLists))
	for i, w := range *res.FixtureLists {
		if w.Contests == nil {
			return nil, &ShapeError{Path: fmt.Sprintf("fixture_lists[%d].contests", i)}
		}
		slates = append(slates, w.slate())
	}
	return slates, nil
}

type wireTeamRef struct {
	Members []string `json:"_members"`
}

type wireTeamSlot struct {
	Team          *wireTeamRef    `json:"team"`
	Score         json.RawMessage `json:"score"`
	SportSpecific json.RawMessage `json:"sport_specific"`
}

// flattenTeamSlot turns `{team:{_members:[...]}, score, sport_specific}` into a TeamSlot,
// an already flattened slot has no `_members` and is rejected instead of re-flattened.
func flattenTeamSlot(w *wireTeamSlot, path string) (TeamSlot, error) {
	if w == nil {
		return TeamSlot{}, &ShapeError{Path: path}
	}
	if w.Team == nil || len(w.Team.Members) == 0 {
		return TeamSlot{}, &ShapeError{Path: path + ".team._members[0]"}
	}
	return TeamSlot{
		Team:          w.Team.Members[0],
		Score:         w.Score,
		SportSpecific: w.SportSpecific,
	}, nil
}

type wireGame struct {
	Id        string        `json:"id"`
	StartDate string        `json:"start_date"`
	Status    string        `json:"status"`
	AwayTeam  *wireTeamSlot `json:"away_team"`
	HomeTeam  *wireTeamSlot `json:"home_team"`
}

func gameFromWire(raw json.RawMessage, path string) (Game, error) {
	var w wireGame
	err := json.Unmarshal(raw, &w)
	if err != nil {
		return Game{}, &ParseError{Body: raw, Cause: err}
	}

	away, err := flattenTeamSlot(w.AwayTeam, path+".away_team")
	if err != nil {
		return Game{}, err
	}
	home, err := flattenTeamSlot(w.HomeTeam, path+".home_team")
	if err != nil {
		return Game{}, err
	}

	return Game{
		Id:        w.Id,
		StartDate: w.StartDate,
		Status:    w.Status,
		AwayTeam:  away,
		HomeTeam:  home,
		Raw:       raw,
	}, nil
}

type wireSlateDetails struct {
	FixtureLists []wireSlate        `json:"fixture_lists"`
	Fixtures     *[]json.RawMessage `json:"fixtures"`
}

func slateDetailsFromWire(res wireSlateDetails) (SlateDetails, error) {
	if len(res.FixtureLists) == 0 {
		return SlateDetails{}, &ShapeError{Path: "fixture_lists[0]"}
	}
	if res.Fixtures == nil {
		return SlateDetails{}, &ShapeError{Path: "fixtures"}
	}

	games := make([]Game, 0, len(*res.Fixtures))
	for i, raw := range *res.Fixtures {
		game, err := gameFromWire(raw, fmt.Sprintf("fixtures[%d]", i))
		if err != nil {
			return SlateDetails{}, err
		}
		games = append(games, game)
	}

	return SlateDetails{
		Slate: res.FixtureLists[0].slate(),
		Games: games,
	}, nil
}

type wireContestResult struct {
	Contests []Contest                  `json:"contests"`
	Meta     map[string]json.RawMessage `json:"_meta"`
}

func contestResultFromWire(res wireContestResult) (ContestResult, error) {
	if res.Meta == nil {
		return ContestResult{}, &ShapeError{Path: "_meta"}
	}
	contests := res.Contests
	if contests == nil {
		contests = []Contest{}
	}
	return ContestResult{
		Contests:  contests,
		EntryFees: res.Meta["entry_fees"],
		Meta:      res.Meta,
	}, nil
}

type wireSlatePool struct {
	Fixtures *[]SlateGame `json:"fixtures"`
	Players  *[]Player    `json:"players"`
}

func upcomingRosterFromWire(fields map[string]json.RawMessage) (UpcomingRoster, error) {
	out := UpcomingRoster{
		Rosters: []Roster{},
		Fields:  fields,
	}
	if raw, ok := fields["rosters"]; ok {
		err := json.Unmarshal(raw, &out.Rosters)
		if err != nil {
			return UpcomingRoster{}, &ParseError{Body: raw, Cause: err}
		}
	}
	if raw, ok := fields["_meta"]; ok {
		err := json.Unmarshal(raw, &out.Meta)
		if err != nil {
			return UpcomingRoster{}, &ParseError{Body: raw, Cause: err}
		}
	}
	return out, nil
}

type wireEntries struct {
	Entries *[]ContestEntry `json:"entries"`
}
