package fanduel

import (
	"encoding/json"
	"time"
)

// Identity is the account information scraped from the landing page after a login.
type Identity struct {
	UserId      string `json:"id"`
	Username    string `json:"username"`
	ApiClientId string `json:"api_client_id"`
}

type Sport string

const (
	SportNfl Sport = "NFL"
	SportNba Sport = "NBA"
	SportMlb Sport = "MLB"
	SportNhl Sport = "NHL"
)

// Contest is a single entry pool of a slate. Raw holds the contest object exactly as it
// was received so that fields without a typed counterpart are not lost.
type Contest struct {
	Id       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	EntryFee json.RawMessage `json:"entry_fee,omitempty"`
	Size     json.RawMessage `json:"size,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (c *Contest) UnmarshalJSON(data []byte) error {
	type plain Contest
	if err := json.Unmarshal(data, (*plain)(c)); err != nil {
		return err
	}
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Slate is a named grouping of fixtures available for contest entry.
type Slate struct {
	Id        string    `json:"id"`
	Name      string    `json:"label,omitempty"`
	Sport     Sport     `json:"sport,omitempty"`
	StartDate string    `json:"start_date,omitempty"`
	SalaryCap int       `json:"salary_cap,omitempty"`
	Contests  []Contest `json:"contests"`
}

// StartTime parses StartDate, FanDuel sends RFC 3339 timestamps.
func (s Slate) StartTime() (time.Time, error) {
	return time.Parse(time.RFC3339, s.StartDate)
}

// TeamSlot is one side of a game after flattening the API's nested team structure.
type TeamSlot struct {
	Team          string          `json:"team"`
	Score         json.RawMessage `json:"score"`
	SportSpecific json.RawMessage `json:"sport_specific"`
}

// Game is a fixture of a slate as returned by SlateDetails.
type Game struct {
	Id        string   `json:"id"`
	StartDate string   `json:"start_date,omitempty"`
	Status    string   `json:"status,omitempty"`
	AwayTeam  TeamSlot `json:"away_team"`
	HomeTeam  TeamSlot `json:"home_team"`

	Raw json.RawMessage `json:"-"`
}

// SlateDetails is a slate merged with its games.
type SlateDetails struct {
	Slate
	Games []Game `json:"games"`
}

// SlateGame is a fixture of the slate's player pool, passed through without reshaping.
type SlateGame struct {
	Id        string `json:"id"`
	StartDate string `json:"start_date,omitempty"`
	Status    string `json:"status,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (g *SlateGame) UnmarshalJSON(data []byte) error {
	type plain SlateGame
	if err := json.Unmarshal(data, (*plain)(g)); err != nil {
		return err
	}
	g.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Player is an entry of a slate's roster-eligible pool.
type Player struct {
	Id           string  `json:"id"`
	FirstName    string  `json:"first_name,omitempty"`
	LastName     string  `json:"last_name,omitempty"`
	Position     string  `json:"position,omitempty"`
	Salary       int     `json:"salary,omitempty"`
	Fppg         float64 `json:"fppg,omitempty"`
	Injured      bool    `json:"injured,omitempty"`
	InjuryStatus string  `json:"injury_status,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (p *Player) UnmarshalJSON(data []byte) error {
	type plain Player
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// RosterSlot maps a player to one of the required positions of a lineup.
type RosterSlot struct {
	Position string `json:"position"`
	Player   Player `json:"player"`
}

// Lineup is produced by a lineup generator and submitted as a contest entry.
type Lineup struct {
	Roster []RosterSlot `json:"roster"`
}

// ContestEntry is the server-assigned record of a submitted roster.
type ContestEntry struct {
	Id string `json:"id"`

	Raw json.RawMessage `json:"-"`
}

func (e *ContestEntry) UnmarshalJSON(data []byte) error {
	type plain ContestEntry
	if err := json.Unmarshal(data, (*plain)(e)); err != nil {
		return err
	}
	e.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// ContestResult is the contest listing of a slate with the entry fees from the
// response's `_meta` envelope merged in. EntryFees is nil when `_meta` carries no
// `entry_fees`.
type ContestResult struct {
	Contests  []Contest                  `json:"contests"`
	EntryFees json.RawMessage            `json:"entry_fees"`
	Meta      map[string]json.RawMessage `json:"_meta"`
}

// Roster is a submitted roster of the account.
type Roster struct {
	Id string `json:"id"`

	Raw json.RawMessage `json:"-"`
}

func (r *Roster) UnmarshalJSON(data []byte) error {
	type plain Roster
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// UpcomingRoster holds every field of the upcoming rosters response, Fields keeps the
// top level of the response as-is.
type UpcomingRoster struct {
	Rosters []Roster                   `json:"rosters"`
	Meta    map[string]json.RawMessage `json:"_meta"`
	Fields  map[string]json.RawMessage `json:"-"`
}

// DefaultCurrency is the entry fee currency of the account.
const DefaultCurrency = "usd"

// EntryRequest is the body of a contest entry submission or update.
type EntryRequest struct {
	Entries []EntryRequestEntry `json:"entries"`
}

type EntryRequestEntry struct {
	EntryFee EntryFee    `json:"entry_fee"`
	Roster   EntryRoster `json:"roster"`
}

type EntryFee struct {
	Currency string `json:"currency"`
}

type EntryRoster struct {
	Lineup []EntryLineupSlot `json:"lineup"`
}

type EntryLineupSlot struct {
	Position string      `json:"position"`
	Player   EntryPlayer `json:"player"`
}

type EntryPlayer struct {
	Id string `json:"id"`
}
