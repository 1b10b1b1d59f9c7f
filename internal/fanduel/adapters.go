package fanduel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	report_client_list_slates        = "client.list-slates"
	report_client_slate_details      = "client.slate-details"
	report_client_available_contests = "client.available-contests"
	report_client_slate_pool         = "client.slate-pool"
	report_client_upcoming_rosters   = "client.upcoming-rosters"
	report_client_entry              = "client.entry"
)

// ListSlates returns every slate, each with only its open contests.
func (c *Client) ListSlates(ctx context.Context) ([]Slate, error) {
	var res wireFixtureLists
	err := c.executeJson(ctx, c.apiBase+"/fixture-lists", RequestOptions{}, &res)
	if err != nil {
		return nil, err
	}
	slates, err := slatesFromWire(res)
	if err != nil {
		c.tel.ReportBroken(report_client_list_slates, err)
		return nil, err
	}
	return slates, nil
}

// SlateDetails returns the slate merged with its games.
func (c *Client) SlateDetails(ctx context.Context, slate Slate) (SlateDetails, error) {
	var res wireSlateDetails
	err := c.executeJson(ctx, c.apiBase+"/fixture-lists/"+url.PathEscape(slate.Id), RequestOptions{}, &res)
	if err != nil {
		return SlateDetails{}, err
	}
	details, err := slateDetailsFromWire(res)
	if err != nil {
		c.tel.ReportBroken(report_client_slate_details, err, slate.Id)
		return SlateDetails{}, err
	}
	return details, nil
}

// AvailableContests returns the unrestricted contests of a slate.
func (c *Client) AvailableContests(ctx context.Context, slate Slate) (ContestResult, error) {
	query := url.Values{
		"fixture_list":       {slate.Id},
		"include_restricted": {"false"},
	}
	var res wireContestResult
	err := c.executeJson(ctx, c.apiBase+"/contests?"+query.Encode(), RequestOptions{}, &res)
	if err != nil {
		return ContestResult{}, err
	}
	result, err := contestResultFromWire(res)
	if err != nil {
		c.tel.ReportBroken(report_client_available_contests, err, slate.Id)
		return ContestResult{}, err
	}
	return result, nil
}

func (c *Client) slatePool(ctx context.Context, slate Slate) (wireSlatePool, error) {
	var res wireSlatePool
	err := c.executeJson(ctx, c.apiBase+"/fixture-lists/"+url.PathEscape(slate.Id)+"/players", RequestOptions{}, &res)
	return res, err
}

// SlateGames returns the fixtures of the slate's player pool.
func (c *Client) SlateGames(ctx context.Context, slate Slate) ([]SlateGame, error) {
	res, err := c.slatePool(ctx, slate)
	if err != nil {
		return nil, err
	}
	if res.Fixtures == nil {
		err := &ShapeError{Path: "fixtures"}
		c.tel.ReportBroken(report_client_slate_pool, err, slate.Id)
		return nil, err
	}
	return *res.Fixtures, nil
}

// SlatePlayers returns the players eligible for rosters of the slate.
func (c *Client) SlatePlayers(ctx context.Context, slate Slate) ([]Player, error) {
	res, err := c.slatePool(ctx, slate)
	if err != nil {
		return nil, err
	}
	if res.Players == nil {
		err := &ShapeError{Path: "players"}
		c.tel.ReportBroken(report_client_slate_pool, err, slate.Id)
		return nil, err
	}
	return *res.Players, nil
}

// UpcomingRosters returns the rosters of the logged in account for contests that have
// not started yet.
func (c *Client) UpcomingRosters(ctx context.Context) (UpcomingRoster, error) {
	creds, err := c.ensureSession(ctx)
	if err != nil {
		return UpcomingRoster{}, err
	}

	query := url.Values{
		"page":      {"1"},
		"page_size": {"1000"},
		"status":    {"upcoming"},
	}
	endpoint := fmt.Sprintf(
		"%s/users/%s/rosters?%s",
		c.apiBase,
		url.PathEscape(creds.identity.UserId),
		query.Encode(),
	)

	var fields map[string]json.RawMessage
	err = c.executeJson(ctx, endpoint, RequestOptions{}, &fields)
	if err != nil {
		return UpcomingRoster{}, err
	}
	roster, err := upcomingRosterFromWire(fields)
	if err != nil {
		c.tel.ReportBroken(report_client_upcoming_rosters, err)
		return UpcomingRoster{}, err
	}
	return roster, nil
}

// SubmitEntry enters a roster into a contest.
func (c *Client) SubmitEntry(ctx context.Context, contestId string, entry EntryRequest) ([]ContestEntry, error) {
	endpoint := c.apiBase + "/contests/" + url.PathEscape(contestId) + "/entries"
	return c.sendEntry(ctx, http.MethodPost, endpoint, entry)
}

// UpdateEntry replaces the roster of an existing entry.
func (c *Client) UpdateEntry(ctx context.Context, entryId string, entry EntryRequest) ([]ContestEntry, error) {
	endpoint := c.apiBase + "/entries/" + url.PathEscape(entryId)
	return c.sendEntry(ctx, http.MethodPut, endpoint, entry)
}

func (c *Client) sendEntry(ctx context.Context, method, endpoint string, entry EntryRequest) ([]ContestEntry, error) {
	body, err := json.Marshal(entry)
	if err != nil {
		c.tel.ReportBroken(report_client_entry, fmt.Errorf("json marshal: %w", err))
		return nil, err
	}

	var res wireEntries
	err = c.executeJson(ctx, endpoint, RequestOptions{
		Method: method,
		Headers: map[string]string{
			"Content-Type": "application/json;charset=utf-8",
		},
		Body: body,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Entries == nil {
		err := &ShapeError{Path: "entries"}
		c.tel.ReportBroken(report_client_entry, err, endpoint)
		return nil, err
	}
	return *res.Entries, nil
}
