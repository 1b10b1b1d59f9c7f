package utils

import (
	"encoding/json"
	"fanduel-client/internal/components/chrono"
	"fanduel-client/internal/fanduel"
	"fmt"
	"os"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// MinSlateSimilarity is the lowest Jaro-Winkler similarity at which a query is accepted
// as the name of a slate.
const MinSlateSimilarity = 0.8

// ResolveSlate finds the slate a user meant, `query` is either the id of a slate or
// (something close to) its name.
func ResolveSlate(slates []fanduel.Slate, query string) (fanduel.Slate, error) {
	for _, s := range slates {
		if s.Id == query {
			return s, nil
		}
	}

	var best fanduel.Slate
	var similarity float64
	for _, s := range slates {
		if s.Name == "" {
			continue
		}
		label := fmt.Sprintf("%s %s", s.Sport, s.Name)
		sim := max(
			matchr.JaroWinkler(strings.ToLower(query), strings.ToLower(s.Name), false),
			matchr.JaroWinkler(strings.ToLower(query), strings.ToLower(label), false),
		)
		if sim > similarity {
			similarity = sim
			best = s
		}
	}
	if similarity < MinSlateSimilarity {
		return fanduel.Slate{}, fmt.Errorf("no slate matches %q", query)
	}
	return best, nil
}

// FormatStart renders the start of a slate or game in eastern time.
func FormatStart(startDate string) string {
	if startDate == "" {
		return "-"
	}
	start, err := fanduel.Slate{StartDate: startDate}.StartTime()
	if err != nil {
		return startDate
	}
	return start.In(chrono.Eastern()).Format("Mon Jan 2 3:04 PM MST")
}

// ReadLineup reads a lineup from a json file of the form
// `{"roster": [{"position": "QB", "player": {"id": "..."}}]}`.
func ReadLineup(path string) (fanduel.Lineup, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fanduel.Lineup{}, err
	}
	var lineup fanduel.Lineup
	err = json.Unmarshal(contents, &lineup)
	if err != nil {
		return fanduel.Lineup{}, fmt.Errorf("parse lineup %s: %w", path, err)
	}
	if len(lineup.Roster) == 0 {
		return fanduel.Lineup{}, fmt.Errorf("lineup %s has an empty roster", path)
	}
	for i, slot := range lineup.Roster {
		if slot.Position == "" || slot.Player.Id == "" {
			return fanduel.Lineup{}, fmt.Errorf("lineup %s: roster[%d] needs a position and a player id", path, i)
		}
	}
	return lineup, nil
}
