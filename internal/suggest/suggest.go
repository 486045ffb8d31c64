// Package suggest ranks team and country names against partial user input.
package suggest

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

//go:embed data/*.json
var referenceData embed.FS

// DefaultLimit caps the number of suggestions when the caller passes <= 0.
const DefaultLimit = 8

const (
	scoreExact     = 1.0
	scorePrefix    = 0.9
	scoreWord      = 0.85
	scoreSubstring = 0.8
	scoreFuzzyBase = 0.72
	scoreFuzzyStep = 0.08
)

// Suggestion is one ranked match.
type Suggestion struct {
	Value  string  `json:"value"`
	Detail string  `json:"detail,omitempty"`
	Score  float64 `json:"score"`
}

// Entry is a candidate value plus the alternative spellings it answers to.
type Entry struct {
	Value   string
	Detail  string
	Aliases []string
}

// Index holds a fixed candidate list.
type Index struct {
	entries []Entry
}

// NewIndex copies entries into a new index.
func NewIndex(entries []Entry) *Index {
	return &Index{entries: append([]Entry(nil), entries...)}
}

// Len reports the number of candidates.
func (i *Index) Len() int { return len(i.entries) }

// Suggest returns up to limit candidates ordered by score, then value.
// A blank query yields no suggestions.
func (i *Index) Suggest(query string, limit int) []Suggestion {
	token := normalise(query)
	if token == "" {
		return []Suggestion{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]Suggestion, 0, limit)
	for _, e := range i.entries {
		best, ok := score(token, normalise(e.Value))
		for _, alias := range e.Aliases {
			if s, hit := score(token, normalise(alias)); hit && (!ok || s > best) {
				best, ok = s, true
			}
		}
		if !ok {
			continue
		}
		out = append(out, Suggestion{Value: e.Value, Detail: e.Detail, Score: best})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score == out[b].Score {
			return out[a].Value < out[b].Value
		}
		return out[a].Score > out[b].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func score(token, cand string) (float64, bool) {
	switch {
	case cand == "":
		return 0, false
	case token == cand:
		return scoreExact, true
	case strings.HasPrefix(cand, token):
		return scorePrefix, true
	case wordPrefix(cand, token):
		return scoreWord, true
	case len(token) >= 3 && strings.Contains(cand, token):
		return scoreSubstring, true
	}
	if len(token) < 3 {
		return 0, false
	}
	dist := levenshtein.ComputeDistance(token, cand)
	if dist > distanceLimit(len(cand)) {
		return 0, false
	}
	return scoreFuzzyBase - scoreFuzzyStep*float64(dist), true
}

func wordPrefix(cand, token string) bool {
	for _, word := range strings.Fields(cand) {
		if strings.HasPrefix(word, token) {
			return true
		}
	}
	return false
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

type teamRecord struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type countryRecord struct {
	Name     string `json:"name"`
	FifaCode string `json:"fifaCode"`
}

// Teams builds the club index from the embedded reference list. The detail
// of each suggestion is the club's country.
func Teams() (*Index, error) {
	var records []teamRecord
	if err := load("data/teams.json", &records); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{Value: r.Name, Detail: r.Country})
	}
	return NewIndex(entries), nil
}

// Countries builds the country index. FIFA codes match as aliases and are
// returned as the detail.
func Countries() (*Index, error) {
	var records []countryRecord
	if err := load("data/countries.json", &records); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{Value: r.Name, Detail: r.FifaCode, Aliases: []string{r.FifaCode}})
	}
	return NewIndex(entries), nil
}

func load(name string, dst any) error {
	data, err := referenceData.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Kind names a suggestion source.
type Kind string

const (
	KindTeams     Kind = "teams"
	KindCountries Kind = "countries"
)

// Catalog holds every suggestion source by kind.
type Catalog struct {
	indexes map[Kind]*Index
	limit   int
}

// NewCatalog loads the embedded team and country indexes.
func NewCatalog(limit int) (*Catalog, error) {
	teams, err := Teams()
	if err != nil {
		return nil, err
	}
	countries, err := Countries()
	if err != nil {
		return nil, err
	}
	return &Catalog{
		indexes: map[Kind]*Index{KindTeams: teams, KindCountries: countries},
		limit:   limit,
	}, nil
}

// Suggest ranks query against the index for kind. ok is false for an unknown kind.
func (c *Catalog) Suggest(kind Kind, query string) ([]Suggestion, bool) {
	idx, ok := c.indexes[kind]
	if !ok {
		return nil, false
	}
	return idx.Suggest(query, c.limit), true
}
