// Package search ranks transactions against the free-text dashboard query.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/phonemechanic/repair-ledger/internal/repairs"
	"github.com/phonemechanic/repair-ledger/pkg/db/models"
)

// Score bands. Every band a record satisfies is added to its score.
const (
	PhoneExact    = 110
	PhoneSuffix   = 90
	PhoneContains = 35

	IMEIExact    = 120
	IMEIContains = 40

	NameExact    = 80
	NameContains = 25

	ModelExact    = 40
	ModelContains = 15

	RepairContains = 20
	NotesContains  = 10

	PriceExact    = 50
	PriceContains = 5

	DateParsed   = 50
	DateISO      = 10
	DateDDMMYYYY = 70
)

const (
	minPhoneSuffixLen = 3
	isoDateLayout     = "2006-01-02"
	ddmmyyyyLayout    = "02012006"
)

// Result pairs a record with its score.
type Result struct {
	Record models.Transaction
	Score  int
}

// Rank orders records by relevance to query. A blank query returns every
// record newest first. Otherwise records scoring zero are dropped and the rest
// are ordered by score, then transaction date, both descending. A limit of
// zero or less means no limit.
func Rank(records []models.Transaction, query string, limit int) []models.Transaction {
	results := RankScored(records, query, limit)
	out := make([]models.Transaction, len(results))
	for i, res := range results {
		out[i] = res.Record
	}
	return out
}

// RankScored is Rank with the computed scores attached.
func RankScored(records []models.Transaction, query string, limit int) []Result {
	q := newQuery(query)

	results := make([]Result, 0, len(records))
	for _, record := range records {
		if q.blank {
			results = append(results, Result{Record: record})
			continue
		}
		if score := q.score(record); score > 0 {
			results = append(results, Result{Record: record, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Record.TransactionDate.After(results[j].Record.TransactionDate)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Score computes the relevance of a single record.
func Score(record models.Transaction, query string) int {
	q := newQuery(query)
	if q.blank {
		return 0
	}
	return q.score(record)
}

type query struct {
	blank   bool
	raw     string
	lower   string
	numeric string

	parsed    time.Time
	hasParsed bool

	ddmmyyyy    time.Time
	hasDDMMYYYY bool
}

func newQuery(raw string) query {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return query{blank: true}
	}
	q := query{
		raw:     trimmed,
		lower:   strings.ToLower(trimmed),
		numeric: digitsOnly(trimmed),
	}
	q.parsed, q.hasParsed = parseCalendarDate(trimmed)
	if len(q.numeric) == len(ddmmyyyyLayout) {
		if d, err := time.ParseInLocation(ddmmyyyyLayout, q.numeric, time.UTC); err == nil {
			q.ddmmyyyy, q.hasDDMMYYYY = d, true
		}
	}
	return q
}

func (q query) score(record models.Transaction) int {
	score := 0

	if q.numeric != "" {
		phone := digitsOnly(deref(record.PhoneNumber))
		if phone != "" {
			if phone == q.numeric {
				score += PhoneExact
			}
			if len(q.numeric) >= minPhoneSuffixLen && strings.HasSuffix(phone, q.numeric) {
				score += PhoneSuffix
			}
			if strings.Contains(phone, q.numeric) {
				score += PhoneContains
			}
		}
	}

	score += q.textBands(deref(record.PhoneIMEI), IMEIExact, IMEIContains)
	score += q.textBands(record.CustomerName, NameExact, NameContains)
	score += q.textBands(record.PhoneModel, ModelExact, ModelContains)
	score += q.textBands(repairDescription(record.RepairItems), 0, RepairContains)
	score += q.textBands(deref(record.Notes), 0, NotesContains)
	score += q.textBands(record.PhonePrice, PriceExact, PriceContains)

	score += q.dateBands(record.TransactionDate)
	return score
}

// textBands applies the equality and containment bands to one field. Empty
// fields never match.
func (q query) textBands(field string, exact, contains int) int {
	if field == "" {
		return 0
	}
	value := strings.ToLower(field)
	score := 0
	if value == q.lower {
		score += exact
	}
	if strings.Contains(value, q.lower) {
		score += contains
	}
	return score
}

func (q query) dateBands(date time.Time) int {
	if date.IsZero() {
		return 0
	}
	score := 0
	if q.hasParsed && sameDay(q.parsed, date) {
		score += DateParsed
	}
	if strings.Contains(date.UTC().Format(isoDateLayout), q.lower) {
		score += DateISO
	}
	if q.hasDDMMYYYY && sameDay(q.ddmmyyyy, date) {
		score += DateDDMMYYYY
	}
	return score
}

func repairDescription(items []string) string {
	return strings.Join(repairs.Describe(items), "|")
}

// parseCalendarDate accepts anything the date parser recognises. Inputs that
// upset the parser are treated as non-dates.
func parseCalendarDate(value string) (parsed time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			parsed, ok = time.Time{}, false
		}
	}()
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
