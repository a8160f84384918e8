package search

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonemechanic/repair-ledger/pkg/db/models"
)

func strPtr(v string) *string { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(name string, date time.Time, mutate ...func(*models.Transaction)) models.Transaction {
	rec := models.Transaction{
		ID:              uuid.New(),
		CustomerName:    name,
		PhoneModel:      "Galaxy S21",
		PhonePrice:      "180",
		TransactionDate: date,
	}
	for _, fn := range mutate {
		fn(&rec)
	}
	return rec
}

func ids(records []models.Transaction) []uuid.UUID {
	out := make([]uuid.UUID, len(records))
	for i, rec := range records {
		out[i] = rec.ID
	}
	return out
}

func TestRankEmptyQueryReturnsAllNewestFirst(t *testing.T) {
	older := record("Ann", day(2024, 1, 2))
	newest := record("Ben", day(2024, 6, 1))
	middle := record("Cat", day(2024, 3, 9))

	got := Rank([]models.Transaction{older, newest, middle}, "   ", 0)
	require.Equal(t, []uuid.UUID{newest.ID, middle.ID, older.ID}, ids(got))

	limited := Rank([]models.Transaction{older, newest, middle}, "", 2)
	require.Equal(t, []uuid.UUID{newest.ID, middle.ID}, ids(limited))
}

func TestRankTruncatesAfterScoring(t *testing.T) {
	exact := record("Ann", day(2023, 2, 1))
	newer := record("Joanne", day(2024, 6, 1))
	newest := record("Annabel", day(2024, 9, 1))
	records := []models.Transaction{newer, newest, exact}

	top := Rank(records, "ann", 1)
	require.Equal(t, []uuid.UUID{exact.ID}, ids(top))

	two := Rank(records, "ann", 2)
	require.Equal(t, []uuid.UUID{exact.ID, newest.ID}, ids(two))
}

func TestRankDropsZeroScores(t *testing.T) {
	records := []models.Transaction{
		record("Ann", day(2024, 1, 2)),
		record("Ben", day(2024, 6, 1), func(r *models.Transaction) { r.Notes = strPtr("cracked lcd") }),
	}
	require.Empty(t, Rank(records, "zzz-no-match-zzz", 0))
}

func TestRankPhoneSuffixScenario(t *testing.T) {
	rec := record("Dana", day(2024, 3, 15), func(r *models.Transaction) { r.PhoneNumber = strPtr("0412 345 678") })
	assert.Equal(t, PhoneSuffix+PhoneContains, Score(rec, "5678"))

	got := Rank([]models.Transaction{rec}, "5678", 0)
	require.Len(t, got, 1)
}

func TestRankPhoneExactFiresEveryBand(t *testing.T) {
	rec := record("Dana", day(2024, 3, 15), func(r *models.Transaction) { r.PhoneNumber = strPtr("0412345678") })
	assert.Equal(t, PhoneExact+PhoneSuffix+PhoneContains, Score(rec, "0412-345-678"))
}

func TestRankShortNumericQuerySkipsSuffixBand(t *testing.T) {
	rec := record("Dana", day(2024, 3, 15), func(r *models.Transaction) { r.PhoneNumber = strPtr("0412345678") })
	assert.Equal(t, PhoneContains, Score(rec, "78"))
}

func TestRankExactIMEIOutranksPartial(t *testing.T) {
	partial := record("Eve", day(2024, 5, 1), func(r *models.Transaction) { r.PhoneIMEI = strPtr("12356789012345678") })
	exact := record("Fay", day(2024, 1, 1), func(r *models.Transaction) { r.PhoneIMEI = strPtr("356789012345678") })

	results := RankScored([]models.Transaction{partial, exact}, "356789012345678", 0)
	require.Len(t, results, 2)
	assert.Equal(t, exact.ID, results[0].Record.ID)
	assert.Equal(t, IMEIExact+IMEIContains, results[0].Score)
	assert.Equal(t, IMEIContains, results[1].Score)
}

func TestRankTieBreaksOnDate(t *testing.T) {
	older := record("Alice Nguyen", day(2023, 12, 1))
	newer := record("Alice Tran", day(2024, 2, 1))

	got := Rank([]models.Transaction{older, newer}, "alice", 0)
	require.Equal(t, []uuid.UUID{newer.ID, older.ID}, ids(got))
}

func TestRankNameAndModelBands(t *testing.T) {
	rec := record("Grace", day(2024, 3, 15))
	assert.Equal(t, NameExact+NameContains, Score(rec, "GRACE"))
	assert.Equal(t, ModelExact+ModelContains, Score(rec, "galaxy s21"))
	assert.Equal(t, ModelContains, Score(rec, "galaxy"))
}

func TestRankEmptyFieldsNeverMatch(t *testing.T) {
	rec := record("Hana", day(2024, 3, 15))
	rec.PhoneModel = ""
	rec.PhonePrice = ""
	assert.Zero(t, Score(rec, "x"))
}

func TestRankRepairDescription(t *testing.T) {
	rec := record("Ivy", day(2024, 3, 15), func(r *models.Transaction) {
		r.RepairItems = []string{"incell_120hz", "custom:back housing"}
	})
	assert.Equal(t, RepairContains, Score(rec, "aftermaket incell"))
	assert.Equal(t, RepairContains, Score(rec, "housing"))
	assert.Zero(t, Score(rec, "custom:"))
}

func TestRankNotesAndPrice(t *testing.T) {
	rec := record("Jo", day(2024, 3, 15), func(r *models.Transaction) {
		r.Notes = strPtr("Customer will pick up Friday")
		r.PhonePrice = "220"
	})
	assert.Equal(t, NotesContains, Score(rec, "pick up"))
	assert.Equal(t, PriceExact+PriceContains, Score(rec, "220"))
}

func TestRankISODateStacksWithParsedDate(t *testing.T) {
	rec := record("Kim", day(2024, 3, 15))
	assert.Equal(t, DateParsed+DateISO, Score(rec, "2024-03-15"))
	assert.Equal(t, DateISO, Score(rec, "2024-03"))
}

func TestRankDDMMYYYY(t *testing.T) {
	rec := record("Lee", day(2024, 3, 15))
	assert.Equal(t, DateDDMMYYYY, Score(rec, "15032024"))
	assert.Zero(t, Score(rec, "31022024"))
}

func TestRankIsDeterministic(t *testing.T) {
	records := []models.Transaction{
		record("Mia", day(2024, 3, 15)),
		record("Mia", day(2024, 3, 15)),
		record("Mia Lopez", day(2024, 3, 15)),
	}
	first := Rank(records, "mia", 0)
	for i := 0; i < 5; i++ {
		require.Equal(t, ids(first), ids(Rank(records, "mia", 0)))
	}
	require.Equal(t, []uuid.UUID{records[0].ID, records[1].ID, records[2].ID}, ids(first))
}
