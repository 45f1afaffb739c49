// Package sample generates the synthetic transaction batch shown before a
// real dataset is loaded. Generation is the only cacheable pure computation
// in the pipeline: results are memoized process-wide keyed by seed, with no
// invalidation other than process restart.
package sample

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"findash/internal/core"
)

// DefaultSeed is the seed for the built-in demo batch.
const DefaultSeed int64 = 42

var expenseCategories = map[string][]string{
	"Food & Dining":  {"Groceries", "Restaurant", "Coffee Shop", "Fast Food", "Delivery"},
	"Transportation": {"Gas", "Public Transit", "Uber/Lyft", "Parking", "Car Maintenance"},
	"Housing":        {"Rent", "Utilities", "Internet", "Phone", "Home Supplies"},
	"Entertainment":  {"Movies", "Streaming", "Games", "Concert", "Sports"},
	"Healthcare":     {"Doctor Visit", "Pharmacy", "Gym Membership", "Dental"},
	"Shopping":       {"Clothing", "Electronics", "Books", "Personal Care", "Gifts"},
}

// categoryOrder keeps draws deterministic; map iteration order is not.
var categoryOrder = []string{
	"Food & Dining", "Transportation", "Housing",
	"Entertainment", "Healthcare", "Shopping",
}

var incomeSources = []string{"Salary", "Freelancing", "Investment Returns", "Side Hustle"}

var (
	memoMu sync.Mutex
	memo   = map[int64][]core.RawRecord{}
)

// Records returns the memoized sample batch for the given seed, generating it
// on first use.
func Records(seed int64) []core.RawRecord {
	memoMu.Lock()
	defer memoMu.Unlock()

	if cached, ok := memo[seed]; ok {
		out := make([]core.RawRecord, len(cached))
		copy(out, cached)
		return out
	}

	records := generate(seed, time.Now())
	memo[seed] = records

	out := make([]core.RawRecord, len(records))
	copy(out, records)
	return out
}

// generate produces roughly a year of daily activity ending at end: 70% of
// days carry one to three transactions, 15% of which are income (500-4000),
// the rest expenses (5-150) from the fixed category groups.
func generate(seed int64, end time.Time) []core.RawRecord {
	rng := rand.New(rand.NewSource(seed))
	start := end.AddDate(0, 0, -365)

	var records []core.RawRecord
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if rng.Float64() >= 0.7 {
			continue
		}
		count := 1
		switch r := rng.Float64(); {
		case r < 0.6:
			count = 1
		case r < 0.9:
			count = 2
		default:
			count = 3
		}
		for i := 0; i < count; i++ {
			records = append(records, randomRecord(rng, d))
		}
	}
	return records
}

func randomRecord(rng *rand.Rand, date time.Time) core.RawRecord {
	rec := core.RawRecord{Date: date.Format("2006-01-02")}

	if rng.Float64() < 0.15 {
		rec.Description = incomeSources[rng.Intn(len(incomeSources))]
		rec.Category = "Income"
		rec.Type = string(core.Income)
		rec.Amount = formatAmount(uniform(rng, 500, 4000))
		return rec
	}

	category := categoryOrder[rng.Intn(len(categoryOrder))]
	descriptions := expenseCategories[category]
	rec.Description = descriptions[rng.Intn(len(descriptions))]
	rec.Category = category
	rec.Type = string(core.Expense)
	rec.Amount = formatAmount(-uniform(rng, 5, 150))
	return rec
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	v := low + rng.Float64()*(high-low)
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
