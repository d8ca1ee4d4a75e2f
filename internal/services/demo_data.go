package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

type demoDataGenerator struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// demoCategories mirrors the kinds of spending a personal budget actually
// sees; each entry pins the amount range so generated data looks plausible.
var demoCategories = []struct {
	name string
	min  float64
	max  float64
}{
	{"Groceries", 5, 180},
	{"Dining", 8, 95},
	{"Transport", 2, 60},
	{"Entertainment", 5, 120},
	{"Utilities", 20, 250},
	{"Healthcare", 10, 300},
	{"Shopping", 10, 400},
	{"Travel", 50, 900},
}

var demoCurrencies = []string{"USD", "EUR", "GBP", "CHF", "PLN"}

// NewDemoDataGenerator creates a generator seeded from the clock
func NewDemoDataGenerator() DemoDataGeneratorInterface {
	seed := time.Now().UnixNano()
	return &demoDataGenerator{
		faker: gofakeit.New(uint64(seed)),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// GenerateExpenses produces count plausible expense inputs spread over the
// demo categories and a handful of currencies.
func (g *demoDataGenerator) GenerateExpenses(count int) []NewExpense {
	if count <= 0 {
		return nil
	}

	items := make([]NewExpense, 0, count)
	for i := 0; i < count; i++ {
		category := demoCategories[g.rng.Intn(len(demoCategories))]
		amount := g.faker.Float64Range(category.min, category.max)

		items = append(items, NewExpense{
			Name:         fmt.Sprintf("%s at %s", category.name, g.faker.Company()),
			CategoryName: category.name,
			Amount:       decimal.NewFromFloat(amount).Round(2),
			Currency:     demoCurrencies[g.rng.Intn(len(demoCurrencies))],
		})
	}

	return items
}
