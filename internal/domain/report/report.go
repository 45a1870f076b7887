// Package report aggregates orders and expenses into the figures shown on the
// dashboard, the customer history page and the monthly report.
//
// A visit is a distinct calendar date on which a customer has at least one
// order; several orders dropped off on the same day count once.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerVisits is the visit record of one customer
type CustomerVisits struct {
	CustomerID   uuid.UUID `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Visits       int       `json:"customerFrequency"`
	Dates        []string  `json:"orderDate"`
}

// CustomerFrequency counts distinct order dates per customer
func CustomerFrequency(orders []entity.Order) map[uuid.UUID]*CustomerVisits {
	seen := make(map[uuid.UUID]map[string]struct{})
	out := make(map[uuid.UUID]*CustomerVisits)

	for i := range orders {
		o := &orders[i]
		v, ok := out[o.CustomerID]
		if !ok {
			v = &CustomerVisits{CustomerID: o.CustomerID, Dates: []string{}}
			out[o.CustomerID] = v
			seen[o.CustomerID] = make(map[string]struct{})
		}
		if v.CustomerName == "" && o.Customer != nil {
			v.CustomerName = o.Customer.Name
		}

		key := o.DateKey()
		if _, dup := seen[o.CustomerID][key]; dup {
			continue
		}
		seen[o.CustomerID][key] = struct{}{}
		v.Dates = append(v.Dates, key)
		v.Visits++
	}

	for _, v := range out {
		sort.Strings(v.Dates)
	}
	return out
}

// TotalVisits sums visits across customers
func TotalVisits(freq map[uuid.UUID]*CustomerVisits) int {
	total := 0
	for _, v := range freq {
		total += v.Visits
	}
	return total
}

// CustomerHistory is the spending and visit profile of one customer
type CustomerHistory struct {
	TotalSpent        decimal.Decimal            `json:"totalSpent"`
	TotalOrders       int                        `json:"totalOrders"`
	Visits            int                        `json:"visits"`
	AverageOrderValue decimal.Decimal            `json:"averageOrderValue"`
	VisitFrequency    float64                    `json:"visitFrequency"`
	FirstVisit        *time.Time                 `json:"firstVisit"`
	LastVisit         *time.Time                 `json:"lastVisit"`
	MonthlySpending   map[string]decimal.Decimal `json:"monthlySpending"`
	WeeklyVisits      map[string]int             `json:"weeklyVisits"`
}

// BuildCustomerHistory profiles a single customer's orders.
// VisitFrequency is visits per 30-day month since the first visit, counting at least one month.
func BuildCustomerHistory(orders []entity.Order, now time.Time) CustomerHistory {
	h := CustomerHistory{
		TotalSpent:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
		MonthlySpending:   make(map[string]decimal.Decimal),
		WeeklyVisits:      make(map[string]int),
	}
	if len(orders) == 0 {
		return h
	}

	days := make(map[string]struct{})
	var first, last time.Time
	for i := range orders {
		o := &orders[i]
		h.TotalOrders++
		h.TotalSpent = h.TotalSpent.Add(o.TotalAmount)

		month := o.OrderDate.Format("2006-01")
		h.MonthlySpending[month] = h.MonthlySpending[month].Add(o.TotalAmount)

		if first.IsZero() || o.OrderDate.Before(first) {
			first = o.OrderDate
		}
		if o.OrderDate.After(last) {
			last = o.OrderDate
		}

		key := o.DateKey()
		if _, dup := days[key]; dup {
			continue
		}
		days[key] = struct{}{}
		h.WeeklyVisits[WeekKey(o.OrderDate)]++
	}

	h.Visits = len(days)
	h.AverageOrderValue = h.TotalSpent.Div(decimal.NewFromInt(int64(h.Visits))).Round(2)
	h.FirstVisit = &first
	h.LastVisit = &last

	months := math.Ceil(now.Sub(first).Hours() / (24 * 30))
	if months < 1 {
		months = 1
	}
	h.VisitFrequency = math.Round(float64(h.Visits)/months*10) / 10

	return h
}

// WeekKey returns the ISO week of t as YYYY-Www
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// IsNewCustomer reports whether c was created during the given month
func IsNewCustomer(c *entity.Customer, year int, month time.Month) bool {
	return c.CreatedAt.Year() == year && c.CreatedAt.Month() == month
}

// ClassifyCustomers splits customers into those created in the month and everyone else
func ClassifyCustomers(customers []entity.Customer, year int, month time.Month) (newCount, returning int) {
	for i := range customers {
		if IsNewCustomer(&customers[i], year, month) {
			newCount++
		} else {
			returning++
		}
	}
	return newCount, returning
}

// MonthRange returns the first and last calendar day of a month
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// SumPaid totals the orders that have been paid in full
func SumPaid(orders []entity.Order) decimal.Decimal {
	total := decimal.Zero
	for i := range orders {
		if orders[i].IsPaid() {
			total = total.Add(orders[i].TotalAmount)
		}
	}
	return total
}

// SumExpenses totals expense amounts
func SumExpenses(expenses []entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}
	return total
}

// MonthlyReport is the owner's month-end summary
type MonthlyReport struct {
	Month              string                     `json:"month"`
	Orders             []entity.Order             `json:"orders"`
	Expenses           []entity.Expense           `json:"expenses"`
	Revenue            decimal.Decimal            `json:"revenue"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	Profit             decimal.Decimal            `json:"profit"`
	NewCustomers       int                        `json:"newCustomers"`
	ReturningCustomers int                        `json:"returningCustomers"`
	CustomerFrequency  map[string]*CustomerVisits `json:"customerFrequency"`
	TotalOrders        int                        `json:"totalOrders"`
	OrderCount         int                        `json:"orderCount"`
}

// BuildMonthlyReport aggregates one month of orders and expenses.
// Orders are expected to carry their customer so that new and returning
// customers can be told apart; orders without one are left out of that split.
func BuildMonthlyReport(year int, month time.Month, orders []entity.Order, expenses []entity.Expense) *MonthlyReport {
	if orders == nil {
		orders = []entity.Order{}
	}
	if expenses == nil {
		expenses = []entity.Expense{}
	}

	revenue := SumPaid(orders)
	spent := SumExpenses(expenses)
	freq := CustomerFrequency(orders)

	customers := make([]entity.Customer, 0, len(freq))
	counted := make(map[uuid.UUID]struct{}, len(freq))
	for i := range orders {
		c := orders[i].Customer
		if c == nil {
			continue
		}
		if _, ok := counted[c.ID]; ok {
			continue
		}
		counted[c.ID] = struct{}{}
		customers = append(customers, *c)
	}
	newCount, returning := ClassifyCustomers(customers, year, month)

	byID := make(map[string]*CustomerVisits, len(freq))
	for id, v := range freq {
		byID[id.String()] = v
	}

	return &MonthlyReport{
		Month:              fmt.Sprintf("%d-%02d", year, int(month)),
		Orders:             orders,
		Expenses:           expenses,
		Revenue:            revenue,
		TotalExpenses:      spent,
		Profit:             revenue.Sub(spent),
		NewCustomers:       newCount,
		ReturningCustomers: returning,
		CustomerFrequency:  byID,
		TotalOrders:        TotalVisits(freq),
		OrderCount:         len(orders),
	}
}
