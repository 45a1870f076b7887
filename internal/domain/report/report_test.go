package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func order(c *entity.Customer, date time.Time, total string, paid enum.PaymentStatus) entity.Order {
	return entity.Order{
		ID:            uuid.New(),
		CustomerID:    c.ID,
		Customer:      c,
		OrderDate:     date,
		TotalAmount:   decimal.RequireFromString(total),
		PaymentStatus: paid,
	}
}

func TestCustomerFrequency_SameDayCountsOnce(t *testing.T) {
	c := &entity.Customer{ID: uuid.New(), Name: "Wanjiku"}
	orders := []entity.Order{
		order(c, day(2024, 3, 5), "100", enum.PaymentStatusPaid),
		order(c, day(2024, 3, 5), "200", enum.PaymentStatusPaid),
		order(c, day(2024, 3, 5), "50", enum.PaymentStatusPending),
	}

	freq := CustomerFrequency(orders)

	require.Contains(t, freq, c.ID)
	assert.Equal(t, 1, freq[c.ID].Visits)
	assert.Equal(t, []string{"2024-03-05"}, freq[c.ID].Dates)
	assert.Equal(t, "Wanjiku", freq[c.ID].CustomerName)
	assert.Equal(t, 1, TotalVisits(freq))
}

func TestCustomerFrequency_DistinctDatesAcrossCustomers(t *testing.T) {
	a := &entity.Customer{ID: uuid.New(), Name: "A"}
	b := &entity.Customer{ID: uuid.New(), Name: "B"}
	orders := []entity.Order{
		order(a, day(2024, 3, 9), "10", enum.PaymentStatusPaid),
		order(a, day(2024, 3, 1), "10", enum.PaymentStatusPaid),
		order(b, day(2024, 3, 1), "10", enum.PaymentStatusPaid),
	}

	freq := CustomerFrequency(orders)

	assert.Equal(t, 2, freq[a.ID].Visits)
	assert.Equal(t, []string{"2024-03-01", "2024-03-09"}, freq[a.ID].Dates)
	assert.Equal(t, 1, freq[b.ID].Visits)
	assert.Equal(t, 3, TotalVisits(freq))
}

func TestBuildCustomerHistory_NoOrders(t *testing.T) {
	h := BuildCustomerHistory(nil, time.Now())

	assert.Equal(t, 0, h.Visits)
	assert.True(t, h.AverageOrderValue.IsZero())
	assert.True(t, h.TotalSpent.IsZero())
	assert.Zero(t, h.VisitFrequency)
	assert.Nil(t, h.FirstVisit)
}

func TestBuildCustomerHistory_AveragesOverVisits(t *testing.T) {
	c := &entity.Customer{ID: uuid.New()}
	orders := []entity.Order{
		order(c, day(2024, 1, 2), "100", enum.PaymentStatusPaid),
		order(c, day(2024, 1, 2), "100", enum.PaymentStatusPaid),
		order(c, day(2024, 2, 20), "400", enum.PaymentStatusPending),
	}

	h := BuildCustomerHistory(orders, day(2024, 3, 1))

	assert.Equal(t, 3, h.TotalOrders)
	assert.Equal(t, 2, h.Visits)
	assert.True(t, h.TotalSpent.Equal(decimal.NewFromInt(600)))
	assert.True(t, h.AverageOrderValue.Equal(decimal.NewFromInt(300)))
	assert.True(t, h.MonthlySpending["2024-01"].Equal(decimal.NewFromInt(200)))
	assert.True(t, h.MonthlySpending["2024-02"].Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 1, h.WeeklyVisits["2024-W01"])
	assert.Equal(t, 1, h.WeeklyVisits["2024-W08"])
	assert.Equal(t, day(2024, 1, 2), *h.FirstVisit)
	assert.Equal(t, day(2024, 2, 20), *h.LastVisit)
	// 59 days since the first visit rounds up to two months
	assert.Equal(t, 1.0, h.VisitFrequency)
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, "2020-W53", WeekKey(day(2021, 1, 1)))
	assert.Equal(t, "2024-W10", WeekKey(day(2024, 3, 5)))
}

func TestBuildMonthlyReport_NewVersusReturning(t *testing.T) {
	fresh := &entity.Customer{ID: uuid.New(), Name: "Fresh", CreatedAt: day(2024, 5, 3)}
	regular := &entity.Customer{ID: uuid.New(), Name: "Regular", CreatedAt: day(2024, 4, 28)}

	orders := []entity.Order{
		order(fresh, day(2024, 5, 4), "300", enum.PaymentStatusPaid),
		order(regular, day(2024, 5, 10), "150", enum.PaymentStatusPaid),
		order(regular, day(2024, 5, 10), "80", enum.PaymentStatusPending),
	}
	expenses := []entity.Expense{
		{Category: enum.ExpenseRent, Amount: decimal.NewFromInt(200), Date: day(2024, 5, 1)},
	}

	r := BuildMonthlyReport(2024, time.May, orders, expenses)

	assert.Equal(t, "2024-05", r.Month)
	assert.Equal(t, 1, r.NewCustomers)
	assert.Equal(t, 1, r.ReturningCustomers)
	assert.True(t, r.Revenue.Equal(decimal.NewFromInt(450)))
	assert.True(t, r.TotalExpenses.Equal(decimal.NewFromInt(200)))
	assert.True(t, r.Profit.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 2, r.TotalOrders)
	assert.Equal(t, 3, r.OrderCount)
	assert.Equal(t, 1, r.CustomerFrequency[regular.ID.String()].Visits)
}

func TestBuildMonthlyReport_Empty(t *testing.T) {
	r := BuildMonthlyReport(2024, time.February, nil, nil)

	assert.NotNil(t, r.Orders)
	assert.NotNil(t, r.Expenses)
	assert.True(t, r.Profit.IsZero())
	assert.Equal(t, 0, r.TotalOrders)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, time.February)
	assert.Equal(t, day(2024, 2, 1), start)
	assert.Equal(t, day(2024, 2, 29), end)
}
