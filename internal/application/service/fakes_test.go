package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/internal/infrastructure/storage"
	"github.com/lukusafi/laundry-api/pkg/notify"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// pageOf returns the window of all selected by params, as LIMIT/OFFSET would
func pageOf[T any](all []T, params *pagination.Params) []T {
	start := min(params.Offset(), len(all))
	end := min(start+params.Limit, len(all))
	return all[start:end]
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) List(_ context.Context, params *pagination.Params) ([]entity.User, int64, error) {
	all := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	return pageOf(all, params), int64(len(all)), nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(seed ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range seed {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.PhoneOrEmpty() == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, params *pagination.Params, search string) ([]entity.Customer, int64, error) {
	var all []entity.Customer
	for _, c := range r.customers {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			all = append(all, *c)
		}
	}
	return pageOf(all, params), int64(len(all)), nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo(seed ...*entity.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
	for _, s := range seed {
		r.services[s.ID] = s
	}
	return r
}

func (r *fakeServiceRepo) Create(_ context.Context, s *entity.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	return r.services[id], nil
}

func (r *fakeServiceRepo) GetByName(_ context.Context, name string) (*entity.Service, error) {
	for _, s := range r.services {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *entity.Service) error {
	r.services[s.ID] = s
	return nil
}

func (r *fakeServiceRepo) List(_ context.Context, activeOnly bool) ([]entity.Service, error) {
	var out []entity.Service
	for _, s := range r.services {
		if !activeOnly || s.IsActive {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
	recent []entity.Order
	ranged []entity.Order
}

func newFakeOrderRepo(seed ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
	for _, o := range seed {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter, params *pagination.Params) ([]entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []entity.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		all = append(all, *o)
	}
	return pageOf(all, params), int64(len(all)), nil
}

func (r *fakeOrderRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByCustomerAndDate(_ context.Context, customerID uuid.UUID, date time.Time) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID && o.DateKey() == date.Format(entity.DateLayout) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceType < out[j].ServiceType })
	return out, nil
}

func (r *fakeOrderRepo) ListByDateRange(context.Context, time.Time, time.Time) ([]entity.Order, error) {
	return r.ranged, nil
}

func (r *fakeOrderRepo) Recent(context.Context, int) ([]entity.Order, error) {
	return r.recent, nil
}

type fakeExpenseRepo struct {
	expenses   map[uuid.UUID]*entity.Expense
	lastFilter repository.ExpenseFilter
	ranged     []entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[uuid.UUID]*entity.Expense)}
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	return r.expenses[id], nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) List(_ context.Context, filter repository.ExpenseFilter, params *pagination.Params) ([]entity.Expense, int64, error) {
	r.lastFilter = filter
	var all []entity.Expense
	for _, e := range r.expenses {
		all = append(all, *e)
	}
	return pageOf(all, params), int64(len(all)), nil
}

func (r *fakeExpenseRepo) ListByDateRange(context.Context, time.Time, time.Time) ([]entity.Expense, error) {
	return r.ranged, nil
}

type fakeAnalyticsRepo struct {
	revenue, expenses          decimal.Decimal
	customers, pending, visits int64
	byMonth                    []repository.MonthlyAmount
	byCategory                 []repository.CategoryAmount
	history                    []entity.ReceiptHistoryEntry
	calls                      int
}

func (r *fakeAnalyticsRepo) SumPaidRevenue(context.Context) (decimal.Decimal, error) {
	r.calls++
	return r.revenue, nil
}

func (r *fakeAnalyticsRepo) SumExpenses(context.Context) (decimal.Decimal, error) {
	return r.expenses, nil
}

func (r *fakeAnalyticsRepo) CountCustomers(context.Context) (int64, error) {
	return r.customers, nil
}

func (r *fakeAnalyticsRepo) CountPendingOrders(context.Context) (int64, error) {
	return r.pending, nil
}

func (r *fakeAnalyticsRepo) CountVisits(context.Context) (int64, error) {
	return r.visits, nil
}

func (r *fakeAnalyticsRepo) RevenueByMonth(context.Context, time.Time) ([]repository.MonthlyAmount, error) {
	return r.byMonth, nil
}

func (r *fakeAnalyticsRepo) ExpensesByCategory(context.Context) ([]repository.CategoryAmount, error) {
	return r.byCategory, nil
}

func (r *fakeAnalyticsRepo) ReceiptHistory(context.Context, uuid.UUID) ([]entity.ReceiptHistoryEntry, error) {
	return r.history, nil
}

// memoryCache is a Cache backed by a map of JSON documents
type memoryCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memoryCache) InvalidatePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type recordingNotifier struct {
	sent chan notify.OrderReady
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan notify.OrderReady, 4)}
}

func (n *recordingNotifier) NotifyOrderReady(_ context.Context, msg notify.OrderReady) error {
	n.sent <- msg
	return nil
}

// memoryFiles keeps rendered receipts in memory
type memoryFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryFiles() *memoryFiles {
	return &memoryFiles{files: make(map[string][]byte)}
}

func (m *memoryFiles) Write(name string, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = buf.Bytes()
	return nil
}

func (m *memoryFiles) Path(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; !ok {
		return "", storage.ErrNotFound
	}
	return "/receipts/" + name, nil
}

func (m *memoryFiles) RemoveOlderThan(time.Time) (int, error) {
	return 0, nil
}

func strPtr(s string) *string { return &s }
