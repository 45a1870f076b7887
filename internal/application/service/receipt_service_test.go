package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/worker"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRenderer struct{ err error }

func (s stubRenderer) Render(w io.Writer, r *entity.Receipt) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, "%PDF-1.3 "+r.Number)
	return err
}

type fullQueue struct{}

func (fullQueue) Submit(worker.Task[*entity.ReceiptFile]) (*worker.Job[*entity.ReceiptFile], error) {
	return nil, worker.ErrQueueFull
}

func (fullQueue) Get(uuid.UUID) (*worker.Job[*entity.ReceiptFile], bool) { return nil, false }

type receiptFixture struct {
	svc      *ReceiptService
	files    *memoryFiles
	customer *entity.Customer
	day      time.Time
}

func newReceiptFixture(t *testing.T, renderer ReceiptRenderer, jobs ReceiptJobs) *receiptFixture {
	customer := &entity.Customer{ID: uuid.MustParse("6f1c2a1e-8a3b-4c55-9d1e-0000abcd12ef"), Name: "Mwangi", Phone: strPtr("0700111222")}
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	orders := newFakeOrderRepo(
		&entity.Order{ID: uuid.New(), CustomerID: customer.ID, OrderDate: day, ServiceType: "Duvet", Items: 2,
			Subtotal: decimal.NewFromInt(800), DiscountAmount: decimal.NewFromInt(100), TotalAmount: decimal.NewFromInt(700)},
		&entity.Order{ID: uuid.New(), CustomerID: customer.ID, OrderDate: day, ServiceType: "Wash & Fold", Weight: decimal.NewFromInt(3),
			Subtotal: decimal.NewFromInt(160), TotalAmount: decimal.NewFromInt(160), TransactionCode: strPtr("SGH12")},
	)

	if jobs == nil {
		pool := worker.NewPool[*entity.ReceiptFile](zap.NewNop(), 1, 4)
		t.Cleanup(func() { pool.Stop(context.Background()) })
		jobs = pool
	}

	f := &receiptFixture{files: newMemoryFiles(), customer: customer, day: day}
	f.svc = NewReceiptService(
		newFakeCustomerRepo(customer),
		orders,
		&fakeAnalyticsRepo{history: []entity.ReceiptHistoryEntry{{OrderDate: "2024-06-10", OrderCount: 2, TotalAmount: decimal.NewFromInt(860)}}},
		renderer,
		f.files,
		jobs,
		entity.ReceiptHeader{StoreName: "Luku Safi Laundromat"},
		30*24*time.Hour,
		zap.NewNop(),
	)
	f.svc.now = func() time.Time { return time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC) }
	return f
}

func TestReceiptService_GenerateSync(t *testing.T) {
	f := newReceiptFixture(t, stubRenderer{}, nil)

	out, err := f.svc.Generate(context.Background(), f.customer.ID, f.day, false)
	require.NoError(t, err)
	require.NotNil(t, out.File)

	assert.Regexp(t, regexp.MustCompile(`^RCP-\d+-[A-Z0-9]{4}$`), out.File.ReceiptNumber)
	assert.Equal(t, "RCP-1718028000000-12EF", out.File.ReceiptNumber)
	assert.Equal(t, 2, out.File.OrderCount)
	assert.True(t, decimal.NewFromInt(860).Equal(out.File.TotalAmount))
	assert.Equal(t, ReceiptDownloadPath+out.File.Filename, out.File.DownloadURL)

	path, err := f.svc.Open(out.File.Filename)
	require.NoError(t, err)
	assert.Contains(t, path, out.File.Filename)
}

func TestReceiptService_GenerateAsync(t *testing.T) {
	f := newReceiptFixture(t, stubRenderer{}, nil)

	out, err := f.svc.Generate(context.Background(), f.customer.ID, f.day, true)
	require.NoError(t, err)
	require.NotNil(t, out.Job)

	require.Eventually(t, func() bool {
		job, err := f.svc.Job(out.Job.ID)
		return err == nil && job.Status == worker.JobDone
	}, 2*time.Second, 10*time.Millisecond)

	job, err := f.svc.Job(out.Job.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, job.Result.Filename)

	_, err = f.svc.Job(uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestReceiptService_RenderFailure(t *testing.T) {
	f := newReceiptFixture(t, stubRenderer{err: errors.New("font missing")}, nil)

	_, err := f.svc.Generate(context.Background(), f.customer.ID, f.day, false)

	assert.EqualError(t, err, "font missing")
	assert.Empty(t, f.files.files)
}

func TestReceiptService_NoOrdersOnDate(t *testing.T) {
	f := newReceiptFixture(t, stubRenderer{}, nil)

	_, err := f.svc.Generate(context.Background(), f.customer.ID, f.day.AddDate(0, 0, 1), false)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	_, err = f.svc.Generate(context.Background(), uuid.New(), f.day, false)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestReceiptService_QueueFull(t *testing.T) {
	f := newReceiptFixture(t, stubRenderer{}, fullQueue{})

	_, err := f.svc.Generate(context.Background(), f.customer.ID, f.day, false)

	assert.Equal(t, http.StatusServiceUnavailable, apperror.GetAppError(err).Code)
}

func TestReceiptService_Open(t *testing.T) {
	f := newReceiptFixture(t, stubRenderer{}, nil)

	_, err := f.svc.Open("../../etc/passwd")
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	_, err = f.svc.Open("receipt_RCP-1-ABCD_1.pdf")
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestReceiptService_History(t *testing.T) {
	f := newReceiptFixture(t, stubRenderer{}, nil)

	entries, err := f.svc.History(context.Background(), f.customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].OrderCount)
}

func TestBuildReceipt(t *testing.T) {
	customer := &entity.Customer{ID: uuid.New(), Name: "Wambui", Email: strPtr("w@example.com")}
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	orders := []entity.Order{
		{ServiceType: "Duvet", Items: 4, Subtotal: decimal.NewFromInt(1000), DiscountAmount: decimal.NewFromInt(1200), TotalAmount: decimal.Zero, Notes: strPtr("stain")},
		{ServiceType: "Wash", Weight: decimal.NewFromInt(2), Subtotal: decimal.NewFromInt(140), TotalAmount: decimal.NewFromInt(140)},
	}

	r := BuildReceipt(entity.ReceiptHeader{StoreName: "Shop"}, customer, orders, day, day.Add(10*time.Hour))

	require.Len(t, r.Lines, 2)
	assert.True(t, decimal.NewFromInt(250).Equal(r.Lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(140).Equal(r.Lines[1].UnitPrice))
	assert.Equal(t, "stain", r.Lines[0].Notes)
	assert.True(t, decimal.NewFromInt(1140).Equal(r.Subtotal))
	assert.True(t, decimal.NewFromInt(140).Equal(r.GrandTotal))
	assert.Equal(t, "w@example.com", r.Customer.Email)
	assert.Equal(t, "KES", r.Currency)
}
