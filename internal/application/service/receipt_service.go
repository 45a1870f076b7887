package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/internal/infrastructure/storage"
	"github.com/lukusafi/laundry-api/internal/worker"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/lukusafi/laundry-api/pkg/money"
	"github.com/lukusafi/laundry-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptDownloadPath is the route prefix receipts are served from
const ReceiptDownloadPath = "/api/receipts/download/"

// ReceiptRenderer draws a receipt document
type ReceiptRenderer interface {
	Render(w io.Writer, r *entity.Receipt) error
}

// ReceiptFiles persists rendered receipts
type ReceiptFiles interface {
	Write(name string, render func(w io.Writer) error) error
	Path(name string) (string, error)
	RemoveOlderThan(cutoff time.Time) (int, error)
}

// ReceiptJobs is the background queue receipts are rendered on
type ReceiptJobs interface {
	Submit(task worker.Task[*entity.ReceiptFile]) (*worker.Job[*entity.ReceiptFile], error)
	Get(id uuid.UUID) (*worker.Job[*entity.ReceiptFile], bool)
}

// ReceiptService builds and renders customer receipts
type ReceiptService struct {
	customerRepo  repository.CustomerRepository
	orderRepo     repository.OrderRepository
	analyticsRepo repository.AnalyticsRepository
	renderer      ReceiptRenderer
	files         ReceiptFiles
	jobs          ReceiptJobs
	header        entity.ReceiptHeader
	retention     time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	analyticsRepo repository.AnalyticsRepository,
	renderer ReceiptRenderer,
	files ReceiptFiles,
	jobs ReceiptJobs,
	header entity.ReceiptHeader,
	retention time.Duration,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		customerRepo:  customerRepo,
		orderRepo:     orderRepo,
		analyticsRepo: analyticsRepo,
		renderer:      renderer,
		files:         files,
		jobs:          jobs,
		header:        header,
		retention:     retention,
		logger:        logger,
		now:           time.Now,
	}
}

// ReceiptJob is the state of a receipt rendering job
type ReceiptJob = worker.Snapshot[*entity.ReceiptFile]

// GenerateOutput holds either the finished file or, for async requests, the queued job
type GenerateOutput struct {
	File *entity.ReceiptFile
	Job  *ReceiptJob
}

// Generate renders a receipt for every order a customer placed on date.
// When async is false it waits for the file using ctx; a cancelled wait
// leaves the job running.
func (s *ReceiptService) Generate(ctx context.Context, customerID uuid.UUID, date time.Time, async bool) (*GenerateOutput, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	orders, err := s.orderRepo.ListByCustomerAndDate(ctx, customerID, dateOnly(date))
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperror.NewNotFoundError("Orders for this date")
	}

	issuedAt := s.now()
	receipt := BuildReceipt(s.header, customer, orders, dateOnly(date), issuedAt)
	filename := utils.ReceiptFilename(receipt.Number, issuedAt)

	job, err := s.jobs.Submit(func(context.Context) (*entity.ReceiptFile, error) {
		return s.render(receipt, filename, len(orders))
	})
	switch {
	case errors.Is(err, worker.ErrQueueFull):
		return nil, apperror.NewServiceUnavailableError("Receipt queue is full, please retry shortly")
	case errors.Is(err, worker.ErrPoolClosed):
		return nil, apperror.NewServiceUnavailableError("Receipt generation is shutting down")
	case err != nil:
		return nil, err
	}

	if async {
		snap := job.Snapshot()
		return &GenerateOutput{Job: &snap}, nil
	}

	file, err := job.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return &GenerateOutput{File: file}, nil
}

func (s *ReceiptService) render(receipt *entity.Receipt, filename string, orderCount int) (*entity.ReceiptFile, error) {
	err := s.files.Write(filename, func(w io.Writer) error {
		return s.renderer.Render(w, receipt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("receipt generated",
		zap.String("receipt_number", receipt.Number),
		zap.String("filename", filename),
		zap.Int("orders", orderCount),
	)
	return &entity.ReceiptFile{
		ReceiptNumber: receipt.Number,
		Filename:      filename,
		DownloadURL:   ReceiptDownloadPath + filename,
		TotalAmount:   receipt.GrandTotal,
		OrderCount:    orderCount,
	}, nil
}

// Job returns the state of a receipt job
func (s *ReceiptService) Job(id uuid.UUID) (*ReceiptJob, error) {
	job, ok := s.jobs.Get(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Receipt job")
	}
	snap := job.Snapshot()
	return &snap, nil
}

// Open resolves a receipt filename to a path on disk
func (s *ReceiptService) Open(filename string) (string, error) {
	if !utils.IsReceiptFilename(filename) {
		return "", apperror.NewBadRequestError("Invalid receipt filename")
	}
	path, err := s.files.Path(filename)
	if errors.Is(err, storage.ErrNotFound) {
		return "", apperror.NewNotFoundError("Receipt")
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// History lists the dates a customer has receipt-able orders on
func (s *ReceiptService) History(ctx context.Context, customerID uuid.UUID) ([]entity.ReceiptHistoryEntry, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	entries, err := s.analyticsRepo.ReceiptHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entity.ReceiptHistoryEntry{}
	}
	return entries, nil
}

// Cleanup removes receipts older than the retention period
func (s *ReceiptService) Cleanup(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.files.RemoveOlderThan(s.now().Add(-s.retention))
}

// BuildReceipt composes the receipt for a customer's orders on one date
func BuildReceipt(header entity.ReceiptHeader, customer *entity.Customer, orders []entity.Order, orderDate, issuedAt time.Time) *entity.Receipt {
	r := &entity.Receipt{
		Header:    header,
		Number:    utils.ReceiptNumber(customer.ID, issuedAt),
		IssuedAt:  issuedAt,
		OrderDate: orderDate,
		Customer: entity.ReceiptCustomer{
			Name:  customer.Name,
			Phone: customer.PhoneOrEmpty(),
			Email: customer.EmailOrEmpty(),
		},
		Lines:      make([]entity.ReceiptLine, 0, len(orders)),
		Subtotal:   decimal.Zero,
		Discount:   decimal.Zero,
		GrandTotal: decimal.Zero,
		Currency:   money.Currency,
	}

	for i := range orders {
		o := &orders[i]
		unit := o.Subtotal
		if o.Items > 0 {
			unit = o.Subtotal.Div(decimal.NewFromInt(int64(o.Items))).Round(2)
		}
		r.Lines = append(r.Lines, entity.ReceiptLine{
			Service:         o.ServiceType,
			Weight:          o.Weight,
			Items:           o.Items,
			UnitPrice:       unit,
			Discount:        o.DiscountAmount,
			Total:           o.TotalAmount,
			TransactionCode: deref(o.TransactionCode),
			Notes:           deref(o.Notes),
		})
		r.Subtotal = r.Subtotal.Add(o.Subtotal)
		r.Discount = r.Discount.Add(o.DiscountAmount)
		r.GrandTotal = r.GrandTotal.Add(o.TotalAmount)
	}
	return r
}
