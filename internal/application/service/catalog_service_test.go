package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateUpdateToggle(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())
	ctx := context.Background()

	created, err := svc.CreateService(ctx, &ServiceInput{
		DisplayName:    "Wash & Fold",
		BasePrice:      decimal.NewFromInt(100),
		PricePerKg:     decimal.NewNullDecimal(decimal.NewFromInt(20)),
		RequiresWeight: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "wash-fold", created.Name)
	assert.True(t, created.IsActive)

	_, err = svc.CreateService(ctx, &ServiceInput{DisplayName: "wash  fold", BasePrice: decimal.Zero})
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	updated, err := svc.UpdateService(ctx, created.ID, &ServiceInput{DisplayName: "Wash, Dry & Fold", BasePrice: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assert.Equal(t, "wash-dry-fold", updated.Name)

	toggled, err := svc.ToggleService(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCatalogService_RejectsNegativePrices(t *testing.T) {
	svc := NewCatalogService(newFakeServiceRepo())

	_, err := svc.CreateService(context.Background(), &ServiceInput{
		DisplayName:  "Ironing",
		BasePrice:    decimal.NewFromInt(-1),
		PricePerItem: decimal.NewNullDecimal(decimal.NewFromInt(-5)),
	})

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
}
