package vouchers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
)

var voucherNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *realtime.MemoryStore) {
	t.Helper()
	store := realtime.NewMemoryStore()
	svc := NewService(store)
	svc.now = func() time.Time { return voucherNow }
	return svc, store
}

func seedVoucher(t *testing.T, store *realtime.MemoryStore, v models.Voucher) {
	t.Helper()
	require.NoError(t, store.Write(context.Background(), config.ColVouchers, v.ID, v))
}

func TestExpiredStatusIsDerivedNotStored(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	seedVoucher(t, store, models.Voucher{
		ID:        "v1",
		Code:      "SUMMER10",
		Status:    models.VoucherStatusActive,
		StartDate: voucherNow.Add(-48 * time.Hour).UnixMilli(),
		EndDate:   voucherNow.Add(-24 * time.Hour).UnixMilli(),
	})

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.VoucherStatusExpired, list[0].Status)

	// The stored document is untouched: expiry never persists.
	raw, err := store.GetOne(ctx, config.ColVouchers, "v1")
	require.NoError(t, err)
	var stored models.Voucher
	require.NoError(t, bson.Unmarshal(raw, &stored))
	assert.Equal(t, models.VoucherStatusActive, stored.Status)
}

func TestRedeemExhaustionDeletesVoucher(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	seedVoucher(t, store, models.Voucher{
		ID:         "v1",
		Code:       "LASTUSE",
		Status:     models.VoucherStatusActive,
		UsageLimit: 2,
		UsageCount: 0,
		StartDate:  voucherNow.Add(-time.Hour).UnixMilli(),
		EndDate:    voucherNow.Add(time.Hour).UnixMilli(),
	})

	v, err := svc.Redeem(ctx, "lastuse", 50000)
	require.NoError(t, err)
	assert.Equal(t, 1, v.UsageCount)

	v, err = svc.Redeem(ctx, "LASTUSE", 50000)
	require.NoError(t, err)
	assert.Equal(t, 2, v.UsageCount)

	_, err = store.GetOne(ctx, config.ColVouchers, "v1")
	assert.ErrorIs(t, err, realtime.ErrNotFound, "exhausted voucher is hard-deleted")

	_, err = svc.Redeem(ctx, "LASTUSE", 50000)
	assert.ErrorIs(t, err, realtime.ErrNotFound)
}

func TestRedeemRejections(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	seedVoucher(t, store, models.Voucher{
		ID:         "future",
		Code:       "SOON",
		Status:     models.VoucherStatusActive,
		UsageLimit: 10,
		StartDate:  voucherNow.Add(time.Hour).UnixMilli(),
		EndDate:    voucherNow.Add(48 * time.Hour).UnixMilli(),
	})
	seedVoucher(t, store, models.Voucher{
		ID:         "minorder",
		Code:       "BIGCART",
		Status:     models.VoucherStatusActive,
		UsageLimit: 10,
		MinOrder:   100000,
		StartDate:  voucherNow.Add(-time.Hour).UnixMilli(),
		EndDate:    voucherNow.Add(time.Hour).UnixMilli(),
	})
	seedVoucher(t, store, models.Voucher{
		ID:         "off",
		Code:       "PAUSED",
		Status:     models.VoucherStatusInactive,
		UsageLimit: 10,
		StartDate:  voucherNow.Add(-time.Hour).UnixMilli(),
		EndDate:    voucherNow.Add(time.Hour).UnixMilli(),
	})

	_, err := svc.Redeem(ctx, "SOON", 50000)
	assert.ErrorIs(t, err, ErrNotApplicable)

	_, err = svc.Redeem(ctx, "BIGCART", 99999)
	assert.ErrorIs(t, err, ErrNotApplicable)
	_, err = svc.Redeem(ctx, "BIGCART", 100000)
	assert.NoError(t, err)

	_, err = svc.Redeem(ctx, "PAUSED", 50000)
	assert.ErrorIs(t, err, ErrNotApplicable)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	in := models.CreateVoucher{
		Code:          "welcome5",
		Type:          models.VoucherTypeProduct,
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 5000,
		UsageLimit:    100,
		StartDate:     voucherNow.UnixMilli(),
		EndDate:       voucherNow.Add(24 * time.Hour).UnixMilli(),
	}
	v, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME5", v.Code, "codes are stored uppercased")
	assert.Equal(t, models.VoucherStatusActive, v.Status)

	in.Code = "Welcome5"
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestCreateValidatesDates(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), models.CreateVoucher{
		Code:      "BACKWARDS",
		StartDate: voucherNow.UnixMilli(),
		EndDate:   voucherNow.Add(-time.Hour).UnixMilli(),
	})
	assert.Error(t, err)
}

func TestSetStatusRejectsExpired(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedVoucher(t, store, models.Voucher{ID: "v1", Code: "X", Status: models.VoucherStatusActive})

	assert.Error(t, svc.SetStatus(ctx, "v1", models.VoucherStatusExpired))
	assert.NoError(t, svc.SetStatus(ctx, "v1", models.VoucherStatusInactive))
}
