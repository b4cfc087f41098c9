// Package vouchers manages discount codes. Expiry is a view-time fact:
// a voucher whose end date has passed reports itself as expired, but the
// stored status field keeps whatever the admin last set.
package vouchers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
)

var (
	ErrCodeTaken     = errors.New("vouchers: code already exists")
	ErrNotApplicable = errors.New("vouchers: voucher not applicable")
)

// Service reads and writes the vouchers collection through the event store.
type Service struct {
	store realtime.Store
	now   func() time.Time
}

func NewService(store realtime.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// EffectiveStatus derives the status a reader should see. Only the
// expired state is derived; active/inactive pass through as stored.
func EffectiveStatus(v models.Voucher, now time.Time) string {
	if v.EndDate > 0 && v.EndDate < now.UnixMilli() {
		return models.VoucherStatusExpired
	}
	return v.Status
}

// List returns all vouchers with derived statuses, newest start date
// first. Malformed documents are skipped with a warning.
func (s *Service) List(ctx context.Context) ([]models.Voucher, error) {
	snap, err := s.store.Get(ctx, config.ColVouchers)
	if err != nil {
		return nil, err
	}
	now := s.now()

	vouchers := make([]models.Voucher, 0, len(snap))
	for id, raw := range snap {
		var v models.Voucher
		if err := bson.Unmarshal(raw, &v); err != nil {
			logger.L().Warnf("vouchers: skipping malformed voucher %s: %v", id, err)
			continue
		}
		v.ID = id
		v.Status = EffectiveStatus(v, now)
		vouchers = append(vouchers, v)
	}

	sort.SliceStable(vouchers, func(i, j int) bool {
		if vouchers[i].StartDate == vouchers[j].StartDate {
			return vouchers[i].ID < vouchers[j].ID
		}
		return vouchers[i].StartDate > vouchers[j].StartDate
	})
	return vouchers, nil
}

// Create stores a new voucher in the active state. Codes are unique
// case-insensitively and stored uppercased.
func (s *Service) Create(ctx context.Context, in models.CreateVoucher) (models.Voucher, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return models.Voucher{}, errors.New("vouchers: code must not be empty")
	}
	if in.EndDate <= in.StartDate {
		return models.Voucher{}, errors.New("vouchers: end date must be after start date")
	}

	if existing, err := s.FindByCode(ctx, code); err == nil && existing.ID != "" {
		return models.Voucher{}, ErrCodeTaken
	} else if err != nil && !errors.Is(err, realtime.ErrNotFound) {
		return models.Voucher{}, err
	}

	v := models.Voucher{
		ID:            uuid.NewString(),
		Code:          code,
		Type:          in.Type,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		MinOrder:      in.MinOrder,
		UsageLimit:    in.UsageLimit,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Status:        models.VoucherStatusActive,
	}
	if err := s.store.Write(ctx, config.ColVouchers, v.ID, v); err != nil {
		return models.Voucher{}, err
	}
	return v, nil
}

// FindByCode looks a voucher up case-insensitively. The derived status is
// applied to the returned value.
func (s *Service) FindByCode(ctx context.Context, code string) (models.Voucher, error) {
	snap, err := s.store.Get(ctx, config.ColVouchers)
	if err != nil {
		return models.Voucher{}, err
	}
	want := strings.ToUpper(strings.TrimSpace(code))

	for id, raw := range snap {
		var v models.Voucher
		if err := bson.Unmarshal(raw, &v); err != nil {
			continue
		}
		if strings.ToUpper(v.Code) == want {
			v.ID = id
			v.Status = EffectiveStatus(v, s.now())
			return v, nil
		}
	}
	return models.Voucher{}, realtime.ErrNotFound
}

// SetStatus flips a voucher between active and inactive. The expired
// state cannot be stored: it exists only as a derived view.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if status != models.VoucherStatusActive && status != models.VoucherStatusInactive {
		return fmt.Errorf("vouchers: cannot set status %q", status)
	}
	return s.store.Update(ctx, config.ColVouchers, id, map[string]interface{}{"status": status})
}

// Delete removes a voucher outright.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Remove(ctx, config.ColVouchers, id)
}

// Redeem validates a voucher against an order total and consumes one use.
// Consuming the final use hard-deletes the voucher: it disappears from
// the store along with its usage history.
func (s *Service) Redeem(ctx context.Context, code string, orderTotal int64) (models.Voucher, error) {
	v, err := s.FindByCode(ctx, code)
	if err != nil {
		return models.Voucher{}, err
	}
	now := s.now()

	switch {
	case EffectiveStatus(v, now) != models.VoucherStatusActive:
		return models.Voucher{}, fmt.Errorf("%w: status is %s", ErrNotApplicable, EffectiveStatus(v, now))
	case v.StartDate > now.UnixMilli():
		return models.Voucher{}, fmt.Errorf("%w: not started yet", ErrNotApplicable)
	case v.UsageLimit > 0 && v.UsageCount >= v.UsageLimit:
		return models.Voucher{}, fmt.Errorf("%w: usage limit reached", ErrNotApplicable)
	case orderTotal < v.MinOrder:
		return models.Voucher{}, fmt.Errorf("%w: order total below minimum %d", ErrNotApplicable, v.MinOrder)
	}

	v.UsageCount++
	if v.UsageLimit > 0 && v.UsageCount >= v.UsageLimit {
		logger.L().Warnf("vouchers: %s exhausted after %d uses, deleting with its history", v.Code, v.UsageCount)
		if err := s.store.Remove(ctx, config.ColVouchers, v.ID); err != nil {
			return models.Voucher{}, err
		}
		return v, nil
	}
	if err := s.store.Update(ctx, config.ColVouchers, v.ID, map[string]interface{}{"usageCount": v.UsageCount}); err != nil {
		return models.Voucher{}, err
	}
	return v, nil
}
