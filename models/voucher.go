package models

// Voucher statuses. Expired is derived at read time from EndDate and is
// never written back to the store.
const (
	VoucherStatusActive   = "active"
	VoucherStatusInactive = "inactive"
	VoucherStatusExpired  = "expired"
)

// Voucher types and discount types.
const (
	VoucherTypeShipping = "shipping"
	VoucherTypeProduct  = "product"

	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Voucher is a discount code. Codes are unique case-insensitively.
// StartDate and EndDate are epoch milliseconds. A voucher is deleted from
// the store outright once UsageCount reaches UsageLimit.
type Voucher struct {
	ID            string `bson:"_id,omitempty" json:"id"`
	Code          string `bson:"code" json:"code"`
	Type          string `bson:"type" json:"type"`
	DiscountType  string `bson:"discountType" json:"discountType"`
	DiscountValue int64  `bson:"discountValue" json:"discountValue"`
	MinOrder      int64  `bson:"minOrder" json:"minOrder"`
	UsageLimit    int    `bson:"usageLimit" json:"usageLimit"`
	UsageCount    int    `bson:"usageCount" json:"usageCount"`
	StartDate     int64  `bson:"startDate" json:"startDate"`
	EndDate       int64  `bson:"endDate" json:"endDate"`
	Status        string `bson:"status" json:"status"`
}

// CreateVoucher is the admin create payload.
type CreateVoucher struct {
	Code          string `json:"code" binding:"required"`
	Type          string `json:"type" binding:"required"`
	DiscountType  string `json:"discountType" binding:"required"`
	DiscountValue int64  `json:"discountValue" binding:"required"`
	MinOrder      int64  `json:"minOrder"`
	UsageLimit    int    `json:"usageLimit" binding:"required"`
	StartDate     int64  `json:"startDate" binding:"required"`
	EndDate       int64  `json:"endDate" binding:"required"`
}
