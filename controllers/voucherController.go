package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"glowstore/backend/models"
	"glowstore/backend/realtime"
	"glowstore/backend/vouchers"
)

// GetVouchers lists all vouchers with derived statuses.
func GetVouchers(c *gin.Context) {
	list, err := voucherSvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read vouchers"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateVoucher adds a new voucher.
func CreateVoucher(c *gin.Context) {
	var in models.CreateVoucher
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := voucherSvc.Create(c.Request.Context(), in)
	if errors.Is(err, vouchers.ErrCodeTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Voucher code already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, v)
}

type voucherStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetVoucherStatus toggles a voucher between active and inactive.
func SetVoucherStatus(c *gin.Context) {
	var req voucherStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := voucherSvc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, realtime.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voucher updated"})
}

// DeleteVoucher removes a voucher.
func DeleteVoucher(c *gin.Context) {
	if err := voucherSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete voucher"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voucher deleted"})
}

type redeemVoucherRequest struct {
	Code       string `json:"code" binding:"required"`
	OrderTotal int64  `json:"orderTotal"`
}

// RedeemVoucher validates a code against an order total and consumes one
// use. An exhausted voucher disappears entirely.
func RedeemVoucher(c *gin.Context) {
	var req redeemVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := voucherSvc.Redeem(c.Request.Context(), req.Code, req.OrderTotal)
	if errors.Is(err, realtime.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		return
	}
	if errors.Is(err, vouchers.ErrNotApplicable) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem voucher"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":          v.Code,
		"discountType":  v.DiscountType,
		"discountValue": v.DiscountValue,
	})
}
