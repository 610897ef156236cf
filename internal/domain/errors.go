package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrBillExpired          = errors.New("bill has expired")
	ErrInvalidBillMode      = errors.New("bill mode must be single or multi")
	ErrInvalidSplitType     = errors.New("invalid split type")
	ErrInvalidSplitValue    = errors.New("split value must be positive")
	ErrSplitExceedsQuantity = errors.New("quantity split exceeds item quantity")
	ErrInvalidChargeType    = errors.New("invalid charge type")
	ErrInvalidDistribution  = errors.New("invalid tax distribution type")
	ErrInvalidCustomData    = errors.New("custom distribution data does not decode")
	ErrParticipantNotOnBill = errors.New("participant does not belong to this bill")
	ErrReceiptNotOnBill     = errors.New("receipt does not belong to this bill")
	ErrExportUploadFailed   = errors.New("export upload to storage failed")
)
