package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid role")

	ErrBatchNotFound  = errors.New("batch not found")
	ErrInvalidWeight  = errors.New("weight must be greater than zero")
	ErrInvalidStage   = errors.New("invalid processing stage")
	ErrReportNotFound = errors.New("quality report not found")
	ErrReportExists   = errors.New("batch already has a quality report")

	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyOrder       = errors.New("order contains no items")
	ErrBatchAlreadySold = errors.New("batch is already sold")
	ErrBatchNotSellable = errors.New("batch is not listed for sale")
	ErrOrderNotPending  = errors.New("order is no longer pending")

	ErrUploadFailed = errors.New("image upload to storage failed")
	ErrEmptyMessage = errors.New("message must not be empty")
)
