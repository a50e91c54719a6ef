package application

import "errors"

var (
	ErrResumeRequired = errors.New("resume file is required")
	ErrDuplicateOrder = errors.New("order id already recorded")
	ErrGateway        = errors.New("payment gateway request failed")
	ErrStorage        = errors.New("application storage failed")
)
