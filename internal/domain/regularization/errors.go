package regularization

import "errors"

var (
	ErrRegularizationNotFound         = errors.New("regularization request not found")
	ErrRegularizationAlreadyProcessed = errors.New("regularization request already processed")
)
