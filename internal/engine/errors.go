package engine

import (
	"errors"

	"github.com/tartampluch/life-grid/internal/config"
)

// Validation and lookup errors returned by the engine.
var (
	ErrInvalidDate     = errors.New(config.ErrInvalidDate)
	ErrFutureDate      = errors.New(config.ErrFutureDate)
	ErrUnknownViewMode = errors.New(config.ErrUnknownViewMode)
	ErrInvalidDataset  = errors.New(config.ErrInvalidDataset)
	ErrUnknownDataset  = errors.New(config.ErrUnknownDataset)
	ErrNoBirthDate     = errors.New(config.ErrNoBirthDate)
)
