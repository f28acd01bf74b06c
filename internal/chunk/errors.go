package chunk

import (
	"errors"
	"fmt"
)

// Error kinds. Callers check these with errors.Is; the specific sentinels
// below wrap ErrValidation so a single Is covers the whole family.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("chunk not found")
	ErrCycle      = errors.New("dependency cycle")
)

// Validation sentinels. Each wraps ErrValidation.
var (
	ErrTitleRequired     = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidDifficulty = fmt.Errorf("%w: difficulty must be %d-%d", ErrValidation, MinDifficulty, MaxDifficulty)
	ErrSelfDependency    = fmt.Errorf("%w: chunk cannot depend on itself", ErrValidation)
	ErrDuplicateEdge     = fmt.Errorf("%w: dependency already exists", ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: invalid status", ErrValidation)
)

// Config errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDBPathEmpty        = errors.New("db_path cannot be empty")
)
