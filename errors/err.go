package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig     = fmt.Errorf("memorybank: invalid config")
	ErrNotFound          = fmt.Errorf("memorybank: not found")
	ErrInvalidParams     = fmt.Errorf("memorybank: invalid params")
	ErrInternal          = fmt.Errorf("memorybank: internal error")
	ErrDimensionMismatch = fmt.Errorf("memorybank: embedding dimension mismatch")
	ErrEmptyDataset      = fmt.Errorf("memorybank: empty evaluation dataset")
)
