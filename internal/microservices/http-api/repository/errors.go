package repository

import "errors"

// ErrNotFound is returned by write operations that matched no rows. Reads go
// through gorm and surface gorm.ErrRecordNotFound instead.
var ErrNotFound = errors.New("record not found")
