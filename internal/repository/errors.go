package repository

import "errors"

// ErrUnknownTable is returned when subscribing to a table the repository
// does not manage.
var ErrUnknownTable = errors.New("unknown table name")
