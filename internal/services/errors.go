package services

import "errors"

// ErrNoDataFile is returned when a run is started without an input file
var ErrNoDataFile = errors.New("no data file configured")
