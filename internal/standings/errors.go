package standings

import (
	"errors"
	"fmt"
)

// ErrSuperseded is returned for a request whose result was discarded because a
// newer request started after it.
var ErrSuperseded = errors.New("standings request superseded")

// DataSourceError wraps a failure of the data source during a reload.
type DataSourceError struct {
	Op                 string
	IncludeTournaments bool
	Err                error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s (include tournaments: %t): %v", e.Op, e.IncludeTournaments, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}
