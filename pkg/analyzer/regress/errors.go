package regress

import (
	"fmt"
	"strings"
)

// SparseColumn names an input column that is mostly missing.
type SparseColumn struct {
	Name       string
	MissingPct float64
}

// InsufficientDataError reports that too few complete rows survived the lag
// transforms and missing-value drop to fit the requested model.
type InsufficientDataError struct {
	Rows     int
	Required int
	Sparse   []SparseColumn
	MaxLag   int
	Games    int
}

func (e *InsufficientDataError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "only %d usable rows after applying lags and dropping missing values, need at least %d", e.Rows, e.Required)
	if len(e.Sparse) > 0 {
		parts := make([]string, len(e.Sparse))
		for i, c := range e.Sparse {
			parts[i] = fmt.Sprintf("%s (%.0f%% missing)", c.Name, c.MissingPct)
		}
		fmt.Fprintf(&b, "; sparse columns: %s", strings.Join(parts, ", "))
	}
	if e.Games > 0 && e.MaxLag >= e.Games {
		fmt.Fprintf(&b, "; a lag of %d games exceeds the %d games available, reduce the lag or pick variables with more coverage", e.MaxLag, e.Games)
	}
	return b.String()
}
