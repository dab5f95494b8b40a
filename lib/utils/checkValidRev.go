package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRev = errors.New("invalid revision")

// CheckValidRev parses a revision given on the command line. Revisions start
// at 0; the upper bound is only known to the server.
func CheckValidRev(rev string) (*int, error) {
	revNum, err := strconv.Atoi(strings.TrimSpace(rev))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidRev, rev)
	}
	if revNum < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrInvalidRev, revNum)
	}
	return &revNum, nil
}
