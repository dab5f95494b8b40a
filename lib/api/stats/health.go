package stats

import (
	"context"
	"sort"
)

// Aggregate runs every checker and folds the results into one report. A single
// failing check fails the report; warnings only downgrade a passing one.
func Aggregate(ctx context.Context, serviceID string, checkers []Checker) HealthResponse {
	resp := HealthResponse{
		Status:    StatusPass,
		ServiceID: serviceID,
		Checks:    map[string][]Check{},
	}

	for _, checker := range checkers {
		check := checker.Check(ctx)
		resp.Checks[checker.Name()] = append(resp.Checks[checker.Name()], check)
		resp.Status = worse(resp.Status, check.Status)
	}
	return resp
}

// Merge adds the checks of other to h, prefixing their names with prefix.
func (h HealthResponse) Merge(prefix string, other HealthResponse) HealthResponse {
	if h.Checks == nil {
		h.Checks = map[string][]Check{}
	}
	for name, checks := range other.Checks {
		h.Checks[prefix+name] = append(h.Checks[prefix+name], checks...)
	}
	h.Status = worse(h.Status, other.Status)
	if h.Version == "" {
		h.Version = other.Version
	}
	if h.ReleaseID == "" {
		h.ReleaseID = other.ReleaseID
	}
	return h
}

func (h HealthResponse) Healthy() bool {
	return h.Status != StatusFail
}

// Failed returns the names of the failing checks in a stable order.
func (h HealthResponse) Failed() []string {
	failed := make([]string, 0)
	for name, checks := range h.Checks {
		for _, check := range checks {
			if check.Status == StatusFail {
				failed = append(failed, name)
				break
			}
		}
	}
	sort.Strings(failed)
	return failed
}

func worse(current, next HealthStatus) HealthStatus {
	switch {
	case current == StatusFail || next == StatusFail:
		return StatusFail
	case current == StatusWarn || next == StatusWarn:
		return StatusWarn
	case current == "":
		return next
	}
	return current
}
