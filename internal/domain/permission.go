package domain

import (
	"fmt"
	"strings"
)

// ─── Location Permission ────────────────────────────────────────────────────
// The device-side permission flow, reduced to a state value.
// Unknown → Requested → Granted | Denied, and Denied → Requested to re-prompt.
// Records can only be added while Granted.

// PermissionState is the current location permission.
type PermissionState string

const (
	PermissionUnknown   PermissionState = "unknown"
	PermissionRequested PermissionState = "requested"
	PermissionGranted   PermissionState = "granted"
	PermissionDenied    PermissionState = "denied"
)

var permissionTransitions = map[PermissionState][]PermissionState{
	PermissionUnknown:   {PermissionRequested},
	PermissionRequested: {PermissionGranted, PermissionDenied},
	PermissionDenied:    {PermissionRequested},
}

// ParsePermissionState parses a case-insensitive state name.
func ParsePermissionState(s string) (PermissionState, error) {
	switch st := PermissionState(strings.ToLower(strings.TrimSpace(s))); st {
	case PermissionUnknown, PermissionRequested, PermissionGranted, PermissionDenied:
		return st, nil
	}
	return "", fmt.Errorf("unknown permission state %q", s)
}

// CanTransition reports whether moving from s to next is legal.
func (s PermissionState) CanTransition(next PermissionState) bool {
	for _, allowed := range permissionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next if the move is legal, ErrInvalidTransition otherwise.
func (s PermissionState) Transition(next PermissionState) (PermissionState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// PathTo returns the legal transitions leading from s to target, excluding s.
// Used to apply a configured initial state. Returns nil when s == target and
// ErrInvalidTransition when target is unreachable.
func (s PermissionState) PathTo(target PermissionState) ([]PermissionState, error) {
	if s == target {
		return nil, nil
	}
	// Breadth-first over a four-state graph.
	prev := map[PermissionState]PermissionState{s: ""}
	queue := []PermissionState{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range permissionTransitions[cur] {
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = cur
			if next == target {
				var path []PermissionState
				for at := target; at != s; at = prev[at] {
					path = append([]PermissionState{at}, path...)
				}
				return path, nil
			}
			queue = append(queue, next)
		}
	}
	return nil, fmt.Errorf("%w: %s cannot reach %s", ErrInvalidTransition, s, target)
}
