package app

import "github.com/equitydash/equitydash/internal/guard"

const (
	RootPath      = "/"
	LoginPath     = guard.LoginPath
	DashboardPath = "/dashboard"
)

// Resolve maps a requested path to a known route. The root and any unknown
// path redirect to the dashboard; redirect reports whether that happened.
func Resolve(path string) (route string, redirect bool) {
	switch path {
	case LoginPath, DashboardPath:
		return path, false
	default:
		return DashboardPath, true
	}
}

// History is the navigation stack. The last entry is the current location.
type History struct {
	entries []string
}

// NewHistory creates a history positioned at start
func NewHistory(start string) *History {
	if start == "" {
		start = RootPath
	}
	return &History{entries: []string{start}}
}

// Current returns the current location
func (h *History) Current() string {
	return h.entries[len(h.entries)-1]
}

// Push navigates to path, keeping the current location reachable with Back
func (h *History) Push(path string) {
	h.entries = append(h.entries, path)
}

// Replace swaps the current location for path
func (h *History) Replace(path string) {
	h.entries[len(h.entries)-1] = path
}

// CanGoBack reports whether there is an earlier location
func (h *History) CanGoBack() bool {
	return len(h.entries) > 1
}

// Back returns to the previous location. It reports false when there is none.
func (h *History) Back() bool {
	if !h.CanGoBack() {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

// Entries returns a copy of the stack, oldest first
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// navigate applies a guard redirect
func (h *History) navigate(r guard.Redirect) {
	if r.Replace {
		h.Replace(r.To)
		return
	}
	h.Push(r.To)
}
