// Package styling collects named CSS sheets from across the app into a
// single stylesheet the server can emit at /styles.css. Packages
// register their sheets from init functions; output order is sorted by
// name so the served file is deterministic.
package styling

import (
	"sort"
	"strings"
	"sync"
)

type registry struct {
	mu     sync.RWMutex
	sheets map[string]string
}

var global = &registry{sheets: make(map[string]string)}

// Register adds or replaces a named sheet.
func Register(name, css string) {
	if css == "" {
		return
	}
	global.mu.Lock()
	global.sheets[name] = css
	global.mu.Unlock()
}

// CSS returns every registered sheet concatenated in name order, each
// preceded by a comment naming its source.
func CSS() string {
	global.mu.RLock()
	defer global.mu.RUnlock()

	names := make([]string, 0, len(global.sheets))
	for name := range global.sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("/* ")
		b.WriteString(name)
		b.WriteString(" */\n")
		b.WriteString(strings.TrimSpace(global.sheets[name]))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Reset clears all registered sheets, for tests.
func Reset() {
	global.mu.Lock()
	global.sheets = make(map[string]string)
	global.mu.Unlock()
}
