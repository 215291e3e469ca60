// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package render

// Warnings is an append-only, de-duplicated list of advisory messages kept
// in first-seen order. It is not safe for concurrent use.
type Warnings struct {
	seen map[string]struct{}
	list []string
}

// Add appends every message not already present.
func (w *Warnings) Add(msgs ...string) {
	if w.seen == nil {
		w.seen = make(map[string]struct{})
	}
	for _, m := range msgs {
		if _, ok := w.seen[m]; ok {
			continue
		}
		w.seen[m] = struct{}{}
		w.list = append(w.list, m)
	}
}

// List returns a copy of the collected messages.
func (w *Warnings) List() []string {
	out := make([]string, len(w.list))
	copy(out, w.list)
	return out
}

// Len returns the number of distinct messages.
func (w *Warnings) Len() int { return len(w.list) }
