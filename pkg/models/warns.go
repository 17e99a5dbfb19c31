package models

// Warning is a single moderation warning
type Warning struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Reason    string `json:"reason"`
	Moderator string `json:"moderator"`
	// Extra holds caller-supplied fields beyond reason and moderator
	Extra map[string]string `json:"extra,omitempty"`
}

// WarningInput holds the caller-supplied fields of a new warning
type WarningInput struct {
	Reason    string
	Moderator string
	Extra     map[string]string
}

// Clone returns a deep copy of the warning
func (w Warning) Clone() Warning {
	if w.Extra != nil {
		extra := make(map[string]string, len(w.Extra))
		for k, v := range w.Extra {
			extra[k] = v
		}
		w.Extra = extra
	}
	return w
}
