package builder

// ─────────────────────────────────────────────────────────────
// RemovalGate — two-phase section deletion
// ─────────────────────────────────────────────────────────────

// RemovalGate models the "request removal, then confirm" flow as a small
// state machine: Idle or PendingConfirmation(id). Exactly one removal can
// be pending at a time; a new request while pending replaces the old one.
// The zero value is an idle gate.
type RemovalGate struct {
	pendingID string
}

// Request marks a section as pending removal.
func (g *RemovalGate) Request(id string) {
	g.pendingID = id
}

// Pending returns the section awaiting confirmation, if any.
func (g *RemovalGate) Pending() (string, bool) {
	return g.pendingID, g.pendingID != ""
}

// Confirm clears the gate and returns the section ID to remove.
// Returns ok=false when nothing was pending.
func (g *RemovalGate) Confirm() (string, bool) {
	id := g.pendingID
	g.pendingID = ""
	return id, id != ""
}

// Cancel returns the gate to idle without removing anything.
func (g *RemovalGate) Cancel() {
	g.pendingID = ""
}
