package feed

// Tracker remembers the identities and content fingerprints accepted
// during one extraction run. A Tracker must not be shared between runs.
type Tracker struct {
	identities   map[string]struct{}
	fingerprints map[string]struct{}
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		identities:   make(map[string]struct{}),
		fingerprints: make(map[string]struct{}),
	}
}

// IsDuplicateIdentity reports whether the identity token was recorded before.
// An empty token is never a duplicate.
func (t *Tracker) IsDuplicateIdentity(token string) bool {
	if token == "" {
		return false
	}
	_, ok := t.identities[token]
	return ok
}

// RecordIdentity marks the identity token as seen. Empty tokens are ignored.
func (t *Tracker) RecordIdentity(token string) {
	if token == "" {
		return
	}
	t.identities[token] = struct{}{}
}

// IsDuplicateFingerprint reports whether the fingerprint was recorded before.
func (t *Tracker) IsDuplicateFingerprint(fp string) bool {
	_, ok := t.fingerprints[fp]
	return ok
}

// RecordFingerprint marks the fingerprint as seen.
func (t *Tracker) RecordFingerprint(fp string) {
	t.fingerprints[fp] = struct{}{}
}
