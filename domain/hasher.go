package domain

// Hasher fingerprints a conversation so identical requests can be
// correlated in logs without logging their text.
type Hasher interface {
	Hash(history []ChatMessage) string
}
