package hasher

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/satriahrh/muse-relay/domain"
)

// New returns a domain.Hasher backed by SHA‑256.
func New() domain.Hasher { return sha256Hasher{} }

type sha256Hasher struct{}

// Hash digests role, text and attachment of every turn. Fields are NUL
// separated so shifting text between turns changes the digest.
func (h sha256Hasher) Hash(history []domain.ChatMessage) string {
	sum := sha256.New()
	for _, msg := range history {
		sum.Write([]byte(msg.Role()))
		sum.Write([]byte{0})
		sum.Write([]byte(msg.Text))
		sum.Write([]byte{0})
		if msg.Attachment != nil {
			sum.Write([]byte(msg.Attachment.MimeType))
			sum.Write([]byte{0})
			sum.Write(msg.Attachment.Data)
		}
		sum.Write([]byte{0})
	}
	return hex.EncodeToString(sum.Sum(nil))
}
