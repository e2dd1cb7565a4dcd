// ABOUTME: Identity function deriving the stable article identifier
// ABOUTME: The digest over (url, title) is the dedup and upsert key everywhere

package identity

import (
	"crypto/md5"
	"encoding/hex"
)

// ArticleID returns the deterministic identifier for an article: the md5
// hex digest over the (url, title) pair. A NUL separator keeps the pair
// boundary unambiguous, so ("a/", "1T") and ("a/1", "T") cannot collide.
// Collision resistance is not security-critical here, only uniqueness
// across the corpus. Either argument may be empty.
func ArticleID(url, title string) string {
	sum := md5.Sum([]byte(url + "\x00" + title))
	return hex.EncodeToString(sum[:])
}
