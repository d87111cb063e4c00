package memo

import "jot/internal/auth"

// CanRead decides read access for a single memo. A nil user is an anonymous
// caller. Public memos are readable by anyone; private memos only by their
// owner. The HOST role grants no extra read rights.
func CanRead(m *Memo, u *auth.User) bool {
	if m.Visibility == VisibilityPublic {
		return true
	}
	return u != nil && u.ID == m.CreatorID
}

// CanWrite decides update/archive access. Writes always require a principal;
// the owner may write, and HOST overrides ownership globally.
func CanWrite(m *Memo, u *auth.User) bool {
	if u == nil {
		return false
	}
	return u.ID == m.CreatorID || u.IsHost()
}
