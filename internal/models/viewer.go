package models

// Viewer is the optional identity of whoever issued a request. The zero value is anonymous.
type Viewer struct {
	username string
	ok       bool
}

// Anonymous returns a viewer with no identity
func Anonymous() Viewer {
	return Viewer{}
}

// AuthenticatedAs returns a viewer identified by username
func AuthenticatedAs(username string) Viewer {
	return Viewer{username: username, ok: true}
}

// Username returns the viewer's username and whether one is present
func (v Viewer) Username() (string, bool) {
	return v.username, v.ok
}

// Authenticated reports whether the viewer has an identity
func (v Viewer) Authenticated() bool {
	return v.ok
}

// Is reports whether the viewer is present and named username
func (v Viewer) Is(username string) bool {
	return v.ok && v.username == username
}

// In reports whether the viewer is present and listed in usernames
func (v Viewer) In(usernames []string) bool {
	if !v.ok {
		return false
	}
	for _, u := range usernames {
		if u == v.username {
			return true
		}
	}
	return false
}
