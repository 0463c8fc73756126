package service

// Viewer is the opaque "current viewer" the authentication layer hands to
// the services: either anonymous (zero value) or an authenticated user with
// their role flags. The services never touch credentials.
type Viewer struct {
	UserID        uint
	Authenticated bool
	IsStaff       bool
	IsSuperuser   bool
}

// Anonymous is the viewer for unauthenticated requests.
var Anonymous = Viewer{}

// privileged reports whether the viewer holds a staff or superuser role.
func (v Viewer) privileged() bool {
	return v.IsStaff || v.IsSuperuser
}
