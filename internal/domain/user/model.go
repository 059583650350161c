package user

// Principal is the authenticated caller as reported by the identity provider.
type Principal struct {
	UserID string
	Email  string
}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}
