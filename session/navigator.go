package session

// Navigator receives the navigation side effects of the session lifecycle:
// the default authenticated route after sign-in, and the sign-in route
// (carrying a human-readable message) after sign-out or an unrecoverable
// authentication failure. The rendering layer decides what a "route" means;
// the CLI prints, a UI would redirect.
type Navigator interface {
	ToHome()
	ToSignIn(message string)
}

// NopNavigator ignores all navigation events.
type NopNavigator struct{}

var _ Navigator = NopNavigator{}

func (NopNavigator) ToHome() {}

func (NopNavigator) ToSignIn(string) {}
