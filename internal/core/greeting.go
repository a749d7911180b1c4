package core

import (
	"fmt"

	"patient-companion/pkg"
)

// ComposeGreeting decides the opening utterance for a resolved caller. It is
// pure: lastSymptom must already be fetched (empty when there is no report
// on file) and no other personalization rules exist.
func ComposeGreeting(identity pkg.ResolvedIdentity, lastSymptom string) string {
	if identity.IsNew {
		return OnboardingScript
	}
	if lastSymptom != "" {
		return fmt.Sprintf(ReturningSymptomGreeting, identity.Name, lastSymptom)
	}
	return fmt.Sprintf(ReturningGreeting, identity.Name)
}
