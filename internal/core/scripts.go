package core

// scripts.go collects every user-facing script the agent can be told to
// speak. Keeping them in one file makes them easy to tweak without touching
// the rest of the code.

const (
	// OnboardingScript is spoken to a caller we have never heard from. It
	// asks for their name so the agent can store it via update-name.
	OnboardingScript = "Hello! I don't think we've spoken before. I'm your patient companion. What name should I call you by?"

	// ReturningSymptomGreeting greets a known caller with at least one prior
	// symptom report. Arguments: name, most recent symptom text.
	ReturningSymptomGreeting = "Welcome back %s. Last time we discussed your %s, how do you feel now?"

	// ReturningGreeting greets a known caller with no reports on file.
	// Argument: name.
	ReturningGreeting = "Welcome back %s. How can I help you today?"

	// EscalationAdvisory is attached to an intake result when the same
	// keyword appeared in the immediately preceding report.
	EscalationAdvisory = "You have mentioned a cough two reports in a row. It would be best to schedule an appointment with your doctor so this can be looked at properly. Would you like me to note down an appointment request?"

	// NoSymptomOnFile is returned by the get-symptom webhook when there is
	// nothing on record.
	NoSymptomOnFile = "couldn't find any relevant note"
)

// escalationKeyword is the only symptom keyword the recurrence rule knows
// about. Matching is case-insensitive substring containment.
const escalationKeyword = "cough"
