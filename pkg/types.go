package pkg

import "time"

// PlaceholderName is stored for a caller we have not been introduced to yet.
// The agent replaces it via the update-name webhook once the caller gives
// their name.
const PlaceholderName = "new caller"

// Caller is the identity record for a phone-number-identified end user.
// The phone number is the natural key; records are never deleted.
type Caller struct {
	PhoneNumber string    `bson:"phone_number" json:"phone_number"`
	Name        string    `bson:"name" json:"name"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// SymptomReport is one reported symptom occurrence. Reports are append-only;
// the history for a caller is ordered by created_at, most recent first. The
// phone number may be empty when the agent could not resolve the caller.
type SymptomReport struct {
	Symptom     string    `bson:"symptom" json:"symptom"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// TemperatureReading is a write-only reading reported during a call.
type TemperatureReading struct {
	Value       float64   `bson:"value" json:"value"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Appointment is a free-text scheduling request; write-only.
type Appointment struct {
	Note        string    `bson:"note" json:"note"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// ResolvedIdentity is the outcome of mapping a phone number to a Caller.
type ResolvedIdentity struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	IsNew       bool   `json:"is_new"`
}

// IntakeResult reports the outcome of a symptom intake. Escalate is set when
// the recurrence rule fired; Advisory then carries the script the agent
// should speak.
type IntakeResult struct {
	Escalate bool   `json:"escalate"`
	Advisory string `json:"advisory,omitempty"`
}

// InitRequest is the body of the conversation-init webhook.
type InitRequest struct {
	CallerID string `json:"caller_id"`
}

// AgentOverride carries the opening utterance the agent should speak.
type AgentOverride struct {
	FirstMessage string `json:"first_message"`
}

// ConversationOverride is the script-override block of the init response.
type ConversationOverride struct {
	Agent AgentOverride `json:"agent"`
}

// InitResponse is returned from the conversation-init webhook. The dynamic
// variables personalize the agent's templates; the override replaces its
// first message with the composed greeting.
type InitResponse struct {
	DynamicVariables map[string]string     `json:"dynamic_variables"`
	ConfigOverride   *ConversationOverride `json:"conversation_config_override,omitempty"`
}

// SymptomRequest is the body of the take-symptom webhook.
type SymptomRequest struct {
	Symptom  string `json:"symptom"`
	CallerID string `json:"caller_id,omitempty"`
}

// TemperatureRequest is the body of the take-temperature webhook.
type TemperatureRequest struct {
	Temperature float64 `json:"temperature"`
	CallerID    string  `json:"caller_id,omitempty"`
}

// AppointmentRequest is the body of the schedule-appointment webhook.
type AppointmentRequest struct {
	Note     string `json:"note"`
	CallerID string `json:"caller_id,omitempty"`
}

// NameRequest is the body of the update-name webhook.
type NameRequest struct {
	CallerID string `json:"caller_id"`
	Name     string `json:"name"`
}

// SearchRequest is the body of the free-text search webhook.
type SearchRequest struct {
	SearchQuery string `json:"search_query"`
}

// SearchResponse carries the relayed answer verbatim.
type SearchResponse struct {
	Result string `json:"result"`
}

// NoteResponse is returned from the get-symptom webhook.
type NoteResponse struct {
	Note string `json:"note"`
}

// StatusResponse is the uniform outcome payload for write webhooks. Status
// is "success" or "error"; the underlying cause of an error is logged, never
// returned. Advisory is present only when an intake escalated.
type StatusResponse struct {
	Status   string `json:"status"`
	Advisory string `json:"advisory,omitempty"`
}
