package meeting

// IngestMeetingRequest represents the request to ingest a meeting. Either
// transcript or call_id must be set; call_id pulls the transcript from the
// communications API.
type IngestMeetingRequest struct {
	Title         string  `json:"title" validate:"omitempty,max=255"`
	Transcript    string  `json:"transcript,omitempty"`
	CallID        string  `json:"call_id,omitempty" validate:"omitempty,max=255"`
	ClientID      *string `json:"client_id,omitempty" validate:"omitempty,uuid"`
	OpportunityID *string `json:"opportunity_id,omitempty" validate:"omitempty,uuid"`
}
