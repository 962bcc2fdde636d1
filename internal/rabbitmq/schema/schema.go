package schema

import "encoding/json"

const (
	KindPasswordReset     = "password_reset"
	KindEmailVerification = "email_verification"
)

// OutboundEmail is the message published for every account email waiting to
// be delivered by the mailer worker.
type OutboundEmail struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (m *OutboundEmail) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *OutboundEmail) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
