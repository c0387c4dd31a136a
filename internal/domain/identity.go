package domain

// Identity is the caller as established by the identity provider.
type Identity struct {
	PlayerID string `json:"playerId"`
	// NameHint is the host platform's display name, used to seed new snapshots.
	NameHint string `json:"nameHint,omitempty"`
}

// AdminOwner marks names registered through the operator bulk upload.
const AdminOwner = "admin"
