package club

// Store defines the interface for club and invitation data.
type Store interface {
	Create(c *Club) error
	Get(clubID string) (*Club, error)
	CreateInvitation(inv *Invitation) error
	GetInvitationByToken(token string) (*Invitation, error)
	AcceptInvitation(token string, now int64) (*Invitation, error)
	RevokeInvitation(invitationID string) error
	ListInvitations(clubID string) ([]Invitation, error)
	Clear()
}
