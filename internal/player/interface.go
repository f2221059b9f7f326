package player

// Store defines the interface for player account data.
type Store interface {
	Create(p *Player) error
	Get(playerID string) (*Player, error)
	GetByEmail(email string) (*Player, error)
	CompleteOnboarding(playerID string, profile OnboardingProfile) error
	SetClub(playerID, clubID string) error
	ByClub(clubID string) ([]Player, error)
	Clear()
}
