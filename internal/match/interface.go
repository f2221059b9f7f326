package match

// Store defines the interface for persisting and querying match records.
type Store interface {
	Upsert(rec *Record) error
	Get(recordID string) (*Record, error)
	ByPlayer(playerID string, order Order, limit int) ([]*Record, error)
	ByClub(clubID string) ([]*Record, error)
	AttachVideo(recordID, key, url string) error
	ForProcessing() ([]*Record, error)
	UpdateProcessingStatus(recordID string, status ProcessingStatus) error
	Delete(recordID string)
	Clear()
}
