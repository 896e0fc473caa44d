package ports

// Cache is the decision store consumed by the trackers. Implementations make
// no atomicity promise between Get and Put; a lost update costs at most one
// redundant probe, never a wrong terminal verdict.
type Cache interface {
	Get(key string) (value []byte, exists bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
