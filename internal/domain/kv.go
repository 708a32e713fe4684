package domain

import "context"

// Keys under which the user store keeps its blobs.
const (
	UsersKey       = "liftit_users"
	CurrentUserKey = "liftit_current_user"
	SessionsKey    = "liftit_sessions"
)

// KVStore is the port for whole-blob key-value persistence. Get reports
// ok=false for absent keys; Delete of an absent key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
