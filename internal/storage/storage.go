// Package storage provides the key-value persistence layer backing the word store.
package storage

import "context"

// KV is a string key-value store with synchronous get/set semantics.
// There are no transactional guarantees across keys; callers must tolerate
// a crash between writes to different keys.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
