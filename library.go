package querygen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kanda123-lab/querygen/engine/models"
	"github.com/kanda123-lab/querygen/pkg/logger"
	"github.com/kanda123-lab/querygen/storage"
	"github.com/kanda123-lab/querygen/storage/mongokv"
	"github.com/kanda123-lab/querygen/storage/rediskv"
)

const savedQueryPrefix = "query:"

// SavedQuery is a named query description kept in a Library.
type SavedQuery struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *models.Description `json:"query"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Query converts the stored description back into a typed statement.
func (s *SavedQuery) Query() (models.Query, error) {
	if s.Description == nil {
		return nil, fmt.Errorf("%w: saved query %s has no description", ErrInvalidQuery, s.ID)
	}
	return s.Description.Query()
}

// ============================================
// LIBRARY
// ============================================

// Library stores query descriptions and renders them on demand.
type Library struct {
	store storage.StorageI
	opts  []Option
	log   logger.LoggerI
}

// NewLibrary creates a Library over store. opts apply to every Render.
func NewLibrary(store storage.StorageI, log logger.LoggerI, opts ...Option) *Library {
	if log == nil {
		log = logger.NewNop()
	}
	return &Library{store: store, opts: opts, log: logger.GetNamed(log, "library")}
}

// ============================================
// CONSTRUCTORS
// ============================================

// WrapRedis wraps a Redis client connection
func WrapRedis(rdb *redis.Client, log logger.LoggerI, opts ...Option) *Library {
	return NewLibrary(rediskv.New(rdb), log, opts...)
}

// WrapMongo wraps a MongoDB database connection
func WrapMongo(db *mongo.Database, collection string, log logger.LoggerI, opts ...Option) *Library {
	return NewLibrary(mongokv.New(db.Collection(collection)), log, opts...)
}

// ============================================
// OPERATIONS
// ============================================

// Save stores q under a new id. dialectName is kept as the default for
// Render and may be empty.
func (l *Library) Save(ctx context.Context, name string, q models.Query, dialectName string) (*SavedQuery, error) {
	desc := models.Describe(q)
	if desc == nil {
		return nil, fmt.Errorf("%w: nothing to save", ErrInvalidQuery)
	}
	desc.Dialect = dialectName

	saved := &SavedQuery{
		ID:          uuid.NewString(),
		Name:        name,
		Description: desc,
		CreatedAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("encode saved query: %w", err)
	}
	if err := l.store.Set(ctx, savedQueryPrefix+saved.ID, data); err != nil {
		l.log.Error("save query", logger.String("id", saved.ID), logger.Error(err))
		return nil, err
	}

	l.log.Info("saved query", logger.String("id", saved.ID), logger.String("name", name))
	return saved, nil
}

// Get loads a saved query. A missing id yields storage.ErrNotFound.
func (l *Library) Get(ctx context.Context, id string) (*SavedQuery, error) {
	data, err := l.store.Get(ctx, savedQueryPrefix+id)
	if err != nil {
		return nil, err
	}
	return decodeSaved(data)
}

// List returns every saved query ordered by id.
func (l *Library) List(ctx context.Context) ([]SavedQuery, error) {
	entries, err := l.store.List(ctx, savedQueryPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]SavedQuery, 0, len(entries))
	for _, entry := range entries {
		saved, err := decodeSaved(entry.Value)
		if err != nil {
			l.log.Warn("skipping unreadable saved query",
				logger.String("key", strings.TrimPrefix(entry.Key, savedQueryPrefix)), logger.Error(err))
			continue
		}
		out = append(out, *saved)
	}
	return out, nil
}

// Delete removes a saved query.
func (l *Library) Delete(ctx context.Context, id string) error {
	if err := l.store.Delete(ctx, savedQueryPrefix+id); err != nil {
		return err
	}
	l.log.Info("deleted query", logger.String("id", id))
	return nil
}

// Render generates SQL for a saved query. An empty dialectName uses the
// dialect recorded at save time.
func (l *Library) Render(ctx context.Context, id, dialectName string) (string, error) {
	saved, err := l.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if dialectName == "" {
		dialectName = saved.Description.Dialect
	}

	gen, err := New(dialectName, append([]Option{WithLogger(l.log)}, l.opts...)...)
	if err != nil {
		return "", err
	}
	q, err := saved.Query()
	if err != nil {
		return "", err
	}
	return gen.GenerateSQL(q)
}

// Close closes the underlying store.
func (l *Library) Close() error {
	return l.store.Close()
}

func decodeSaved(data []byte) (*SavedQuery, error) {
	var saved SavedQuery
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&saved); err != nil {
		return nil, fmt.Errorf("decode saved query: %w", err)
	}
	return &saved, nil
}
