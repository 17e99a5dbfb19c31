package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DocumentsCollection holds one Mongo document per store document
const DocumentsCollection = "documents"

const (
	mongoTimeout      = 5 * time.Second
	reconnectInterval = 15 * time.Second
)

// ErrNotConnected is returned by MongoBackend operations while offline
var ErrNotConnected = errors.New("not connected to database")

type storedDocument struct {
	Name      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBackend stores documents in MongoDB. While the database is
// unreachable saves are kept in memory (latest payload per document) and
// written once the connection comes back.
type MongoBackend struct {
	url    string
	dbName string

	mu          sync.RWMutex
	client      *mongo.Client
	collection  *mongo.Collection
	isConnected bool

	reconnectTicker *time.Ticker
	stopReconnect   chan struct{}
	stopOnce        sync.Once

	pendingMu sync.Mutex
	pending   map[string][]byte
}

// NewMongoBackend creates a backend for mongoURL/dbName. Call Connect
// before use.
func NewMongoBackend(mongoURL, dbName string) *MongoBackend {
	return &MongoBackend{
		url:           mongoURL,
		dbName:        dbName,
		stopReconnect: make(chan struct{}),
		pending:       make(map[string][]byte),
	}
}

// Connect establishes the connection. On failure the backend goes offline
// and keeps retrying in the background.
func (m *MongoBackend) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isConnected {
		return nil
	}

	logger.System("Intentando conectar a la base de datos...", "DB")

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(m.url).
		SetServerSelectionTimeout(mongoTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Critical("Fallo al conectar con la base de datos.", "DB")
		m.goOfflineLocked()
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Critical("Fallo al verificar conexión con la base de datos.", "DB")
		_ = client.Disconnect(context.Background())
		m.goOfflineLocked()
		return err
	}

	m.client = client
	m.collection = client.Database(m.dbName).Collection(DocumentsCollection)
	m.isConnected = true

	logger.Success("Conectado exitosamente a la base de datos.", "DB")

	if m.reconnectTicker != nil {
		m.reconnectTicker.Stop()
		m.reconnectTicker = nil
	}

	go m.syncPending()
	return nil
}

// goOfflineLocked marks the backend offline and starts the reconnect loop.
// m.mu must be held.
func (m *MongoBackend) goOfflineLocked() {
	if m.isConnected {
		logger.Warn("Se perdió la conexión con la base de datos. Activando modo offline.", "DB")
	}
	m.isConnected = false

	if m.reconnectTicker != nil {
		return
	}
	ticker := time.NewTicker(reconnectInterval)
	m.reconnectTicker = ticker
	go func() {
		for {
			select {
			case <-ticker.C:
				logger.Info("Intentando reconectar a la base de datos...", "DB")
				if err := m.Connect(); err == nil {
					return
				}
			case <-m.stopReconnect:
				return
			}
		}
	}()
}

func (m *MongoBackend) goOffline() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goOfflineLocked()
}

// Disconnect stops reconnection attempts and closes the client
func (m *MongoBackend) Disconnect() error {
	m.stopOnce.Do(func() { close(m.stopReconnect) })

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reconnectTicker != nil {
		m.reconnectTicker.Stop()
		m.reconnectTicker = nil
	}

	if m.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		return err
	}
	m.client = nil
	m.collection = nil
	m.isConnected = false
	logger.Warn("La base de datos ha sido desconectada", "DB")
	return nil
}

// IsConnected reports whether the last operation reached the database
func (m *MongoBackend) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isConnected
}

// Ping measures the database response time
func (m *MongoBackend) Ping() (time.Duration, error) {
	m.mu.RLock()
	client := m.client
	connected := m.isConnected
	m.mu.RUnlock()

	if !connected || client == nil {
		return 0, ErrNotConnected
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	err := client.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

// GetStatus returns a human readable connection status
func (m *MongoBackend) GetStatus() (string, bool) {
	if _, err := m.Ping(); err != nil {
		return "🔴 | Desconectado", false
	}
	return "🟢 | En linea", true
}

// PendingCount returns how many documents are waiting to be written
func (m *MongoBackend) PendingCount() int {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return len(m.pending)
}

// Load implements Backend. A pending unsynced payload wins over the
// stored one.
func (m *MongoBackend) Load(name string) ([]byte, bool, error) {
	m.pendingMu.Lock()
	if data, ok := m.pending[name]; ok {
		m.pendingMu.Unlock()
		return append([]byte(nil), data...), true, nil
	}
	m.pendingMu.Unlock()

	col := m.currentCollection()
	if col == nil {
		return nil, false, ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	var doc storedDocument
	err := col.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		if isConnectionError(err) {
			m.goOffline()
		}
		return nil, false, fmt.Errorf("load %s: %w", name, err)
	}
	return []byte(doc.Data), true, nil
}

// Save implements Backend. While offline the payload is queued and Save
// reports success.
func (m *MongoBackend) Save(name string, data []byte) error {
	col := m.currentCollection()
	if col == nil {
		m.queue(name, data)
		return nil
	}

	if err := m.write(col, name, data); err != nil {
		if isConnectionError(err) {
			m.goOffline()
			m.queue(name, data)
			return nil
		}
		return fmt.Errorf("save %s: %w", name, err)
	}

	// a successful direct write supersedes anything queued earlier
	m.pendingMu.Lock()
	delete(m.pending, name)
	metrics.PendingWrites.Set(float64(len(m.pending)))
	m.pendingMu.Unlock()
	return nil
}

// String implements Backend
func (m *MongoBackend) String() string {
	return "mongo:" + m.dbName
}

func (m *MongoBackend) currentCollection() *mongo.Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.isConnected {
		return nil
	}
	return m.collection
}

func (m *MongoBackend) write(col *mongo.Collection, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err := col.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$set": bson.M{"data": string(data), "updatedAt": time.Now().UTC()}},
		opts,
	)
	return err
}

func (m *MongoBackend) queue(name string, data []byte) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.pending[name] = append([]byte(nil), data...)
	metrics.PendingWrites.Set(float64(len(m.pending)))
	logger.Warn(fmt.Sprintf("'%s' encolado hasta que vuelva la conexión (%d pendientes)", name, len(m.pending)), "DB-Sync")
}

// syncPending writes every queued document. Failed writes stay queued
// unless a newer payload arrived meanwhile.
func (m *MongoBackend) syncPending() {
	m.pendingMu.Lock()
	if len(m.pending) == 0 {
		m.pendingMu.Unlock()
		return
	}
	batch := make(map[string][]byte, len(m.pending))
	for name, data := range m.pending {
		batch[name] = data
	}
	m.pendingMu.Unlock()

	logger.System(fmt.Sprintf("Sincronizando %d documentos pendientes con la DB...", len(batch)), "DB-Sync")

	col := m.currentCollection()
	if col == nil {
		return
	}

	names := make([]string, 0, len(batch))
	for name := range batch {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := 0
	for _, name := range names {
		data := batch[name]
		if err := m.write(col, name, data); err != nil {
			logger.Error(fmt.Sprintf("Error al sincronizar '%s'. Se reintentará.", name), "DB-Sync")
			failed++
			continue
		}
		m.pendingMu.Lock()
		if current, ok := m.pending[name]; ok && string(current) == string(data) {
			delete(m.pending, name)
		}
		m.pendingMu.Unlock()
	}

	m.pendingMu.Lock()
	metrics.PendingWrites.Set(float64(len(m.pending)))
	m.pendingMu.Unlock()

	if failed > 0 {
		logger.Warn(fmt.Sprintf("%d documentos no pudieron sincronizarse y se reintentarán.", failed), "DB-Sync")
		m.goOffline()
		return
	}
	logger.Success("Sincronización completada exitosamente.", "DB-Sync")
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
