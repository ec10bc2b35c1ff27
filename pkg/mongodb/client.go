package mongodb

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client represents a MongoDB client
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

var (
	mu     sync.Mutex
	shared *Client
)

// Connect returns the process-wide client, establishing the connection on
// first use. Calling Connect again is a no-op returning the same client.
func Connect(uri string) (*Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if shared != nil {
		return shared, nil
	}

	client, err := NewClient(uri)
	if err != nil {
		return nil, err
	}
	shared = client
	return shared, nil
}

// NewClient creates a new MongoDB client and verifies the connection
func NewClient(uri string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return nil, err
	}

	return &Client{
		client: client,
	}, nil
}

// Database returns a database
func (c *Client) Database(name string) *mongo.Database {
	if c.db == nil || c.db.Name() != name {
		c.db = c.client.Database(name)
	}
	return c.db
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if shared == c {
		shared = nil
	}
	return c.client.Disconnect(ctx)
}
