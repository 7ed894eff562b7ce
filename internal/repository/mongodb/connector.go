package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// OnConnectFunc runs once right after a new client has been connected.
type OnConnectFunc func(ctx context.Context, client *mongo.Client) error

// Connector opens a single MongoDB client on first use and hands the same
// client to every caller for the rest of the process lifetime.
type Connector struct {
	uri       string
	timeout   time.Duration
	onConnect OnConnectFunc

	mu     sync.Mutex
	client *mongo.Client
}

// NewConnector creates a connector. No connection is made until Client is called.
func NewConnector(uri string, timeout time.Duration, onConnect OnConnectFunc) *Connector {
	return &Connector{
		uri:       uri,
		timeout:   timeout,
		onConnect: onConnect,
	}
}

// Client returns the memoized client, connecting if there is none yet.
func (c *Connector) Client(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	if c.onConnect != nil {
		if err := c.onConnect(connectCtx, client); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}

	c.client = client
	return client, nil
}

// Connected reports whether a client has been opened.
func (c *Connector) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

// Disconnect closes the client if one was opened. Safe to call more than once.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}

	err := c.client.Disconnect(ctx)
	c.client = nil
	if err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
