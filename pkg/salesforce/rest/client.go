// Package sfrest provides the synchronous REST surface of the Salesforce
// client: CRUD against sObjects, SOQL queries, describes, and org limits.
//
// All methods share one Session populated by Login. The client does not lock
// around the session: finish Login before sharing a Client across
// goroutines, and serialize any re-login relative to in-flight calls.
package sfrest

import (
	"context"

	"github.com/perchlabs/sforce/pkg/config"
	httpclient "github.com/perchlabs/sforce/pkg/http"
	sfcore "github.com/perchlabs/sforce/pkg/salesforce/core"
	"go.uber.org/zap"
)

// Client is the REST API client. Construct it with New, then call Login
// before any other method.
type Client struct {
	config    *config.Config
	session   *sfcore.Session
	transport *httpclient.Client
	logger    *zap.Logger
	mode      sfcore.DecodeMode
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithLogger replaces the default production logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDecodeMode selects how decoded JSON trees are presented to the caller.
// The mode is client-wide and applies to every call.
func WithDecodeMode(mode sfcore.DecodeMode) Option {
	return func(c *Client) { c.mode = mode }
}

// New creates a REST client for the org described by cfg. The session starts
// empty; every authenticated method fails with *sfcore.NotAuthenticatedError
// until Login succeeds.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		config:  cfg,
		session: &sfcore.Session{},
		mode:    sfcore.DecodeAny,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger, _ = zap.NewProduction()
	}
	c.transport = httpclient.NewClientWithLogger(c.logger)
	return c
}

// Login performs the password-grant exchange and populates the session in
// place, so handles to the session taken before login (e.g. by a bulk
// client) observe the credentials too.
func (c *Client) Login(ctx context.Context) error {
	session, err := sfcore.Login(ctx, c.transport, c.config, c.logger)
	if err != nil {
		return err
	}
	*c.session = *session
	return nil
}

// Session exposes the shared session state, primarily so a bulk client can
// be built on the same login.
func (c *Client) Session() *sfcore.Session {
	return c.session
}
