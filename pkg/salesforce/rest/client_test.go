package sfrest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/perchlabs/sforce/pkg/config"
	sfcore "github.com/perchlabs/sforce/pkg/salesforce/core"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// capturedRequest is the last request the fake org received, minus the login
// exchange.
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type RESTSuite struct {
	suite.Suite
	srv     *httptest.Server
	client  *Client
	last    *capturedRequest
	respond func(w http.ResponseWriter, r *http.Request)
}

func TestRESTSuite(t *testing.T) {
	suite.Run(t, new(RESTSuite))
}

func (s *RESTSuite) SetupTest() {
	s.last = nil
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}

	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/services/oauth2/token" {
			fmt.Fprintf(w, `{"access_token":"tok-123","instance_url":%q}`, s.srv.URL)
			return
		}
		body, _ := io.ReadAll(r.Body)
		s.last = &capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		}
		s.respond(w, r)
	}))

	cfg := &config.Config{
		LoginURL:     s.srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Username:     "user@example.com",
		Password:     "hunter2",
		APIVersion:   "62.0",
	}
	s.client = New(cfg, WithLogger(zap.NewNop()))
	s.Require().NoError(s.client.Login(context.Background()))
}

func (s *RESTSuite) TearDownTest() {
	s.srv.Close()
}

func (s *RESTSuite) TestCreateRecord() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}

	result, err := s.client.Create(context.Background(), "Account", map[string]interface{}{"Name": "Acme"})
	s.Require().NoError(err)

	s.Equal(http.MethodPost, s.last.Method)
	s.Equal("/services/data/v62.0/sobjects/Account", s.last.Path)
	s.Equal("Bearer tok-123", s.last.Header.Get("Authorization"))
	s.Equal("application/json", s.last.Header.Get("Content-Type"))
	s.JSONEq(`{"Name":"Acme"}`, string(s.last.Body))

	// 201 with an empty body is synthesized as {"success": true}.
	s.Equal(http.StatusCreated, result.StatusCode)
	data := result.Data.(map[string]interface{})
	s.Equal(true, data["success"])
}

func (s *RESTSuite) TestFailsFastBeforeLogin() {
	fresh := New(s.client.config, WithLogger(zap.NewNop()))

	_, err := fresh.Create(context.Background(), "Account", map[string]interface{}{"Name": "Acme"})

	var notAuth *sfcore.NotAuthenticatedError
	s.Require().ErrorAs(err, &notAuth)
	s.Nil(s.last, "no request may reach the network before login")
}

func (s *RESTSuite) TestGetObjectMetadataWithSince() {
	since := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	_, err := s.client.GetObjectMetadata(context.Background(), "Contact", false, &since)
	s.Require().NoError(err)

	s.Equal(http.MethodGet, s.last.Method)
	s.Equal("/services/data/v62.0/sobjects/Contact", s.last.Path)
	s.Equal("Sat, 14 Mar 2026 09:26:53 GMT", s.last.Header.Get("If-Modified-Since"))
}

func (s *RESTSuite) TestGetObjectMetadataAllUsesDescribe() {
	_, err := s.client.GetObjectMetadata(context.Background(), "Contact", true, nil)
	s.Require().NoError(err)

	s.Equal("/services/data/v62.0/sobjects/Contact/describe/", s.last.Path)
	s.Empty(s.last.Header.Get("If-Modified-Since"))
}

func (s *RESTSuite) TestNotModifiedIsNotAnError() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}

	since := time.Now().UTC()
	result, err := s.client.GetObjectMetadata(context.Background(), "Contact", false, &since)
	s.Require().NoError(err)

	data := result.Data.(map[string]interface{})
	s.Equal("not modified", data["message"])
}

func (s *RESTSuite) TestGetRestrictsFields() {
	_, err := s.client.Get(context.Background(), "Account", "001x0", "Id", "Name")
	s.Require().NoError(err)

	s.Equal(http.MethodGet, s.last.Method)
	s.Equal("/services/data/v62.0/sobjects/Account/001x0", s.last.Path)
	s.Equal("Id,Name", s.last.Query.Get("fields"))
	s.Empty(s.last.Body)
}

func (s *RESTSuite) TestUpdateAndDelete() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	result, err := s.client.Update(context.Background(), "Account", "001x0", map[string]interface{}{"Name": "New"})
	s.Require().NoError(err)
	s.Equal(http.MethodPatch, s.last.Method)
	s.Equal("/services/data/v62.0/sobjects/Account/001x0", s.last.Path)
	s.Equal(true, result.Data.(map[string]interface{})["success"])

	result, err = s.client.Delete(context.Background(), "Account", "001x0")
	s.Require().NoError(err)
	s.Equal(http.MethodDelete, s.last.Method)
	s.Empty(s.last.Body)
	s.Equal(true, result.Data.(map[string]interface{})["success"])
}

func (s *RESTSuite) TestQuerySetsQParam() {
	_, err := s.client.Query(context.Background(), "SELECT Id FROM Account")
	s.Require().NoError(err)

	s.Equal("/services/data/v62.0/query/", s.last.Path)
	s.Equal("SELECT Id FROM Account", s.last.Query.Get("q"))
}

func (s *RESTSuite) TestQueryAllUsesQueryAllPath() {
	_, err := s.client.QueryAll(context.Background(), "SELECT Id FROM Account")
	s.Require().NoError(err)

	s.Equal("/services/data/v62.0/queryAll/", s.last.Path)
	s.Equal("SELECT Id FROM Account", s.last.Query.Get("q"))
}

func (s *RESTSuite) TestExplainReplacesQ() {
	_, err := s.client.Explain(context.Background(), "SELECT Id FROM Account")
	s.Require().NoError(err)

	s.Equal("/services/data/v62.0/query/", s.last.Path)
	s.Equal("SELECT Id FROM Account", s.last.Query.Get("explain"))
	s.False(s.last.Query.Has("q"), "explain replaces query execution")
}

func (s *RESTSuite) TestQueryWithExtraOptions() {
	_, err := s.client.QueryWith(context.Background(), "SELECT Id FROM Account", QueryOptions{"batchSize": 200}, false, false)
	s.Require().NoError(err)

	s.Equal("SELECT Id FROM Account", s.last.Query.Get("q"))
	s.Equal("200", s.last.Query.Get("batchSize"))
}

func (s *RESTSuite) TestQueryMoreFollowsNextRecordsURL() {
	_, err := s.client.QueryMore(context.Background(), "/services/data/v62.0/query/01gxx-2000")
	s.Require().NoError(err)

	s.Equal("/services/data/v62.0/query/01gxx-2000", s.last.Path)
	s.Equal("Bearer tok-123", s.last.Header.Get("Authorization"))
}

func (s *RESTSuite) TestAPIErrorCarriesPlatformMessage() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `[{"message":"The requested resource does not exist","errorCode":"NOT_FOUND"}]`)
	}

	_, err := s.client.Get(context.Background(), "Account", "gone")

	var apiErr *sfcore.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusNotFound, apiErr.StatusCode)
	s.Equal("The requested resource does not exist", apiErr.Message)
	s.Contains(apiErr.URL, "/sobjects/Account/gone")
}

func (s *RESTSuite) TestDecodeRecordMode() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"totalSize":1,"done":true,"records":[{"Id":"001x0","Name":"Acme"}]}`)
	}

	rc := New(s.client.config, WithLogger(zap.NewNop()), WithDecodeMode(sfcore.DecodeRecord))
	s.Require().NoError(rc.Login(context.Background()))

	result, err := rc.Query(context.Background(), "SELECT Id, Name FROM Account")
	s.Require().NoError(err)

	rec, ok := result.Record()
	s.Require().True(ok)
	s.True(rec.Bool("done"))
	s.Equal("Acme", rec.Records("records")[0].String("Name"))
}

func (s *RESTSuite) TestLimitsAndSObjectsPaths() {
	_, err := s.client.Limits(context.Background())
	s.Require().NoError(err)
	s.Equal("/services/data/v62.0/limits/", s.last.Path)

	_, err = s.client.SObjects(context.Background())
	s.Require().NoError(err)
	s.Equal("/services/data/v62.0/sobjects/", s.last.Path)

	_, err = s.client.Resources(context.Background())
	s.Require().NoError(err)
	s.Equal("/services/data/v62.0/", s.last.Path)
}
