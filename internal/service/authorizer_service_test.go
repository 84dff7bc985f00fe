package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/medinasp/easypicpaytest/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientFunc adapts a function to the HTTPClient interface.
type clientFunc func(req *http.Request) (*http.Response, error)

func (f clientFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func authorizerTransaction(t *testing.T) *domain.Transaction {
	t.Helper()
	txn, err := domain.NewTransaction(uuid.New(), uuid.New(), decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	return txn
}

func TestHTTPAuthorizerService_Authorized(t *testing.T) {
	client := clientFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodGet, req.Method)
		return jsonResponse(http.StatusOK, `{"status":"success","data":{"authorization":true,"code":"AUTH-99"}}`), nil
	})
	svc := NewHTTPAuthorizerService("http://authorizer.local/authorize", client, zerolog.Nop())

	result, err := svc.Authorize(context.Background(), authorizerTransaction(t))
	require.NoError(t, err)
	assert.True(t, result.Authorized)
	assert.Equal(t, "AUTH-99", result.Code)
}

func TestHTTPAuthorizerService_AuthorizedWithoutCode(t *testing.T) {
	client := clientFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"status":"success","data":{"authorization":true}}`), nil
	})
	svc := NewHTTPAuthorizerService("http://authorizer.local/authorize", client, zerolog.Nop())

	result, err := svc.Authorize(context.Background(), authorizerTransaction(t))
	require.NoError(t, err)
	assert.True(t, result.Authorized)
	assert.NotEmpty(t, result.Code, "a code is generated when the authorizer omits one")
}

func TestHTTPAuthorizerService_Declined(t *testing.T) {
	client := clientFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusForbidden, `{"status":"fail","data":{"authorization":false}}`), nil
	})
	svc := NewHTTPAuthorizerService("http://authorizer.local/authorize", client, zerolog.Nop())

	result, err := svc.Authorize(context.Background(), authorizerTransaction(t))
	require.NoError(t, err)
	assert.False(t, result.Authorized)
}

func TestHTTPAuthorizerService_TransportError(t *testing.T) {
	client := clientFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial timeout")
	})
	svc := NewHTTPAuthorizerService("http://authorizer.local/authorize", client, zerolog.Nop())

	result, err := svc.Authorize(context.Background(), authorizerTransaction(t))
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestHTTPAuthorizerService_UnexpectedStatus(t *testing.T) {
	client := clientFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{}`), nil
	})
	svc := NewHTTPAuthorizerService("http://authorizer.local/authorize", client, zerolog.Nop())

	result, err := svc.Authorize(context.Background(), authorizerTransaction(t))
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestHTTPAuthorizerService_MalformedPayload(t *testing.T) {
	client := clientFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `not json`), nil
	})
	svc := NewHTTPAuthorizerService("http://authorizer.local/authorize", client, zerolog.Nop())

	result, err := svc.Authorize(context.Background(), authorizerTransaction(t))
	assert.Nil(t, result)
	assert.Error(t, err)
}
