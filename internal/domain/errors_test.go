package domain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorFormat(t *testing.T) {
	err := NewDomainError("Facade.ModifiedTime", ErrBeforeEpoch, "/tmp/a.wbs")
	want := "Facade.ModifiedTime: /tmp/a.wbs: modification time is before the unix epoch"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDomainErrorFormatNoDetail(t *testing.T) {
	err := NewDomainError("Gateway.Dispatch", ErrRPCMethodNotFound, "")
	want := "Gateway.Dispatch: rpc method not found"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	err := NewDomainError("Facade.ModifiedTime", ErrBeforeEpoch, "")
	if !errors.Is(err, ErrBeforeEpoch) {
		t.Error("errors.Is should match ErrBeforeEpoch")
	}
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CodeBeforeEpoch, de.Code())
}

func TestWrapOpNil(t *testing.T) {
	assert.NoError(t, WrapOp("op", nil))
}

func TestWrapOpPreservesChain(t *testing.T) {
	err := WrapOp("load", ErrConfigLoad)
	assert.EqualError(t, err, "load: failed to load configuration")
	assert.ErrorIs(t, err, ErrConfigLoad)
}

func TestErrorCodeOf_Nil(t *testing.T) {
	assert.Equal(t, CodeOK, ErrorCodeOf(nil))
}

func TestErrorCodeOf_DirectSentinel(t *testing.T) {
	assert.Equal(t, CodeRPCMethodNotFnd, ErrorCodeOf(ErrRPCMethodNotFound))
	assert.Equal(t, CodeGatewayAuth, ErrorCodeOf(ErrGatewayAuthFailed))
}

func TestErrorCodeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrRPCInvalidPayload)
	assert.Equal(t, CodeRPCInvalid, ErrorCodeOf(err))
}

func TestErrorCodeOf_PathError(t *testing.T) {
	_, err := os.ReadFile(filepath.Join(t.TempDir(), "missing.wbs"))
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCodeOf(err))
}

func TestErrorCodeOf_Unknown(t *testing.T) {
	assert.Equal(t, CodeUnknown, ErrorCodeOf(errors.New("disk on fire")))
}
