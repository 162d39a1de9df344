package jwtcreds_test

import (
	"testing"
	"time"

	"marketplace/internal/adapters/out/jwtcreds"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_SignAndVerify_RoundTrip(t *testing.T) {
	signer, err := jwtcreds.NewSigner("integration-test-secret")
	require.NoError(t, err)

	sessionID := kernel.NewUUID()
	credential, err := signer.Sign(sessionID, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, credential)

	verifiedID, err := signer.Verify(credential)
	require.NoError(t, err)
	assert.Equal(t, sessionID, verifiedID)
}

func TestSigner_Verify_ExpiredCredential(t *testing.T) {
	signer, err := jwtcreds.NewSigner("integration-test-secret")
	require.NoError(t, err)

	credential, err := signer.Sign(kernel.NewUUID(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = signer.Verify(credential)
	require.ErrorIs(t, err, errs.ErrExpired)
}

func TestSigner_Verify_WrongSecret(t *testing.T) {
	signer, err := jwtcreds.NewSigner("secret-one")
	require.NoError(t, err)
	other, err := jwtcreds.NewSigner("secret-two")
	require.NoError(t, err)

	credential, err := signer.Sign(kernel.NewUUID(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = other.Verify(credential)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSigner_Verify_GarbageCredential(t *testing.T) {
	signer, err := jwtcreds.NewSigner("integration-test-secret")
	require.NoError(t, err)

	_, err = signer.Verify("not-a-jwt")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewSigner_EmptySecret(t *testing.T) {
	_, err := jwtcreds.NewSigner("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
