// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "ironlog-dev"
	testSignKey = "test-sign-key"
)

func TestSessionToken_Roundtrip(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, "u1", time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateSessionToken(token, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	_, err := GenerateSessionToken("", "u1", time.Hour, testSignKey)
	assert.Error(t, err)

	_, err = GenerateSessionToken(testIssuer, "u1", 0, testSignKey)
	assert.Error(t, err)

	_, err = GenerateSessionToken(testIssuer, "u1", time.Hour, "")
	assert.Error(t, err)
}

func TestValidateSessionToken_WrongKey(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, "u1", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateSessionToken_WrongIssuer(t *testing.T) {
	token, err := GenerateSessionToken("someone-else", "u1", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, "u1", -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateSessionToken_Garbage(t *testing.T) {
	_, err := ValidateSessionToken("not-a-jwt", testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateSessionToken_AnyIssuerWhenUnset(t *testing.T) {
	token, err := GenerateSessionToken("whoever", "u1", time.Hour, testSignKey)
	require.NoError(t, err)

	userID, err := ValidateSessionToken(token, testSignKey, "")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}
