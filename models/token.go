package models

// TokenExchangeRequest is the body of the auth-bridge token endpoint call.
// The session token itself travels in the Authorization header; the body
// only names the application requesting a remote credential.
type TokenExchangeRequest struct {
	AppID string `json:"appId,omitempty"`
}

// TokenExchangeResponse is the 200 payload of the auth-bridge token endpoint.
type TokenExchangeResponse struct {
	RemoteCredential string `json:"remoteCredential"`
}
