package adapter

import (
	"context"

	"github.com/pkalugin/ironlog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// DocumentClient is the remote document backend as the sync engine sees it.
// Documents live at users/{userId}/{collection}/{documentId}; the engine has
// no knowledge of the transport beyond this contract.
type DocumentClient interface {
	// Upsert merge-writes doc at the given address: fields absent from doc
	// are left untouched on the remote so concurrent remote fields are not
	// clobbered. Replaying the same upsert is idempotent.
	Upsert(ctx context.Context, userID string, collection models.Collection, documentID string, doc models.Document) error

	// Delete removes the document at the given address. Deleting an absent
	// document is not an error.
	Delete(ctx context.Context, userID string, collection models.Collection, documentID string) error

	// QueryNewer returns every document in the collection whose
	// _lastModified field exceeds since (epoch milliseconds).
	QueryNewer(ctx context.Context, userID string, collection models.Collection, since int64) ([]models.Document, error)
}

// CredentialSource exposes the "current remote credential, or none"
// capability. How credentials are minted is out of scope; the sync engine
// only asks whether one is available right now.
type CredentialSource interface {
	// Credential returns the current remote credential. ok is false when
	// none is available, which the engine treats as a skip, not an error.
	Credential(ctx context.Context) (credential string, ok bool)
}

// ConnectivityProbe reports whether the network currently looks reachable.
type ConnectivityProbe interface {
	Online(ctx context.Context) bool
}
