// Package queue defines the message payloads exchanged over the broker and
// the background consumer that records signed contracts.
package queue

// ContractQueueName is the durable queue carrying contract.signed events.
const ContractQueueName = "contract.signed"

// ContractSignedEvent is published when an artist signs their contract. It
// carries enough detail for downstream consumers to log or notify without
// querying the primary database.
type ContractSignedEvent struct {
	ContractID    int64  `json:"contract_id"`
	ArtistID      int64  `json:"artist_id"`
	ArtistName    string `json:"artist_name"`
	FestivalID    int64  `json:"festival_id"`
	SignatureName string `json:"signature_name,omitempty"`
	SignedAt      string `json:"signed_at"`
}
