package ports

import "context"

// Sequencer runs tasks so that two tasks sharing a key never overlap. It is
// used to serialize state-changing submissions per source wallet: the ledger
// orders transactions by account sequence number, so two submissions built
// from the same stale sequence would reject each other.
type Sequencer interface {
	Do(ctx context.Context, key string, task func(context.Context) error) error
}
