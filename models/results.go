package models

import (
	"time"
)

// Rejection classifies why an operation was declined by policy. Rejections
// are well-formed negative results, not errors: the store did its job, the
// rules said no.
type Rejection string

const (
	RejectionNone                Rejection = ""
	RejectionRestricted          Rejection = "restricted"
	RejectionCooldown            Rejection = "cooldown"
	RejectionInvalidStake        Rejection = "invalid_stake"
	RejectionInsufficientBalance Rejection = "insufficient_balance"
)

// DailyClaimResult is the outcome of a daily reward claim.
type DailyClaimResult struct {
	Claimed    bool
	Rejection  Rejection
	BanReason  *string       // set when Rejection is RejectionRestricted
	Remaining  time.Duration // set when Rejection is RejectionCooldown
	Reward     int64
	NewBalance int64
}

// CoinflipResult is the outcome of a coinflip wager.
type CoinflipResult struct {
	Played     bool
	Rejection  Rejection
	BanReason  *string
	Won        bool
	Stake      int64
	NewBalance int64
}
