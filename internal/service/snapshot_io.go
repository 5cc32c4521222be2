package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/EfeTurkel/simpofocus/internal/repository"
)

// One blob per component in the snapshot store.
const (
	SnapshotKeyTimer  = "timer"
	SnapshotKeyWallet = "wallet"
	SnapshotKeyMarket = "market"
	SnapshotKeyBank   = "bank"
)

// LoadTimerState reads the timer snapshot from the store. Missing or corrupt
// blobs yield a fresh default state, never an error.
func LoadTimerState(ctx context.Context, repo repository.SnapshotRepo) domain.TimerState {
	var snap domain.TimerSnapshot
	if !loadSnapshot(ctx, repo, SnapshotKeyTimer, &snap) {
		return domain.RestoreTimerState(nil)
	}
	return domain.RestoreTimerState(&snap)
}

// LoadWalletState reads the wallet snapshot from the store.
func LoadWalletState(ctx context.Context, repo repository.SnapshotRepo) domain.WalletState {
	var snap domain.WalletSnapshot
	if !loadSnapshot(ctx, repo, SnapshotKeyWallet, &snap) {
		return domain.RestoreWalletState(nil)
	}
	return domain.RestoreWalletState(&snap)
}

// LoadMarketState reads the market snapshot from the store.
func LoadMarketState(ctx context.Context, repo repository.SnapshotRepo) domain.MarketState {
	var snap domain.MarketSnapshot
	if !loadSnapshot(ctx, repo, SnapshotKeyMarket, &snap) {
		return domain.RestoreMarketState(nil)
	}
	return domain.RestoreMarketState(&snap)
}

// LoadBankState reads the bank snapshot from the store. now seeds the
// cadence clocks when the snapshot is missing.
func LoadBankState(ctx context.Context, repo repository.SnapshotRepo, now time.Time) domain.BankState {
	var snap domain.BankSnapshot
	if !loadSnapshot(ctx, repo, SnapshotKeyBank, &snap) {
		return domain.RestoreBankState(nil, now)
	}
	return domain.RestoreBankState(&snap, now)
}

func loadSnapshot(ctx context.Context, repo repository.SnapshotRepo, key string, out any) bool {
	if repo == nil {
		return false
	}
	blob, err := repo.Load(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal(blob, out) == nil
}

func saveSnapshot(ctx context.Context, repo repository.SnapshotRepo, key string, snap any) error {
	if repo == nil {
		return nil
	}
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding %s snapshot: %w", key, err)
	}
	if err := repo.Save(ctx, key, blob); err != nil {
		return fmt.Errorf("persisting %s snapshot: %w", key, err)
	}
	return nil
}
