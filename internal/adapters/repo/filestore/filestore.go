// Package filestore persists the cart and favorites records as JSON files on
// the local disk, one file per device. It is the durable-per-device storage
// the store survives reloads with.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomasrv/modastore/internal/domain"
)

type cartRecord struct {
	Items []domain.CartItem `json:"items"`
}

type favoritesRecord struct {
	IDs []int64 `json:"ids"`
}

type CartRepo struct {
	path string
}

func NewCartRepo(path string) *CartRepo { return &CartRepo{path: path} }

// Load reads the persisted record. A missing file is an empty cart; a corrupt
// one is reported so the caller can log it, but rehydration still starts empty.
func (r *CartRepo) Load(ctx context.Context) ([]domain.CartItem, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var rec cartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt cart record %s: %w", r.path, err)
	}
	return rec.Items, nil
}

func (r *CartRepo) Save(ctx context.Context, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	return writeJSON(r.path, cartRecord{Items: items})
}

type FavoritesRepo struct {
	path string
}

func NewFavoritesRepo(path string) *FavoritesRepo { return &FavoritesRepo{path: path} }

func (r *FavoritesRepo) Load(ctx context.Context) ([]int64, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var rec favoritesRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt favorites record %s: %w", r.path, err)
	}
	return rec.IDs, nil
}

func (r *FavoritesRepo) Save(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	return writeJSON(r.path, favoritesRecord{IDs: ids})
}

// writeJSON replaces the record atomically: a crash mid-write leaves the old
// record intact instead of a truncated one.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
