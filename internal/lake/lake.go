//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package lake reads and writes the parquet tables that make up the
// Bronze, Silver, and Gold layers of the lakehouse directory tree.
package lake

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// Layer names under the data directory.
const (
	LayerBronze = "bronze"
	LayerSilver = "silver"
	LayerGold   = "gold"
)

// Layout resolves table files inside a lakehouse data directory.
type Layout struct {
	DataDir string
}

// NewLayout creates a layout rooted at dataDir.
func NewLayout(dataDir string) Layout {
	return Layout{DataDir: dataDir}
}

// BronzePath returns the path of a Bronze table file.
func (l Layout) BronzePath(table string) string {
	return filepath.Join(l.DataDir, LayerBronze, table+".parquet")
}

// SilverPath returns the path of a Silver table file.
func (l Layout) SilverPath(table string) string {
	return filepath.Join(l.DataDir, LayerSilver, table+".parquet")
}

// GoldPath returns the path of a Gold table file.
func (l Layout) GoldPath(table string) string {
	return filepath.Join(l.DataDir, LayerGold, table+".parquet")
}

// WriteTable writes rows as a snappy-compressed parquet file, replacing
// any previous snapshot of the table.
func WriteTable[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create table directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// ReadTable reads every row of a parquet table file.
func ReadTable[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("table file not found: %s", path)
	}

	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}
