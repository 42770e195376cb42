// Package models defines core data structures for memories, queries, and scored results.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/kioku/internal/decay"
)

// Memory represents one stored memory record supplied by the host application.
// The embedding and the corpus-wide keyword list are caller-owned; nothing in
// this package derives or persists them.
type Memory struct {
	ID           string       `json:"id"`
	Content      string       `json:"content"`
	Keywords     []string     `json:"keywords,omitempty"`
	Embedding    []float64    `json:"embedding,omitempty"`
	Layer        string       `json:"layer,omitempty"`
	Strength     float64      `json:"strength"`
	AccessCount  int          `json:"access_count,omitempty"`
	LastAccessed time.Time    `json:"last_accessed,omitempty"`
	CreatedAt    time.Time    `json:"created_at,omitempty"`
	// Traces is nil for records that predate multi-trace strength.
	Traces *decay.Trace `json:"traces,omitempty"`
}

// Normalize fills zero-value fields with defaults: a fresh UUID for a missing
// ID, the short-term layer, full strength, and CreatedAt for a missing
// LastAccessed timestamp.
func (m *Memory) Normalize() {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Layer == "" {
		m.Layer = decay.LayerShortTerm
	}
	if m.Strength == 0 {
		m.Strength = 1.0
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.LastAccessed.IsZero() {
		m.LastAccessed = m.CreatedAt
	}
}
