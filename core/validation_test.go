package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProgram() *Program {
	return &Program{
		Slug:        "calfresh-online",
		Name:        "CalFresh Online",
		Description: "Apply for monthly food benefits online.",
		Categories:  []string{"food"},
		Areas:       []string{"Statewide"},
		VerifiedAt:  time.Now().UTC(),
	}
}

func TestValidateProgram(t *testing.T) {
	t.Run("valid program", func(t *testing.T) {
		require.NoError(t, ValidateProgram(validProgram()))
	})

	t.Run("nil program", func(t *testing.T) {
		err := ValidateProgram(nil)
		assert.ErrorIs(t, err, ErrInvalidProgram)
	})

	t.Run("empty slug", func(t *testing.T) {
		p := validProgram()
		p.Slug = "  "
		err := ValidateProgram(p)
		assert.ErrorIs(t, err, ErrInvalidProgram)
		assert.ErrorIs(t, err, ErrEmptySlug)
	})

	t.Run("empty name", func(t *testing.T) {
		p := validProgram()
		p.Name = ""
		err := ValidateProgram(p)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("empty description", func(t *testing.T) {
		p := validProgram()
		p.Description = ""
		err := ValidateProgram(p)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("no areas", func(t *testing.T) {
		p := validProgram()
		p.Areas = nil
		err := ValidateProgram(p)
		assert.ErrorIs(t, err, ErrNoAreas)
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		p := validProgram()
		p.Timeframe = ""
		p.LinkText = ""
		p.WhatTheyOffer = nil
		p.HowToGetIt = nil
		p.VerifiedAt = time.Time{}
		require.NoError(t, ValidateProgram(p))
	})
}

func TestValidateMetadata(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		meta := &Metadata{GeneratedAt: time.Now().UTC(), ProgramCount: 42, Version: "abc123"}
		require.NoError(t, ValidateMetadata(meta))
	})

	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, ValidateMetadata(nil), ErrInvalidMetadata)
	})

	t.Run("zero generatedAt", func(t *testing.T) {
		meta := &Metadata{ProgramCount: 1}
		assert.ErrorIs(t, ValidateMetadata(meta), ErrInvalidMetadata)
	})

	t.Run("negative count", func(t *testing.T) {
		meta := &Metadata{GeneratedAt: time.Now().UTC(), ProgramCount: -1}
		assert.ErrorIs(t, ValidateMetadata(meta), ErrInvalidMetadata)
	})
}
