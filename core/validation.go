// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// ValidateProgram validates a Program according to domain rules.
//
// Validation rules:
//   - Slug must not be empty (it is the primary key everywhere)
//   - Name and Description must exist in the source locale
//   - At least one area must be listed ("Statewide" and "Nationwide" count)
//
// NOT validated (optional, "unknown" downstream):
//   - Timeframe, LinkText, WhatTheyOffer, HowToGetIt
//   - Categories and Groups (a program may be untagged)
//   - VerifiedAt (zero value renders as "verification date unknown")
func ValidateProgram(program *Program) error {
	if program == nil {
		return fmt.Errorf("%w: program is nil", ErrInvalidProgram)
	}

	if strings.TrimSpace(string(program.Slug)) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProgram, ErrEmptySlug)
	}

	if strings.TrimSpace(program.Name) == "" {
		return fmt.Errorf("%w: %q: %w", ErrInvalidProgram, program.Slug, ErrEmptyName)
	}

	if strings.TrimSpace(program.Description) == "" {
		return fmt.Errorf("%w: %q: %w", ErrInvalidProgram, program.Slug, ErrEmptyDescription)
	}

	if len(program.Areas) == 0 {
		return fmt.Errorf("%w: %q: %w", ErrInvalidProgram, program.Slug, ErrNoAreas)
	}

	return nil
}

// ValidateMetadata validates a Metadata block.
// GeneratedAt must be set; ProgramCount must not be negative.
func ValidateMetadata(meta *Metadata) error {
	if meta == nil {
		return fmt.Errorf("%w: metadata is nil", ErrInvalidMetadata)
	}
	if meta.GeneratedAt.IsZero() {
		return fmt.Errorf("%w: generatedAt is required", ErrInvalidMetadata)
	}
	if meta.ProgramCount < 0 {
		return fmt.Errorf("%w: negative program count %d", ErrInvalidMetadata, meta.ProgramCount)
	}
	return nil
}
