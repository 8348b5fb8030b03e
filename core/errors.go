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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProgram indicates a Program record failed validation.
	ErrInvalidProgram = errors.New("invalid program record")

	// ErrEmptySlug indicates the Slug field is empty.
	ErrEmptySlug = errors.New("slug cannot be empty")

	// ErrEmptyName indicates the Name field is empty in the source locale.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyDescription indicates the Description field is empty in the source locale.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrNoAreas indicates the program lists no service areas.
	ErrNoAreas = errors.New("program must list at least one area")

	// ErrInvalidMetadata indicates a Metadata block failed validation.
	ErrInvalidMetadata = errors.New("invalid metadata")
)
