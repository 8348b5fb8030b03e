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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/benefind/core"
)

// Records are persisted as JSON, matching the upstream snapshot wire format,
// so the durable cache never needs a second codec.

// MarshalProgram serializes a Program to bytes.
func MarshalProgram(program *core.Program) ([]byte, error) {
	data, err := json.Marshal(program)
	if err != nil {
		return nil, fmt.Errorf("%w: program %q: %w", ErrSerializationFailed, program.Slug, err)
	}
	return data, nil
}

// UnmarshalProgram deserializes a Program from bytes.
func UnmarshalProgram(data []byte) (*core.Program, error) {
	var program core.Program
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &program, nil
}

// MarshalMetadata serializes a Metadata block to bytes.
func MarshalMetadata(metadata core.Metadata) ([]byte, error) {
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalMetadata deserializes a Metadata block from bytes.
func UnmarshalMetadata(data []byte) (core.Metadata, error) {
	var metadata core.Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return core.Metadata{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return metadata, nil
}
