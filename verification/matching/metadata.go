package matching

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/fxamacker/cbor"
)

// metadataLengthFieldChars is the width, in hex characters, of the trailing length field the Solidity compiler
// appends after the CBOR-encoded metadata payload (2 bytes, big-endian).
const metadataLengthFieldChars = 4

// TrimMetadata removes the compiler-appended metadata trailer from the provided normalized hex bytecode. The final
// two bytes of Solidity bytecode encode the byte length of the CBOR payload that precedes them, so the full trailer
// occupies `length*2 + 4` hex characters. If the indicated trailer does not fit within the bytecode (malformed or
// pre-metadata output), the input is returned unchanged rather than erroring, so a comparison remains available.
// Both operands of a comparison must be trimmed independently: two compiler versions can emit trailers of
// different lengths for otherwise identical code.
func TrimMetadata(bytecode string) string {
	trailerChars, ok := metadataTrailerChars(bytecode)
	if !ok {
		return bytecode
	}
	return bytecode[:len(bytecode)-trailerChars]
}

// metadataTrailerChars computes the length in hex characters of the metadata trailer self-encoded at the end of the
// provided bytecode. Returns false if the bytecode is too short or the indicated trailer exceeds the bytecode length.
func metadataTrailerChars(bytecode string) (int, bool) {
	if len(bytecode) < metadataLengthFieldChars {
		return 0, false
	}
	payloadBytes, err := strconv.ParseUint(bytecode[len(bytecode)-metadataLengthFieldChars:], 16, 32)
	if err != nil {
		return 0, false
	}
	trailerChars := int(payloadBytes)*2 + metadataLengthFieldChars
	if trailerChars > len(bytecode) {
		return 0, false
	}
	return trailerChars, true
}

// Metadata is the CBOR-encoded structure describing contract information which is embedded within smart contract
// bytecode by the Solidity compiler (unless explicitly directed not to).
// Reference: https://docs.soliditylang.org/en/v0.8.16/metadata.html
type Metadata map[string]any

// bytecodeHashMetadataKeys defines the keys in the CBOR-encoded Metadata which contain bytecode hashes.
var bytecodeHashMetadataKeys = [...]string{
	"bzzr0",
	"bzzr1",
	"ipfs",
}

// DecodeMetadata decodes the metadata trailer at the end of the provided normalized hex bytecode and returns it.
// This is a diagnostic aid only: it never participates in match decisions, and nil is returned whenever no valid
// trailer is present or the payload is not decodable CBOR.
func DecodeMetadata(bytecode string) *Metadata {
	trailerChars, ok := metadataTrailerChars(bytecode)
	if !ok {
		return nil
	}

	// The payload sits between the start of the trailer and the length field.
	payloadHex := bytecode[len(bytecode)-trailerChars : len(bytecode)-metadataLengthFieldChars]
	payload, err := hex.DecodeString(payloadHex)
	if err != nil {
		return nil
	}

	var metadata Metadata
	if err := cbor.Unmarshal(payload, &metadata); err != nil {
		return nil
	}
	return &metadata
}

// CompilerVersion extracts the solc version embedded in the metadata as a "major.minor.patch" string. Returns an
// empty string if the metadata carries no version field (solc < 0.5.9 did not embed one).
func (m Metadata) CompilerVersion() string {
	versionData, keyExists := m["solc"]
	if !keyExists {
		return ""
	}
	versionBytes, ok := versionData.([]byte)
	if !ok || len(versionBytes) != 3 {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", versionBytes[0], versionBytes[1], versionBytes[2])
}

// SourceHashKind returns which source-hash key the metadata carries ("ipfs", "bzzr0" or "bzzr1"), or an empty
// string if none is present.
func (m Metadata) SourceHashKind() string {
	for _, possibleMetadataKey := range bytecodeHashMetadataKeys {
		if _, keyExists := m[possibleMetadataKey]; keyExists {
			return possibleMetadataKey
		}
	}
	return ""
}
