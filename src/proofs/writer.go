// Package proofs writes and reads VDF output records as the "proof
// files" the time-locked simulation hands to a player (and to the chain
// submission stub in src/chain). Every document is validated
// against an embedded JSON Schema before it is trusted, so a hand-edited
// or truncated proof file is rejected before it ever reaches the
// verifier.
package proofs

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"vdfquest/src/seal"
	"vdfquest/src/types"
	"vdfquest/src/vdf"
)

//go:embed schema.json
var schemaJSON []byte

const schemaResourceName = "proof-record-v1.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResourceName, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("proofs: adding schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaResourceName)
	})
	return compiled, compileErr
}

// Document is the JSON shape of a proof file: the originating action plus
// the VDF output record it attests to.
type Document struct {
	ActionID   string           `json:"action_id"`
	Kind       string           `json:"kind"`
	RecipeName string           `json:"recipe_name,omitempty"`
	Status     string           `json:"status"`
	Record     vdf.OutputRecord `json:"record"`
}

// NewDocument builds a Document from an action and its output record.
func NewDocument(action types.ActionInProgress, record vdf.OutputRecord) Document {
	return Document{
		ActionID:   action.ActionID,
		Kind:       action.Kind,
		RecipeName: action.RecipeName,
		Status:     action.Status,
		Record:     record,
	}
}

func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("proofs: unmarshaling for validation: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("proofs: proof document failed schema validation: %w", err)
	}
	return nil
}

// WriteRecord marshals doc to JSON, validates it against the embedded
// schema, and writes it to path.
func WriteRecord(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("proofs: marshaling document: %w", err)
	}
	if err := validate(data); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("proofs: writing %s: %w", path, err)
	}
	return nil
}

// ReadRecord reads and validates a proof file written by WriteRecord.
func ReadRecord(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("proofs: reading %s: %w", path, err)
	}
	if err := validate(data); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("proofs: unmarshaling %s: %w", path, err)
	}
	return doc, nil
}

// WriteSealedRecord writes doc as a passphrase-protected types.SealedProof
// binary container. The JSON payload is still validated against the
// schema before it is encrypted, so a sealed file can never hide a
// malformed document behind its ciphertext.
func WriteSealedRecord(path string, doc Document, passphrase []byte) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("proofs: marshaling document: %w", err)
	}
	if err := validate(data); err != nil {
		return err
	}

	salt, err := seal.NewSalt()
	if err != nil {
		return fmt.Errorf("proofs: generating salt: %w", err)
	}
	key := seal.DeriveKey(passphrase, salt, seal.DefaultArgon2idParams)

	nonce, ciphertext, err := seal.Encrypt(key, data)
	if err != nil {
		return fmt.Errorf("proofs: sealing document: %w", err)
	}

	sp := types.SealedProof{
		Version:   types.SealedProofVersion,
		KdfID:     types.KdfArgon2id,
		Salt:      salt,
		KdfParams: seal.EncodeParams(seal.DefaultArgon2idParams),
		Nonce:     nonce,
		Data:      ciphertext,
	}
	return writeSealedProof(path, sp)
}

// ReadSealedRecord reads and decrypts a sealed proof file written by
// WriteSealedRecord.
func ReadSealedRecord(path string, passphrase []byte) (Document, error) {
	sp, err := readSealedProof(path)
	if err != nil {
		return Document{}, err
	}

	params := seal.DecodeParams(sp.KdfParams)
	key := seal.DeriveKey(passphrase, sp.Salt, params)

	data, err := seal.Decrypt(key, sp.Nonce, sp.Data)
	if err != nil {
		return Document{}, fmt.Errorf("proofs: unsealing %s: %w", path, err)
	}
	if err := validate(data); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("proofs: unmarshaling %s: %w", path, err)
	}
	return doc, nil
}

// writeSealedProof encodes a types.SealedProof to its binary container
// format: a fixed header written with encoding/binary followed by a
// length-prefixed payload.
func writeSealedProof(path string, sp types.SealedProof) error {
	var buf bytes.Buffer

	for _, field := range []any{sp.Version, sp.KdfID, sp.Salt, sp.KdfParams, sp.Nonce} {
		if err := binary.Write(&buf, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("proofs: encoding sealed header: %w", err)
		}
	}

	dataLen := uint64(len(sp.Data))
	if err := binary.Write(&buf, binary.LittleEndian, dataLen); err != nil {
		return fmt.Errorf("proofs: encoding sealed payload length: %w", err)
	}
	if _, err := buf.Write(sp.Data); err != nil {
		return fmt.Errorf("proofs: encoding sealed payload: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("proofs: writing %s: %w", path, err)
	}
	return nil
}

func readSealedProof(path string) (types.SealedProof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SealedProof{}, fmt.Errorf("proofs: reading %s: %w", path, err)
	}

	r := bytes.NewReader(data)
	var sp types.SealedProof

	for _, field := range []any{&sp.Version, &sp.KdfID, &sp.Salt, &sp.KdfParams, &sp.Nonce} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return types.SealedProof{}, fmt.Errorf("proofs: decoding sealed header of %s: %w", path, err)
		}
	}

	var dataLen uint64
	if err := binary.Read(r, binary.LittleEndian, &dataLen); err != nil {
		return types.SealedProof{}, fmt.Errorf("proofs: decoding sealed payload length of %s: %w", path, err)
	}
	sp.Data = make([]byte, dataLen)
	if _, err := io.ReadFull(r, sp.Data); err != nil {
		return types.SealedProof{}, fmt.Errorf("proofs: decoding sealed payload of %s: %w", path, err)
	}

	return sp, nil
}
