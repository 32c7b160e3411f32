// Package verify checks OpenPGP detached signatures over release manifests
// before they are decoded.
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// ErrBadSignature is returned when a signature does not verify against the
// keyring.
var ErrBadSignature = errors.New("signature verification failed")

// Verifier checks detached signatures against a fixed keyring.
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier for keyring.
func NewVerifier(keyring openpgp.EntityList) *Verifier {
	return &Verifier{keyring: keyring}
}

// LoadKeyring reads an armored or binary public keyring from path.
func LoadKeyring(path string) (*Verifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	keyring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		keyring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse keyring: %w", err)
		}
	}
	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring %s contains no keys", path)
	}

	return NewVerifier(keyring), nil
}

// Result describes a verified signature.
type Result struct {
	KeyID    string
	Identity string // primary user ID of the signing key, if any
}

// Verify checks signature (armored or binary) over data.
func (v *Verifier) Verify(data, signature []byte) (*Result, error) {
	signer, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if err != nil {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
		}
	}

	result := &Result{KeyID: signer.PrimaryKey.KeyIdString()}
	if ident := signer.PrimaryIdentity(); ident != nil {
		result.Identity = ident.Name
	}
	return result, nil
}

// VerifyReader reads all of r and checks it against the signature file at
// sigPath. It returns the bytes read so callers decode exactly what was
// verified.
func (v *Verifier) VerifyReader(r io.Reader, sigPath string) ([]byte, *Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read signed data: %w", err)
	}

	signature, err := os.ReadFile(sigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read signature: %w", err)
	}

	result, err := v.Verify(data, signature)
	if err != nil {
		return nil, nil, err
	}
	return data, result, nil
}
