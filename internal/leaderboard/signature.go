package leaderboard

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/mr-tron/base58"
)

// ParseWallet decodes a base58 wallet address into its ed25519 public key.
func ParseWallet(addr string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWallet, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidWallet, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// VerifySignature checks a base64 signature of message against wallet.
func VerifySignature(wallet, message, signature string) error {
	pub, err := ParseWallet(wallet)
	if err != nil {
		return err
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return ErrBadSignature
	}
	if !ed25519.Verify(pub, []byte(message), sig) {
		return ErrBadSignature
	}
	return nil
}

// Signer is the wallet capability a client signs claims with.
type Signer interface {
	// Address returns the base58 wallet address.
	Address() string
	// SignMessage signs msg. Failures are returned to the caller as-is.
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
}

// ErrNoKey is returned by a KeySigner without a private key.
var ErrNoKey = errors.New("leaderboard: signer has no key")

// KeySigner signs with a local ed25519 key.
type KeySigner struct {
	key ed25519.PrivateKey
}

// GenerateKeySigner creates a signer with a fresh key read from r, or
// crypto/rand when r is nil.
func GenerateKeySigner(r io.Reader) (*KeySigner, error) {
	if r == nil {
		r = rand.Reader
	}
	_, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: generate key: %w", err)
	}
	return &KeySigner{key: priv}, nil
}

// NewKeySigner wraps an existing private key.
func NewKeySigner(key ed25519.PrivateKey) *KeySigner {
	return &KeySigner{key: key}
}

// ParseKeySigner decodes a base58 secret key: either the 64-byte private
// key or its 32-byte seed.
func ParseKeySigner(secret string) (*KeySigner, error) {
	raw, err := base58.Decode(secret)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: decode key: %w", err)
	}
	switch len(raw) {
	case ed25519.PrivateKeySize:
		return &KeySigner{key: ed25519.PrivateKey(raw)}, nil
	case ed25519.SeedSize:
		return &KeySigner{key: ed25519.NewKeyFromSeed(raw)}, nil
	default:
		return nil, fmt.Errorf("leaderboard: key has %d bytes", len(raw))
	}
}

// Address implements Signer.
func (s *KeySigner) Address() string {
	if len(s.key) == 0 {
		return ""
	}
	return base58.Encode(s.key.Public().(ed25519.PublicKey))
}

// Secret returns the base58 private key for storage.
func (s *KeySigner) Secret() string {
	return base58.Encode(s.key)
}

// SignMessage implements Signer.
func (s *KeySigner) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.key) == 0 {
		return nil, ErrNoKey
	}
	return ed25519.Sign(s.key, msg), nil
}
