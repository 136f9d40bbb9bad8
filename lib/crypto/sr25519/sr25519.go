// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sr25519

import (
	"crypto/rand"
	"errors"
	"fmt"

	sr25519 "github.com/ChainSafe/go-schnorrkel"
	bip39 "github.com/cosmos/go-bip39"
	"github.com/gtank/merlin"
)

const (
	// PublicKeyLength is the expected public key length for sr25519.
	PublicKeyLength = 32
	// SeedLength is the length of a sr25519 mini secret key.
	SeedLength = 32
	// VRFOutputLength is the length of a VRF output.
	VRFOutputLength = 32
	// VRFProofLength is the length of a VRF proof.
	VRFProofLength = 64
)

var (
	ErrInvalidSeedLength      = errors.New("seed is not 32 bytes long")
	ErrInvalidPublicKeyLength = errors.New("public key is not 32 bytes long")
	ErrInvalidMnemonic        = errors.New("invalid mnemonic")
)

// Keypair is a sr25519 public-private keypair
type Keypair struct {
	public  *PublicKey
	private *sr25519.SecretKey
}

// PublicKey holds reference to a sr25519.PublicKey
type PublicKey struct {
	key *sr25519.PublicKey
}

// NewKeypairFromSeed returns a new Keypair given a seed
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedLength {
		return nil, fmt.Errorf("cannot generate key from seed: %w", ErrInvalidSeedLength)
	}

	buf := [SeedLength]byte{}
	copy(buf[:], seed)
	msc, err := sr25519.NewMiniSecretKeyFromRaw(buf)
	if err != nil {
		return nil, err
	}
	return newKeypairFromMiniSecretKey(msc), nil
}

// NewKeypairFromMnemonic returns a new Keypair derived from a bip39 mnemonic and password.
func NewKeypairFromMnemonic(mnemonic, password string) (*Keypair, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	msc, err := sr25519.MiniSecretKeyFromMnemonic(mnemonic, password)
	if err != nil {
		return nil, fmt.Errorf("deriving mini secret key: %w", err)
	}
	return newKeypairFromMiniSecretKey(msc), nil
}

// GenerateKeypair returns a new sr25519 keypair from a random seed
func GenerateKeypair() (*Keypair, error) {
	seed := make([]byte, SeedLength)
	_, err := rand.Read(seed)
	if err != nil {
		return nil, err
	}
	return NewKeypairFromSeed(seed)
}

func newKeypairFromMiniSecretKey(msc *sr25519.MiniSecretKey) *Keypair {
	return &Keypair{
		public:  &PublicKey{key: msc.Public()},
		private: msc.ExpandEd25519(),
	}
}

// Public returns the public key corresponding to this keypair
func (kp *Keypair) Public() *PublicKey {
	return kp.public
}

// VrfSign creates a VRF output and proof from a message and private key
func (kp *Keypair) VrfSign(t *merlin.Transcript) (
	out [VRFOutputLength]byte, proof [VRFProofLength]byte, err error) {
	inout, p, err := kp.private.VrfSign(t)
	if err != nil {
		return out, proof, err
	}
	return inout.Output().Encode(), p.Encode(), nil
}

// NewPublicKey returns a sr25519 public key from 32 byte input
func NewPublicKey(in []byte) (*PublicKey, error) {
	if len(in) != PublicKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidPublicKeyLength, len(in))
	}

	buf := [PublicKeyLength]byte{}
	copy(buf[:], in)
	pub := &sr25519.PublicKey{}
	err := pub.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &PublicKey{key: pub}, nil
}

// Encode returns the 32 byte encoding of the public key
func (k *PublicKey) Encode() []byte {
	enc := k.key.Encode()
	return enc[:]
}

// Hex returns the public key as a '0x' prefixed hex string
func (k *PublicKey) Hex() string {
	return fmt.Sprintf("0x%x", k.Encode())
}

// VrfVerify confirms that the output and proof are valid given a message and public key
func (k *PublicKey) VrfVerify(t *merlin.Transcript, out [VRFOutputLength]byte, proof [VRFProofLength]byte,
) (bool, error) {
	o := new(sr25519.VrfOutput)
	err := o.Decode(out)
	if err != nil {
		return false, fmt.Errorf("decoding VRF output: %w", err)
	}

	p := new(sr25519.VrfProof)
	err = p.Decode(proof)
	if err != nil {
		return false, fmt.Errorf("decoding VRF proof: %w", err)
	}

	return k.key.VrfVerify(t, o, p)
}
