// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package toml

import (
	"fmt"
	"io"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/naoina/toml"
)

// Config is a collection of configurations throughout the system
type Config struct {
	Log      LogConfig      `toml:"log,omitempty"`
	Protocol ProtocolConfig `toml:"protocol,omitempty"`
}

// LogConfig represents the logger settings
type LogConfig struct {
	Level      string `toml:"level,omitempty"`
	Format     string `toml:"format,omitempty"`
	CallerFile bool   `toml:"caller-file,omitempty"`
	CallerLine bool   `toml:"caller-line,omitempty"`
}

// ProtocolConfig is to marshal/unmarshal toml protocol config vars.
// Unset fields take their value from types.DefaultProtocolConfig.
type ProtocolConfig struct {
	RandomnessLength  int    `toml:"randomness-length,omitempty"`
	VRFOutputLength   int    `toml:"vrf-output-length,omitempty"`
	VRFProofLength    int    `toml:"vrf-proof-length,omitempty"`
	AuthorityIDLength int    `toml:"authority-id-length,omitempty"`
	MaxAuthorities    uint32 `toml:"max-authorities,omitempty"`
	MaxCommitments    uint32 `toml:"max-commitments,omitempty"`
}

// Decode reads a toml configuration from reader.
func Decode(reader io.Reader) (cfg Config, err error) {
	err = toml.NewDecoder(reader).Decode(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("decoding toml configuration: %w", err)
	}
	return cfg, nil
}

// Encode writes the configuration as toml to writer.
func Encode(writer io.Writer, cfg Config) error {
	err := toml.NewEncoder(writer).Encode(cfg)
	if err != nil {
		return fmt.Errorf("encoding toml configuration: %w", err)
	}
	return nil
}

// ToProtocolConfig returns the protocol parameters with defaults applied
// for unset fields. The result is validated.
func (p ProtocolConfig) ToProtocolConfig() (cfg types.ProtocolConfig, err error) {
	cfg = types.DefaultProtocolConfig()
	if p.RandomnessLength != 0 {
		cfg.RandomnessLength = p.RandomnessLength
	}
	if p.VRFOutputLength != 0 {
		cfg.VRFOutputLength = p.VRFOutputLength
	}
	if p.VRFProofLength != 0 {
		cfg.VRFProofLength = p.VRFProofLength
	}
	if p.AuthorityIDLength != 0 {
		cfg.AuthorityIDLength = p.AuthorityIDLength
	}
	if p.MaxAuthorities != 0 {
		cfg.MaxAuthorities = p.MaxAuthorities
	}
	if p.MaxCommitments != 0 {
		cfg.MaxCommitments = p.MaxCommitments
	}

	err = cfg.Validate()
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}
