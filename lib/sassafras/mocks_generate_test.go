// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

//go:generate mockgen -destination=mock_vrf_verifier_test.go -package $GOPACKAGE . VRFVerifier
