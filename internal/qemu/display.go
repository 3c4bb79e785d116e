// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"
)

const (
	// DisplayGraphical shows the guest's VGA output in a window.
	DisplayGraphical DisplayMode = "graphical"
	// DisplayHeadless disables graphical output completely. The guest is
	// only reachable via serial console and network.
	DisplayHeadless DisplayMode = "headless"
)

// DisplayMode represents the guest display modes.
type DisplayMode string

func (m *DisplayMode) isKnown() bool {
	knownDisplayModes := []DisplayMode{
		DisplayGraphical,
		DisplayHeadless,
	}

	return slices.Contains(knownDisplayModes, *m)
}

// String implements [fmt.Stringer].
func (m *DisplayMode) String() string {
	if !m.isKnown() {
		return ""
	}

	return string(*m)
}

// Set implements [flag.Value].
func (m *DisplayMode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (m DisplayMode) MarshalText() ([]byte, error) {
	s := m.String()
	if s == "" {
		return nil, ErrDisplayModeInvalid
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *DisplayMode) UnmarshalText(text []byte) error {
	mode := DisplayMode(text)

	if !mode.isKnown() {
		return ErrDisplayModeInvalid
	}

	*m = mode

	return nil
}

func displayArgs(mode DisplayMode, gpu bool) []Argument {
	switch mode {
	case DisplayHeadless:
		return []Argument{Arg("nographic")}
	case DisplayGraphical:
		args := []Argument{Arg("vga", VGAAdapter)}
		if gpu {
			args = append(args, Arg("device", GPUDevice))
		}

		return args
	default: // Ignore invalid display modes.
		return nil
	}
}
