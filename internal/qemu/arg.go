// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"strings"
)

// Argument is a QEMU argument with or without value.
type Argument struct {
	name  string
	value string
}

// Arg returns a new [Argument] with the given name. Multiple values are joined
// with ",".
func Arg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// String implements [fmt.Stringer].
func (a Argument) String() string {
	s := "-" + a.name
	if a.value != "" {
		s += " " + a.value
	}

	return s
}

// Name returns the name of the [Argument].
func (a Argument) Name() string {
	return a.name
}

// Value returns the value of the [Argument].
func (a Argument) Value() string {
	return a.value
}

// BuildArgumentStrings compiles the [Argument]s into a slice of strings which
// can be used with [exec.Command].
//
// Each name is prefixed with "-" and followed by its value, if it has one.
// The order of the given [Argument]s is preserved.
func BuildArgumentStrings(args []Argument) []string {
	argStrings := make([]string, 0, 2*len(args))

	for _, arg := range args {
		argStrings = append(argStrings, "-"+arg.name)

		if arg.value != "" {
			argStrings = append(argStrings, arg.value)
		}
	}

	return argStrings
}
