// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "github.com/stretchr/testify/assert"

// ArgumentValueAssertionFunc returns an [assert.ComparisonAssertionFunc] that
// can be used to assert the values of all Arguments with the given name.
//
// The assertion is called with the list of values of all matching arguments
// in order.
func ArgumentValueAssertionFunc(
	name string,
	assertion assert.ComparisonAssertionFunc,
) assert.ComparisonAssertionFunc {
	return func(t assert.TestingT, arg1, arg2 any, arg3 ...any) bool {
		args, ok := arg1.([]Argument)
		if !assert.True(t, ok, "first argument should be []Argument") {
			return false
		}

		values := []string{}

		for _, arg := range args {
			if name == arg.name {
				values = append(values, arg.value)
			}
		}

		if len(values) == 0 {
			return assert.Fail(t, "Argument not found")
		}

		return assertion(t, values, arg2, arg3...)
	}
}
