// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// KVMDevice is the device node of the kernel virtual machine.
const KVMDevice = "/dev/kvm"

type Arch string

// Guest architecture the machine profile is built for.
const AMD64 Arch = "amd64"

// Native is the architecture of the host. Using the same architecture for the
// guest allows using KVM, if available. Use [Arch.KVMAvailable] to check.
const Native Arch = Arch(runtime.GOARCH)

func (a Arch) String() string {
	return string(a)
}

func (a Arch) IsNative() bool {
	return Native == a
}

// KVMAvailable checks if KVM support is available for the given architecture.
//
// The device node must be readable and writable by the current user.
func (a Arch) KVMAvailable() bool {
	if !a.IsNative() {
		return false
	}

	return DeviceAccessible(KVMDevice)
}

// DeviceAccessible checks if the device node at the given path can be opened
// for reading and writing.
func DeviceAccessible(path string) bool {
	return unix.Access(path, unix.R_OK|unix.W_OK) == nil
}
