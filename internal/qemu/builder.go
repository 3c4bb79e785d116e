// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"
	"strconv"

	"github.com/aibor/vmlaunch/internal/swtpm"
)

// Builder accumulates the QEMU arguments for a single virtual machine.
//
// Like [NetDevice] it has value semantics. Each method appends to a copy and
// returns it, so calls can be chained and intermediate builders can be reused
// without affecting each other. Once all arguments are added, call
// [Builder.Finalize] to get the complete argument strings.
type Builder struct {
	basePath   string
	workDir    string
	serial     string
	args       []Argument
	netDevices []NetDevice
}

// NewBuilder creates a new [Builder].
//
// Firmware and disk image files are resolved relative to basePath. The TPM
// emulator socket is expected in the state directory below workDir that is
// named after the serial number. The serial number is also passed to the
// guest as SMBIOS system serial.
func NewBuilder(basePath, workDir, serial string) Builder {
	return Builder{
		basePath: basePath,
		workDir:  workDir,
		serial:   serial,
	}
}

// Serial returns the serial number of the machine.
func (b Builder) Serial() string {
	return b.serial
}

// WorkDir returns the working directory the machine's state files are
// located in.
func (b Builder) WorkDir() string {
	return b.workDir
}

func (b Builder) add(args ...Argument) Builder {
	b.args = append(slices.Clip(b.args), args...)
	return b
}

// Machine sets the machine type to [MachineProfile].
func (b Builder) Machine() Builder {
	return b.add(Arg("machine", MachineProfile))
}

// CPU sets the CPU model to [CPUProfile].
func (b Builder) CPU() Builder {
	return b.add(Arg("cpu", CPUProfile))
}

// IOMMU adds the [IOMMUDevice].
func (b Builder) IOMMU() Builder {
	return b.add(Arg("device", IOMMUDevice))
}

// RAM sets the guest memory in MB.
func (b Builder) RAM(sizeMB uint64) Builder {
	return b.add(Arg("m", strconv.FormatUint(sizeMB, 10)))
}

// SMP sets the number of guest CPUs.
func (b Builder) SMP(num uint64) Builder {
	return b.add(Arg("smp", strconv.FormatUint(num, 10)))
}

// RTC sets the real time clock to [RTCProfile].
func (b Builder) RTC() Builder {
	return b.add(Arg("rtc", RTCProfile))
}

// SerialConsole attaches the first serial port to the controlling terminal.
func (b Builder) SerialConsole() Builder {
	return b.add(Arg("serial", SerialConsole))
}

// Display sets the display mode. In [DisplayGraphical] mode, gpu adds a
// virtio GPU in addition to the VGA adapter. It is ignored otherwise.
func (b Builder) Display(mode DisplayMode, gpu bool) Builder {
	return b.add(displayArgs(mode, gpu)...)
}

// Firmware adds a read-only pflash drive with the given firmware file from
// the installer firmware directory below the base path.
func (b Builder) Firmware(filename string, slot FirmwareSlot) Builder {
	return b.add(Arg("drive",
		"if=pflash",
		"format=raw",
		"unit="+strconv.Itoa(int(slot)),
		"readonly=on",
		"file="+b.basePath+"/"+firmwareDir+"/"+filename,
	))
}

// Disk adds the boot disk image located in the base path.
func (b Builder) Disk(imageName string) Builder {
	return b.add(Arg("drive",
		"file="+b.basePath+"/"+imageName,
		"format="+DiskFormat,
		"id="+DiskID,
	))
}

// TPMPassthrough adds a TIS TPM device that is backed by an external TPM
// emulator.
//
// The emulator must already listen on [swtpm.SocketPath] for the builder's
// work dir and serial number when QEMU starts, or QEMU fails to start.
func (b Builder) TPMPassthrough() Builder {
	socketPath := swtpm.SocketPath(b.workDir, b.serial)

	return b.add(
		Arg("tpmdev", "emulator", "id="+tpmDevID, "chardev="+tpmChardevID),
		Arg("device", tpmDevice, "tpmdev="+tpmDevID),
		Arg("chardev", "socket", "id="+tpmChardevID, "path="+socketPath),
	)
}

// DebugConsoleLog redirects the firmware debug console IO port into the file
// at the given path.
func (b Builder) DebugConsoleLog(path string) Builder {
	return b.add(
		Arg("debugcon", "file:"+path),
		Arg("global", "isa-debugcon.iobase="+DebugConsolePort),
	)
}

// DebuggerStub halts the CPU at reset and opens a GDB server on TCP port
// 1234.
func (b Builder) DebuggerStub() Builder {
	return b.add(
		Arg("S"),
		Arg("s"),
	)
}

// NetDevice adds a network device. Its arguments are appended after all other
// arguments by [Builder.Finalize].
func (b Builder) NetDevice(device NetDevice) Builder {
	b.netDevices = append(slices.Clip(b.netDevices), device)
	return b
}

// Extra adds arbitrary arguments verbatim.
func (b Builder) Extra(args ...Argument) Builder {
	return b.add(args...)
}

// Arguments returns all [Argument]s in their final order.
//
// These are all directly added arguments in call order followed by the
// arguments of all network devices in the order they were added. The SMBIOS
// serial number argument is always the last one.
func (b Builder) Arguments() []Argument {
	args := slices.Clone(b.args)

	for _, device := range b.netDevices {
		args = append(args, device.Arguments()...)
	}

	return append(args, Arg("smbios", "type=1", "serial="+b.serial))
}

// Finalize compiles the argument strings for the QEMU command as ordered by
// [Builder.Arguments].
func (b Builder) Finalize() []string {
	return BuildArgumentStrings(b.Arguments())
}
