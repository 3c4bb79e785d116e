// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

// Fixed machine profile. The values are tuned for a KVM accelerated Q35 guest
// with split IRQ chip, which is required by the emulated Intel IOMMU.
const (
	// MachineProfile is the Q35 chipset with KVM acceleration and split IRQ
	// chip.
	MachineProfile = "q35,accel=kvm,usb=off,dump-guest-core=off,kernel-irqchip=split"

	// CPUProfile passes the host CPU model through to the guest.
	CPUProfile = "host"

	// IOMMUDevice is the Intel IOMMU emulation with interrupt remapping.
	IOMMUDevice = "intel-iommu,intremap=on,caching-mode=on,aw-bits=48"

	// RTCProfile makes the guest RTC run in UTC off the host's realtime clock.
	RTCProfile = "base=utc,clock=rt"

	// SerialConsole multiplexes the first serial port and the QEMU monitor on
	// the controlling terminal.
	SerialConsole = "mon:stdio"

	// VGAAdapter is the standard VGA adapter used for graphical display.
	VGAAdapter = "std"

	// GPUDevice is the paravirtualized GPU added on request in graphical
	// mode.
	GPUDevice = "virtio-gpu-pci"

	// NetDeviceModel is the NIC model used for all network devices.
	NetDeviceModel = "virtio-net-pci"

	// DiskFormat is QEMU's native copy-on-write disk image format.
	DiskFormat = "qcow2"

	// DiskID is the drive ID of the boot disk.
	DiskID = "uefi-disk"

	// DebugConsolePort is the IO port OVMF writes its debug log to.
	DebugConsolePort = "0x402"
)

// TPM device wiring. The chardev connects to the emulator's control socket.
const (
	tpmDevID     = "tpm0"
	tpmChardevID = "chrtpm"
	tpmDevice    = "tpm-tis"
)

// FirmwareSlot is the unit number of a pflash drive.
type FirmwareSlot uint8

// UEFI boot requires both slots to be populated.
const (
	// FirmwareCode is the slot for the firmware code.
	FirmwareCode FirmwareSlot = 0
	// FirmwareVars is the slot for the firmware variable store.
	FirmwareVars FirmwareSlot = 1
)

// firmwareDir is the directory of firmware files relative to the base path.
const firmwareDir = "installer/firmware"
