// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// PortForward forwards a TCP port of the host to a port of the guest.
type PortForward struct {
	Host  uint16
	Guest uint16
}

// String returns the QEMU hostfwd rule.
func (f PortForward) String() string {
	return fmt.Sprintf("tcp::%d-:%d", f.Host, f.Guest)
}

// NetDevice describes a virtio NIC backed by QEMU user mode networking.
//
// It has value semantics. All With methods return an updated copy and leave
// the receiver untouched.
type NetDevice struct {
	id           string
	mask         string
	dhcpStart    string
	portForwards []PortForward
}

// NewNetDevice creates a new [NetDevice] with the given ID. The ID must be
// unique among all devices of a [Builder].
func NewNetDevice(id string) NetDevice {
	return NetDevice{id: id}
}

// ID returns the device ID.
func (d NetDevice) ID() string {
	return d.id
}

// WithMask returns a copy with the virtual subnet set to the given CIDR.
func (d NetDevice) WithMask(cidr string) NetDevice {
	d.mask = cidr
	return d
}

// WithDHCPStart returns a copy with the first address assigned by the built-in
// DHCP server set to the given IP.
func (d NetDevice) WithDHCPStart(ip string) NetDevice {
	d.dhcpStart = ip
	return d
}

// WithPortForward returns a copy with an additional TCP port forward rule.
func (d NetDevice) WithPortForward(hostPort, guestPort uint16) NetDevice {
	d.portForwards = append(slices.Clip(d.portForwards), PortForward{
		Host:  hostPort,
		Guest: guestPort,
	})

	return d
}

// PortForwards returns a copy of the port forward rules in the order they
// were added.
func (d NetDevice) PortForwards() []PortForward {
	return slices.Clone(d.portForwards)
}

// netdevValue builds the value of the "-netdev" argument.
func (d NetDevice) netdevValue() string {
	var value strings.Builder

	value.WriteString("user,id=" + d.id)

	if d.mask != "" {
		value.WriteString(",net=" + d.mask)
	}

	if d.dhcpStart != "" {
		value.WriteString(",dhcpstart=" + d.dhcpStart)
	}

	for _, fwd := range d.portForwards {
		value.WriteString(",hostfwd=" + fwd.String())
	}

	return value.String()
}

// Arguments returns the "-netdev" and "-device" [Argument]s of the device.
func (d NetDevice) Arguments() []Argument {
	return []Argument{
		Arg("netdev", d.netdevValue()),
		Arg("device", NetDeviceModel, "netdev="+d.id, "romfile="),
	}
}

// Render returns the four argument strings of the device.
func (d NetDevice) Render() []string {
	return BuildArgumentStrings(d.Arguments())
}
