// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aibor/vmlaunch/internal/qemu"
)

// DefaultNetDevices returns the network devices used if none are given.
func DefaultNetDevices() []qemu.NetDevice {
	return []qemu.NetDevice{
		qemu.NewNetDevice("eth0").
			WithMask("192.168.1.0/24").
			WithDHCPStart("192.168.1.10").
			WithPortForward(2222, 22),
		qemu.NewNetDevice("eth1").
			WithMask("192.168.2.0/24").
			WithDHCPStart("192.168.2.10"),
	}
}

// ParseNetDevice parses a network device definition of the form
// "id[,net=CIDR][,dhcpstart=IP][,hostfwd=HOST:GUEST...]".
//
// Network and address values are passed through as they are. Only the ports
// of port forwards are parsed.
func ParseNetDevice(s string) (qemu.NetDevice, error) {
	id, options, _ := strings.Cut(s, ",")
	if id == "" || strings.Contains(id, "=") {
		return qemu.NetDevice{}, fmt.Errorf("%w: missing id: %s", ErrInvalidNetDevice, s)
	}

	device := qemu.NewNetDevice(id)

	if options == "" {
		return device, nil
	}

	for option := range strings.SplitSeq(options, ",") {
		key, value, found := strings.Cut(option, "=")
		if !found {
			return qemu.NetDevice{}, fmt.Errorf("%w: option without value: %s", ErrInvalidNetDevice, option)
		}

		switch key {
		case "net":
			device = device.WithMask(value)
		case "dhcpstart":
			device = device.WithDHCPStart(value)
		case "hostfwd":
			hostPort, guestPort, err := parsePortForward(value)
			if err != nil {
				return qemu.NetDevice{}, err
			}

			device = device.WithPortForward(hostPort, guestPort)
		default:
			return qemu.NetDevice{}, fmt.Errorf("%w: unknown option: %s", ErrInvalidNetDevice, key)
		}
	}

	return device, nil
}

func parsePortForward(s string) (uint16, uint16, error) {
	host, guest, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, fmt.Errorf("%w: port forward not HOST:GUEST: %s", ErrInvalidNetDevice, s)
	}

	hostPort, err := strconv.ParseUint(host, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: host port: %w", ErrInvalidNetDevice, err)
	}

	guestPort, err := strconv.ParseUint(guest, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: guest port: %w", ErrInvalidNetDevice, err)
	}

	return uint16(hostPort), uint16(guestPort), nil
}

// NetDeviceList is a [flag.Value] for network devices.
//
// The first value set replaces the initial list. An empty value clears the
// list.
type NetDeviceList struct {
	Devices *[]qemu.NetDevice

	set bool
}

func (l *NetDeviceList) String() string {
	if l.Devices == nil {
		return ""
	}

	ids := make([]string, 0, len(*l.Devices))
	for _, device := range *l.Devices {
		ids = append(ids, device.ID())
	}

	return strings.Join(ids, ",")
}

func (l *NetDeviceList) Set(s string) error {
	if !l.set {
		*l.Devices = nil
		l.set = true
	}

	if s == "" {
		*l.Devices = nil
		return nil
	}

	device, err := ParseNetDevice(s)
	if err != nil {
		return err
	}

	*l.Devices = append(*l.Devices, device)

	return nil
}

// ArgumentList is a [flag.Value] for additional QEMU arguments of the form
// "name[=value]". An empty value clears the list.
type ArgumentList []qemu.Argument

func (l *ArgumentList) String() string {
	args := make([]string, 0, len(*l))
	for _, arg := range *l {
		args = append(args, arg.String())
	}

	return strings.Join(args, " ")
}

func (l *ArgumentList) Set(s string) error {
	if s == "" {
		*l = nil
		return nil
	}

	name, value, found := strings.Cut(s, "=")

	name = strings.TrimPrefix(name, "-")
	if name == "" {
		return fmt.Errorf("%w: no name: %s", ErrInvalidArgument, s)
	}

	if found {
		*l = append(*l, qemu.Arg(name, value))
	} else {
		*l = append(*l, qemu.Arg(name))
	}

	return nil
}
