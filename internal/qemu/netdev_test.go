// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"strings"
	"testing"

	"github.com/aibor/vmlaunch/internal/qemu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetDevice_Render(t *testing.T) {
	tests := []struct {
		name     string
		device   qemu.NetDevice
		expected string
	}{
		{
			name:     "plain",
			device:   qemu.NewNetDevice("eth1"),
			expected: "user,id=eth1",
		},
		{
			name:     "mask only",
			device:   qemu.NewNetDevice("eth1").WithMask("10.0.2.0/24"),
			expected: "user,id=eth1,net=10.0.2.0/24",
		},
		{
			name:     "dhcp start only",
			device:   qemu.NewNetDevice("eth1").WithDHCPStart("10.0.2.15"),
			expected: "user,id=eth1,dhcpstart=10.0.2.15",
		},
		{
			name: "full",
			device: qemu.NewNetDevice("eth0").
				WithPortForward(2222, 22).
				WithMask("192.168.1.0/24").
				WithDHCPStart("192.168.1.10"),
			expected: "user,id=eth0,net=192.168.1.0/24," +
				"dhcpstart=192.168.1.10,hostfwd=tcp::2222-:22",
		},
		{
			name: "forwards in order with duplicates",
			device: qemu.NewNetDevice("eth0").
				WithPortForward(8080, 80).
				WithPortForward(2222, 22).
				WithPortForward(8080, 80),
			expected: "user,id=eth0,hostfwd=tcp::8080-:80," +
				"hostfwd=tcp::2222-:22,hostfwd=tcp::8080-:80",
		},
		{
			name: "overwrite",
			device: qemu.NewNetDevice("eth0").
				WithMask("10.0.0.0/8").
				WithMask("10.1.0.0/16").
				WithDHCPStart("10.1.0.1").
				WithDHCPStart("10.1.0.2"),
			expected: "user,id=eth0,net=10.1.0.0/16,dhcpstart=10.1.0.2",
		},
		{
			name:     "garbage passed through",
			device:   qemu.NewNetDevice("x").WithMask("not a cidr"),
			expected: "user,id=x,net=not a cidr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := tt.device.Render()
			require.Len(t, rendered, 4)

			assert.Equal(t, "-netdev", rendered[0])
			assert.Equal(t, tt.expected, rendered[1])
			assert.Equal(t, "-device", rendered[2])
			assert.Equal(t,
				"virtio-net-pci,netdev="+tt.device.ID()+",romfile=",
				rendered[3],
			)
			assert.Equal(t,
				len(tt.device.PortForwards()),
				strings.Count(rendered[1], ",hostfwd="),
			)
		})
	}
}

func TestNetDevice_ValueSemantics(t *testing.T) {
	base := qemu.NewNetDevice("eth0").WithPortForward(2222, 22)

	first := base.WithPortForward(8080, 80)
	second := base.WithPortForward(4443, 443)
	masked := base.WithMask("192.168.1.0/24")

	assert.Equal(t,
		[]qemu.PortForward{{Host: 2222, Guest: 22}},
		base.PortForwards(),
	)
	assert.Equal(t,
		[]qemu.PortForward{{Host: 2222, Guest: 22}, {Host: 8080, Guest: 80}},
		first.PortForwards(),
	)
	assert.Equal(t,
		[]qemu.PortForward{{Host: 2222, Guest: 22}, {Host: 4443, Guest: 443}},
		second.PortForwards(),
	)
	assert.Equal(t, "user,id=eth0,hostfwd=tcp::2222-:22", base.Render()[1])
	assert.Contains(t, masked.Render()[1], "net=192.168.1.0/24")
}

func TestPortForward_String(t *testing.T) {
	fwd := qemu.PortForward{Host: 65535, Guest: 1}
	assert.Equal(t, "tcp::65535-:1", fwd.String())
}
