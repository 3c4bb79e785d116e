// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"strconv"
	"testing"

	"github.com/aibor/vmlaunch/internal/cmd"
	"github.com/aibor/vmlaunch/internal/qemu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetDevice(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []string
		expectedErr error
	}{
		{
			name:  "id only",
			input: "eth0",
			expected: []string{
				"-netdev", "user,id=eth0",
				"-device", "virtio-net-pci,netdev=eth0,romfile=",
			},
		},
		{
			name:  "all options",
			input: "eth0,hostfwd=2222:22,net=192.168.1.0/24,dhcpstart=192.168.1.10,hostfwd=8080:80",
			expected: []string{
				"-netdev", "user,id=eth0,net=192.168.1.0/24,dhcpstart=192.168.1.10," +
					"hostfwd=tcp::2222-:22,hostfwd=tcp::8080-:80",
				"-device", "virtio-net-pci,netdev=eth0,romfile=",
			},
		},
		{
			name:  "values not validated",
			input: "lan,net=not-a-cidr",
			expected: []string{
				"-netdev", "user,id=lan,net=not-a-cidr",
				"-device", "virtio-net-pci,netdev=lan,romfile=",
			},
		},
		{
			name:        "empty",
			input:       "",
			expectedErr: cmd.ErrInvalidNetDevice,
		},
		{
			name:        "missing id",
			input:       "net=192.168.1.0/24",
			expectedErr: cmd.ErrInvalidNetDevice,
		},
		{
			name:        "unknown option",
			input:       "eth0,model=e1000",
			expectedErr: cmd.ErrInvalidNetDevice,
		},
		{
			name:        "option without value",
			input:       "eth0,restrict",
			expectedErr: cmd.ErrInvalidNetDevice,
		},
		{
			name:        "port forward without guest port",
			input:       "eth0,hostfwd=2222",
			expectedErr: cmd.ErrInvalidNetDevice,
		},
		{
			name:        "port out of range",
			input:       "eth0,hostfwd=70000:22",
			expectedErr: strconv.ErrRange,
		},
		{
			name:        "port not a number",
			input:       "eth0,hostfwd=22:ssh",
			expectedErr: strconv.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, err := cmd.ParseNetDevice(tt.input)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr == nil {
				assert.Equal(t, tt.expected, device.Render())
			}
		})
	}
}

func TestDefaultNetDevices(t *testing.T) {
	devices := cmd.DefaultNetDevices()
	require.Len(t, devices, 2)

	assert.Equal(t, []string{
		"-netdev", "user,id=eth0,net=192.168.1.0/24,dhcpstart=192.168.1.10,hostfwd=tcp::2222-:22",
		"-device", "virtio-net-pci,netdev=eth0,romfile=",
	}, devices[0].Render())
	assert.Equal(t, []string{
		"-netdev", "user,id=eth1,net=192.168.2.0/24,dhcpstart=192.168.2.10",
		"-device", "virtio-net-pci,netdev=eth1,romfile=",
	}, devices[1].Render())
}

func TestNetDeviceList_Set(t *testing.T) {
	tests := []struct {
		name        string
		inputs      []string
		expectedIDs string
	}{
		{
			name:        "initial kept",
			expectedIDs: "eth0,eth1",
		},
		{
			name:        "first value replaces initial",
			inputs:      []string{"lan"},
			expectedIDs: "lan",
		},
		{
			name:        "appends",
			inputs:      []string{"lan", "wan,net=10.0.0.0/8"},
			expectedIDs: "lan,wan",
		},
		{
			name:        "empty clears",
			inputs:      []string{"lan", ""},
			expectedIDs: "",
		},
		{
			name:        "empty clears and appends",
			inputs:      []string{"lan", "", "wan"},
			expectedIDs: "wan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := cmd.DefaultNetDevices()
			list := cmd.NetDeviceList{Devices: &devices}

			for _, input := range tt.inputs {
				require.NoError(t, list.Set(input))
			}

			assert.Equal(t, tt.expectedIDs, list.String())
		})
	}
}

func TestArgumentList_Set(t *testing.T) {
	tests := []struct {
		name        string
		inputs      []string
		expected    cmd.ArgumentList
		expectedErr error
	}{
		{
			name:     "name only",
			inputs:   []string{"no-reboot"},
			expected: cmd.ArgumentList{qemu.Arg("no-reboot")},
		},
		{
			name:     "leading dash",
			inputs:   []string{"-no-reboot"},
			expected: cmd.ArgumentList{qemu.Arg("no-reboot")},
		},
		{
			name:   "with value",
			inputs: []string{"device=usb-tablet,bus=usb.0", "usb"},
			expected: cmd.ArgumentList{
				qemu.Arg("device", "usb-tablet,bus=usb.0"),
				qemu.Arg("usb"),
			},
		},
		{
			name:   "empty clears",
			inputs: []string{"usb", ""},
		},
		{
			name:        "no name",
			inputs:      []string{"=value"},
			expectedErr: cmd.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				list cmd.ArgumentList
				err  error
			)

			for _, input := range tt.inputs {
				err = list.Set(input)
				if err != nil {
					break
				}
			}

			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, list)
		})
	}
}
