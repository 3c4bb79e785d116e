// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/aibor/vmlaunch/internal/launch"
	"github.com/aibor/vmlaunch/internal/qemu"
	"github.com/aibor/vmlaunch/internal/swtpm"
)

const (
	name = "vmlaunch"

	qemuBinDefault = "qemu-system-x86_64"
	serialDefault  = "13471118009978"
	workDirDefault = "."

	firmwareCodeDefault = "OVMF_CODE.fd"
	firmwareVarsDefault = "OVMF_VARS.fd"
	diskDefault         = "live.qcow2"

	memDefault = 4096
	memMin     = 128
	memMax     = 1 << 20

	smpDefault = 4
	smpMin     = 1
	smpMax     = 256

	usageMessage = `Usage of 'vmlaunch':
    vmlaunch [flags...]

Launches a QEMU machine with an swtpm TPM emulator. The machine's files are
expected in the base directory:
	vmlaunch -base=/path/to/dist/amd64/current

Print the QEMU arguments only:
	vmlaunch -base=/path/to/dist/amd64/current -dryRun

All vmlaunch flags can also be provided via environment variable VMLAUNCH_ARGS:
	VMLAUNCH_ARGS="-base=/path/to/dist -debug" vmlaunch

All vmlaunch flags can also be provided via file ./.vmlaunch-args, with one
argument per line.
`
)

type flags struct {
	QemuBin      string
	SwtpmBin     string
	BasePath     string
	WorkDir      string
	Serial       string
	Memory       uint64
	NumCPU       uint64
	Display      qemu.DisplayMode
	GPU          bool
	FirmwareCode string
	FirmwareVars string
	Disk         string
	NoTPM        bool
	DebugLog     string
	GDB          bool
	NetDevices   []qemu.NetDevice
	ExtraArgs    []qemu.Argument
	ReadyTimeout time.Duration
	DryRun       bool
	Debug        bool
	Version      bool

	flagSet *flag.FlagSet
}

func newFlags(output io.Writer) *flags {
	flags := &flags{
		QemuBin:      qemuBinDefault,
		SwtpmBin:     swtpm.DefaultExecutable,
		WorkDir:      workDirDefault,
		Serial:       serialDefault,
		Memory:       memDefault,
		NumCPU:       smpDefault,
		Display:      qemu.DisplayGraphical,
		GPU:          true,
		FirmwareCode: firmwareCodeDefault,
		FirmwareVars: firmwareVarsDefault,
		Disk:         diskDefault,
		NetDevices:   DefaultNetDevices(),
		ReadyTimeout: launch.DefaultReadyTimeout,
	}

	flags.initFlagset(output)

	return flags
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	flags := newFlags(output)

	var flagArgs []string
	if len(args) > 0 {
		flagArgs = args[1:]
	}

	err := flags.ParseArgs(flagArgs)
	if err != nil {
		return nil, err
	}

	return flags, nil
}

func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.Version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	if f.BasePath == "" {
		return f.fail("no base path given (use -base)", nil)
	}

	if f.Serial == "" {
		return f.fail("serial number must not be empty", nil)
	}

	if f.WorkDir == "" {
		return f.fail("work dir must not be empty", nil)
	}

	if !f.NoTPM && f.SwtpmBin == "" {
		return f.fail("no swtpm binary given (use -swtpmBin or -notpm)", nil)
	}

	if f.flagSet.NArg() > 0 {
		return f.fail("unexpected positional arguments", nil)
	}

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.StringVar(
		&f.QemuBin,
		"qemuBin",
		f.QemuBin,
		"QEMU binary to use",
	)

	flagSet.StringVar(
		&f.SwtpmBin,
		"swtpmBin",
		f.SwtpmBin,
		"swtpm binary to use",
	)

	flagSet.StringVar(
		&f.BasePath,
		"base",
		f.BasePath,
		"directory containing the disk image and installer/firmware/",
	)

	flagSet.StringVar(
		&f.WorkDir,
		"workdir",
		f.WorkDir,
		"directory the TPM state directories are created in",
	)

	flagSet.StringVar(
		&f.Serial,
		"serial",
		f.Serial,
		"serial number of the machine. Keys the TPM state directory",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &f.Memory,
			Lower: memMin,
			Upper: memMax,
		},
		"memory",
		"memory (in MB) for the QEMU VM",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &f.NumCPU,
			Lower: smpMin,
			Upper: smpMax,
		},
		"smp",
		"number of CPUs for the QEMU VM",
	)

	flagSet.Var(
		&f.Display,
		"display",
		"display mode: graphical, headless",
	)

	flagSet.BoolVar(
		&f.GPU,
		"gpu",
		f.GPU,
		"add a virtio GPU in graphical display mode",
	)

	flagSet.StringVar(
		&f.FirmwareCode,
		"code",
		f.FirmwareCode,
		"UEFI code file name in installer/firmware/",
	)

	flagSet.StringVar(
		&f.FirmwareVars,
		"vars",
		f.FirmwareVars,
		"UEFI variable store file name in installer/firmware/",
	)

	flagSet.StringVar(
		&f.Disk,
		"disk",
		f.Disk,
		"qcow2 disk image file name in the base directory",
	)

	flagSet.BoolVar(
		&f.NoTPM,
		"notpm",
		f.NoTPM,
		"do not start a TPM emulator and do not add a TPM device",
	)

	flagSet.StringVar(
		&f.DebugLog,
		"debugLog",
		f.DebugLog,
		"write the firmware debug console into the given file",
	)

	flagSet.BoolVar(
		&f.GDB,
		"gdb",
		f.GDB,
		"start with halted CPUs and wait for a debugger on tcp::1234",
	)

	flagSet.Var(
		&NetDeviceList{Devices: &f.NetDevices},
		"net",
		"user network device: id[,net=CIDR][,dhcpstart=IP][,hostfwd=HOST:GUEST]. "+
			"Flag may be used more than once. Empty value clears the list. "+
			"(default eth0 and eth1)",
	)

	flagSet.Var(
		(*ArgumentList)(&f.ExtraArgs),
		"qemuArg",
		"additional QEMU argument: name[=value]. Flag may be used more than "+
			"once. Empty value clears the list.",
	)

	flagSet.DurationVar(
		&f.ReadyTimeout,
		"readyTimeout",
		f.ReadyTimeout,
		"time the TPM emulator has to create its socket",
	)

	flagSet.BoolVar(
		&f.DryRun,
		"dryRun",
		f.DryRun,
		"print QEMU arguments without starting any process",
	)

	flagSet.BoolVar(
		&f.Debug,
		"debug",
		f.Debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.Version,
		"version",
		f.Version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}

func (f *flags) builder() qemu.Builder {
	builder := qemu.NewBuilder(f.BasePath, f.WorkDir, f.Serial).
		Machine().
		CPU().
		IOMMU().
		RAM(f.Memory).
		SMP(f.NumCPU).
		RTC().
		SerialConsole().
		Display(f.Display, f.GPU).
		Firmware(f.FirmwareCode, qemu.FirmwareCode).
		Firmware(f.FirmwareVars, qemu.FirmwareVars).
		Disk(f.Disk)

	if !f.NoTPM {
		builder = builder.TPMPassthrough()
	}

	if f.DebugLog != "" {
		builder = builder.DebugConsoleLog(f.DebugLog)
	}

	if f.GDB {
		builder = builder.DebuggerStub()
	}

	for _, device := range f.NetDevices {
		builder = builder.NetDevice(device)
	}

	return builder.Extra(f.ExtraArgs...)
}

func (f *flags) launchSpec() launch.Spec {
	spec := launch.Spec{
		Executable:   f.QemuBin,
		Builder:      f.builder(),
		DryRun:       f.DryRun,
		ReadyTimeout: f.ReadyTimeout,
	}

	if !f.NoTPM {
		spec.Emulator = f.SwtpmBin
	}

	return spec
}
