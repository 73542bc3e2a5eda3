package scpi

import "testing"

// scenarioDevice is the minimal ScpiDevice used by the end-to-end scenario
// tests (spec.md §8's lettered table): an otherwise-idle device configured
// with the *IDN the table assumes.
type scenarioDevice struct {
	*IEEE488Core
	mav bool
}

func newScenarioDevice() *scenarioDevice {
	return &scenarioDevice{IEEE488Core: NewIEEE488Core(DefaultQueueCapacity)}
}

func (d *scenarioDevice) Cls() error         { return nil }
func (d *scenarioDevice) Rst() error         { return nil }
func (d *scenarioDevice) Tst() (int16, error) { return 0, nil }
func (d *scenarioDevice) Idn() (string, string, string, string) {
	return "GPA-Robotics", "T800-101", "0", "0"
}
func (d *scenarioDevice) MessageAvailable() bool { return d.mav }

// errPushCommand is the scenario table's hypothetical "*ERR <code>" device
// command: pushes the given code into the error queue, which in turn sets
// the corresponding ESR bit (spec.md §8 scenario D).
type errPushCommand struct{ BaseCommand }

func (errPushCommand) Meta() CommandType { return NoQuery }

func (errPushCommand) Event(dev Device, ctx *Context, params Parameters) error {
	v, err := params.NextInt()
	if err != nil {
		return err
	}
	dev.HandleError(NewError(ErrorCode(v)))
	return nil
}

// operWriteCommand is the scenario table's hypothetical "*OPER <value>"
// device command (spec.md §8 scenarios F/G: "assuming `*OPER` writes the
// condition register"). It also writes the same value into the enable
// register: the OPERation summary bit the scenario checks is, per spec.md
// §4.6, condition&enable, so a hypothetical test command that only ever
// touched condition could never make that summary bit observable with a
// power-on enable of 0. Folding the enable write into this one test-only
// command is the resolution recorded here (a real device wires ENABle
// through STATus:OPERation:ENABle); it does not change anything §4.6
// mandates for real commands.
type operWriteCommand struct{ BaseCommand }

func (operWriteCommand) Meta() CommandType { return NoQuery }

func (operWriteCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	v, err := params.NextInt()
	if err != nil {
		return err
	}
	reg := d.Register(Operation)
	reg.SetEnable(uint16(v))
	reg.SetCondition(uint16(v))
	return nil
}

func scenarioRoot() *Node {
	return NewRoot(
		CommonLeaf("ERR", errPushCommand{}),
		CommonLeaf("OPER", operWriteCommand{}),
	)
}

func dispatchString(t *testing.T, root *Node, dev Device, fmtr Formatter, msg string) string {
	t.Helper()
	return string(Dispatch(root, dev, []byte(msg), fmtr))
}

func TestDispatchScenarios(t *testing.T) {
	root := scenarioRoot()

	t.Run("A-idn", func(t *testing.T) {
		dev := newScenarioDevice()
		fmtr := NewBoundedFormatter(4096)
		got := dispatchString(t, root, dev, fmtr, "*IDN?\n")
		want := "GPA-Robotics,T800-101,0,0\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("B-esr-fresh", func(t *testing.T) {
		dev := newScenarioDevice()
		fmtr := NewBoundedFormatter(4096)
		got := dispatchString(t, root, dev, fmtr, "*ESR?\n")
		want := "0\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("C-cls-then-esr", func(t *testing.T) {
		dev := newScenarioDevice()
		fmtr := NewBoundedFormatter(4096)
		got := dispatchString(t, root, dev, fmtr, "*CLS;*ESR?\n")
		want := "0\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("D-E-err-then-queue", func(t *testing.T) {
		dev := newScenarioDevice()
		fmtr := NewBoundedFormatter(4096)

		got := dispatchString(t, root, dev, fmtr, "*ERR -100;*ESR?\n")
		want := "32\n"
		if got != want {
			t.Errorf("scenario D: got %q, want %q", got, want)
		}

		got = dispatchString(t, root, dev, fmtr, "syst:err?\n")
		want = `-100,"Command error"` + "\n"
		if got != want {
			t.Errorf("scenario E: got %q, want %q", got, want)
		}
	})

	t.Run("F-ptr-ntr-oper-cond-event", func(t *testing.T) {
		dev := newScenarioDevice()
		fmtr := NewBoundedFormatter(4096)
		msg := "stat:oper:ptr #H00FF;ntr #HFF00;:*OPER #HFFFF;:stat:oper:cond?;event?\n"
		got := dispatchString(t, root, dev, fmtr, msg)
		want := "32767;255\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("G-stb-oper-stb", func(t *testing.T) {
		dev := newScenarioDevice()
		fmtr := NewBoundedFormatter(4096)
		got := dispatchString(t, root, dev, fmtr, "*stb?;*oper #HFFFF;*stb?\n")
		want := "0;128\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

// TestDispatchEmptyResponseHasNoTrailingNewline covers spec.md §7's "A full
// message that produced no response bytes must not emit a trailing
// newline" requirement.
func TestDispatchEmptyResponseHasNoTrailingNewline(t *testing.T) {
	dev := newScenarioDevice()
	fmtr := NewBoundedFormatter(4096)
	out := Dispatch(scenarioRoot(), dev, []byte("*CLS;*RST\n"), fmtr)
	if len(out) != 0 {
		t.Errorf("expected zero response bytes for an all-event message, got %q", out)
	}
}

// TestDispatchContinuesAfterUnitError covers spec.md §4.4's "dispatcher
// ... continues with subsequent units in the same message" rule.
func TestDispatchContinuesAfterUnitError(t *testing.T) {
	dev := newScenarioDevice()
	fmtr := NewBoundedFormatter(4096)
	out := Dispatch(scenarioRoot(), dev, []byte(":NOSUCH:HEADER;*IDN?\n"), fmtr)
	want := "GPA-Robotics,T800-101,0,0\n"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
	if dev.Errors().IsEmpty() {
		t.Errorf("expected the undefined-header error to be queued")
	}
}

// TestDispatchUndefinedHeaderMnemonic covers the relative/absolute mnemonic
// resolution and default-branch fall-through together with an unresolvable
// header.
func TestDispatchUndefinedHeaderMnemonic(t *testing.T) {
	dev := newScenarioDevice()
	fmtr := NewBoundedFormatter(4096)
	out := Dispatch(scenarioRoot(), dev, []byte(":BOGUS?\n"), fmtr)
	if len(out) != 0 {
		t.Errorf("expected no response bytes, got %q", out)
	}
	e, ok := dev.Errors().Pop()
	if !ok || e.Code != UndefinedHeader {
		t.Errorf("expected UndefinedHeader queued, got %+v (ok=%v)", e, ok)
	}
}
