package scpi

// RegisterTag identifies one of the SCPI-mandated event registers, or a
// device-defined additional one (spec.md §3).
type RegisterTag int

const (
	Operation RegisterTag = iota
	Questionable
)

// ScpiDevice is the capability interface the core's mandated common
// commands and STATus subsystem require of the embedding program
// (spec.md §6). A concrete device embeds *IEEE488Core and implements the
// five methods it does not supply: Cls, Rst, Tst, Idn and MessageAvailable.
type ScpiDevice interface {
	Device

	Register(tag RegisterTag) *EventRegister

	SRE() byte
	SetSRE(byte)
	ESR() byte
	SetESR(byte)
	ESE() byte
	SetESE(byte)

	// MessageAvailable reports whether bytes are pending in the transport's
	// output queue (STB bit 4, "MAV"); supplied by the transport, not the
	// core (spec.md §3).
	MessageAvailable() bool

	// Cls/Rst/Tst are device-specific hooks invoked by *CLS/*RST/*TST?
	// (spec.md §6).
	Cls() error
	Rst() error
	Tst() (int16, error)

	// Idn returns the four *IDN? fields: manufacturer, model, serial,
	// firmware revision.
	Idn() (mfr, model, serial, firmware string)

	Errors() *ErrorQueue
}

// IEEE488Core is an embeddable base implementing the register storage,
// error queue, and STB-synthesis algorithm common to every ScpiDevice
// (spec.md §3/§4.6). Concrete devices embed this and add Cls/Rst/Tst/Idn
// and MessageAvailable.
type IEEE488Core struct {
	oper  EventRegister
	ques  EventRegister
	sre   byte
	esr   byte
	ese   byte
	queue ErrorQueue
}

// NewIEEE488Core returns a core with power-on register/queue state.
func NewIEEE488Core(queueCapacity int) *IEEE488Core {
	return &IEEE488Core{
		oper:  *NewEventRegister(),
		ques:  *NewEventRegister(),
		queue: *NewErrorQueue(queueCapacity),
	}
}

func (c *IEEE488Core) Register(tag RegisterTag) *EventRegister {
	switch tag {
	case Questionable:
		return &c.ques
	default:
		return &c.oper
	}
}

func (c *IEEE488Core) SRE() byte      { return c.sre & 0x7F }
func (c *IEEE488Core) SetSRE(v byte)  { c.sre = v & 0x7F }
func (c *IEEE488Core) ESR() byte      { v := c.esr; c.esr = 0; return v }
func (c *IEEE488Core) SetESR(v byte)  { c.esr = v }
func (c *IEEE488Core) ESE() byte      { return c.ese }
func (c *IEEE488Core) SetESE(v byte)  { c.ese = v }
func (c *IEEE488Core) Errors() *ErrorQueue { return &c.queue }

// peekESR reads ESR without the *ESR?-style destructive clear, used
// internally by STB synthesis.
func (c *IEEE488Core) peekESR() byte { return c.esr }

// Status synthesizes the 8-bit status byte, including the MSS bit, per
// spec.md §3/§4.6: bit 7 OPERation summary, bit 6 MSS (set when any other
// bit intersects SRE), bit 5 ESB, bit 4 MAV (device-supplied), bit 3
// QUEStionable summary, bit 2 error-queue-nonempty.
func Status(dev ScpiDevice) byte {
	var stb byte
	if dev.Register(Operation).Summary() {
		stb |= 0x80
	}
	if dev.Register(Questionable).Summary() {
		stb |= 0x08
	}
	if dev.ESE()&peekESR(dev) != 0 {
		stb |= 0x20
	}
	if !dev.Errors().IsEmpty() {
		stb |= 0x04
	}
	if dev.MessageAvailable() {
		stb |= 0x10
	}
	if stb&dev.SRE() != 0 {
		stb |= 0x40
	}
	return stb
}

// peekESR reads a device's ESR without the *ESR?-style destructive clear.
// ScpiDevice only exposes a destructive ESR() (matching *ESR? exactly), so
// Status uses the IEEE488Core-private accessor when available; for any
// other device shape it returns 0, so such a device never sets ESB.
func peekESR(dev ScpiDevice) byte {
	if c, ok := dev.(interface{ peekESR() byte }); ok {
		return c.peekESR()
	}
	return dev.ESE() & 0 // unknown device shape: no ESB contribution
}

// HandleError is the default Device.HandleError: OR the error's ESR mask
// into ESR, then push it onto the error queue (spec.md §4.6/§7). A device
// embedding IEEE488Core gets this for free by delegating to it.
func (c *IEEE488Core) HandleError(err *Error) {
	if err == nil {
		return
	}
	c.esr |= err.Code.ESRMask()
	if c.queue.Len() == len(c.queue.buf) {
		_lg.Warnf("scpi: error queue overflow, dropping %v", err)
	}
	c.queue.Push(*err)
}

// ExecCls implements *CLS's mandated effect: clear event words of all
// registers, clear ESR, clear the error queue; the device-specific Cls
// hook runs first (spec.md §4.6).
func ExecCls(dev ScpiDevice) error {
	if err := dev.Cls(); err != nil {
		return err
	}
	dev.Register(Operation).ClearEvent()
	dev.Register(Questionable).ClearEvent()
	dev.SetESR(0)
	dev.Errors().Clear()
	return nil
}

// ExecOpc implements *OPC's mandated effect: for a purely sequential
// device the no-operation-pending flag is always true, so this pushes
// OperationComplete into the queue and sets ESR bit 0 immediately
// (spec.md §4.6, resolving the ambiguity noted in SPEC_FULL.md).
func ExecOpc(dev ScpiDevice) error {
	dev.HandleError(NewError(OperationComplete))
	return nil
}
