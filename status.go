package scpi

// Bit positions within the SCPI OPERation event register (spec.md §4.6
// names the register; the bit vocabulary itself is carried over from the
// original's OperationBits enum since it's part of the mandated status
// model, not one of the excluded SENSe/TRIGger/MEASure subsystems).
const (
	OperCalibrating      uint16 = 1 << 0
	OperSettling         uint16 = 1 << 1
	OperRanging          uint16 = 1 << 2
	OperSweeping         uint16 = 1 << 3
	OperMeasuring        uint16 = 1 << 4
	OperWaitingForTrigger uint16 = 1 << 5
	OperWaitingForArm    uint16 = 1 << 6
	OperCorrecting       uint16 = 1 << 8
	OperProgramRunning   uint16 = 1 << 10
)

// Bit positions within the SCPI QUEStionable event register.
const (
	QuesVoltage        uint16 = 1 << 0
	QuesCurrent        uint16 = 1 << 1
	QuesTime           uint16 = 1 << 2
	QuesPower          uint16 = 1 << 3
	QuesTemperature    uint16 = 1 << 4
	QuesFrequency      uint16 = 1 << 5
	QuesPhase          uint16 = 1 << 6
	QuesModulation     uint16 = 1 << 7
	QuesCalibration    uint16 = 1 << 8
	QuesCommandWarning uint16 = 1 << 14
)

// condCommand implements `...:CONDition?` for a given register tag.
type condCommand struct {
	BaseCommand
	tag RegisterTag
}

func (c condCommand) Meta() CommandType { return QueryOnly }

func (c condCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.Register(c.tag).Condition())).Finish()
}

// eventCommand implements the default (unnamed) `[:EVENt]?` query, a
// destructive read.
type eventCommand struct {
	BaseCommand
	tag RegisterTag
}

func (c eventCommand) Meta() CommandType { return QueryOnly }

func (c eventCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.Register(c.tag).Event())).Finish()
}

// enableCommand implements `...:ENABle` / `...:ENABle?`.
type enableCommand struct {
	BaseCommand
	tag RegisterTag
}

func (c enableCommand) Meta() CommandType { return Both }

func (c enableCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	v, err := params.NextInt()
	if err != nil {
		return err
	}
	d.Register(c.tag).SetEnable(uint16(v))
	return nil
}

func (c enableCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.Register(c.tag).Enable())).Finish()
}

// ptrCommand implements `...:PTRansition` / `...:PTRansition?`.
type ptrCommand struct {
	BaseCommand
	tag RegisterTag
}

func (c ptrCommand) Meta() CommandType { return Both }

func (c ptrCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	v, err := params.NextInt()
	if err != nil {
		return err
	}
	d.Register(c.tag).SetPTR(uint16(v))
	return nil
}

func (c ptrCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.Register(c.tag).PTR())).Finish()
}

// ntrCommand implements `...:NTRansition` / `...:NTRansition?`.
type ntrCommand struct {
	BaseCommand
	tag RegisterTag
}

func (c ntrCommand) Meta() CommandType { return Both }

func (c ntrCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	v, err := params.NextInt()
	if err != nil {
		return err
	}
	d.Register(c.tag).SetNTR(uint16(v))
	return nil
}

func (c ntrCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.Register(c.tag).NTR())).Finish()
}

// statPresCommand implements STATus:PRESet: both OPER and QUES registers
// to enable=0, ptr=0xFFFF, ntr=0; event/condition untouched (spec.md §4.6).
type statPresCommand struct{ BaseCommand }

func (statPresCommand) Meta() CommandType { return NoQuery }

func (statPresCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	d.Register(Operation).Preset()
	d.Register(Questionable).Preset()
	return nil
}

// registerTree builds the `:CONDition?`, `:ENABle`, `[:EVENt]?` (default
// leaf), `:NTRansition`, `:PTRansition` children shared by OPERation and
// QUEStionable, per scpi1999/status.rs's generic EventCommand family
// (spec.md's distillation omits this subtree; SPEC_FULL.md supplements it).
func registerTree(tag RegisterTag) []*Node {
	return []*Node{
		DefaultLeaf("EVENt", eventCommand{tag: tag}),
		Leaf("CONDition", condCommand{tag: tag}),
		Leaf("ENABle", enableCommand{tag: tag}),
		Leaf("NTRansition", ntrCommand{tag: tag}),
		Leaf("PTRansition", ptrCommand{tag: tag}),
	}
}

// StatusTree builds the STATus:OPERation / STATus:QUEStionable / STATus:
// PRESet subtree (spec.md §4.6).
func StatusTree() *Node {
	return Branch("STATus",
		Branch("OPERation", registerTree(Operation)...),
		Branch("QUEStionable", registerTree(Questionable)...),
		Leaf("PRESet", statPresCommand{}),
	)
}
