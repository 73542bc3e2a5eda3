package scpi

// Mandatory IEEE 488.2 common commands (spec.md §4.6, §8 scenarios). Each
// type implements exactly the forms 488.2 defines for it; unsupported
// forms fall back to BaseCommand's UndefinedHeader default.

// ClsCommand implements *CLS (488.2 §10.3).
type ClsCommand struct{ BaseCommand }

func (ClsCommand) Meta() CommandType { return NoQuery }

func (ClsCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return ExecCls(d)
}

// EseCommand implements *ESE / *ESE? (488.2 §10.10/§10.11): read-write
// Event Status Enable register.
type EseCommand struct{ BaseCommand }

func (EseCommand) Meta() CommandType { return Both }

func (EseCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	v, err := params.NextInt()
	if err != nil {
		return err
	}
	d.SetESE(byte(v))
	return nil
}

func (EseCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.ESE())).Finish()
}

// EsrCommand implements *ESR? (488.2 §10.12): destructive read of the
// Standard Event Status Register.
type EsrCommand struct{ BaseCommand }

func (EsrCommand) Meta() CommandType { return QueryOnly }

func (EsrCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.ESR())).Finish()
}

// IdnCommand implements *IDN? (488.2 §10.14): four comma-separated fields.
type IdnCommand struct{ BaseCommand }

func (IdnCommand) Meta() CommandType { return QueryOnly }

func (IdnCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	mfr, model, serial, firmware := d.Idn()
	return resp.Data(Character(mfr)).Data(Character(model)).
		Data(Character(serial)).Data(Character(firmware)).Finish()
}

// OpcCommand implements *OPC / *OPC? (488.2 §10.18/§10.19).
type OpcCommand struct{ BaseCommand }

func (OpcCommand) Meta() CommandType { return Both }

func (OpcCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return ExecOpc(d)
}

func (OpcCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	return resp.Data(Bool(true)).Finish()
}

// RstCommand implements *RST (488.2 §10.32). Explicitly does not touch
// interface state, output queue, any enable/event register, power-on flag,
// SRE, STB, or SAV memory (spec.md §4.6).
type RstCommand struct{ BaseCommand }

func (RstCommand) Meta() CommandType { return NoQuery }

func (RstCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	_lg.Info("scpi: *RST")
	return d.Rst()
}

// SreCommand implements *SRE / *SRE? (488.2 §10.34/§10.35): read-write
// Service Request Enable register, masked to 7 bits.
type SreCommand struct{ BaseCommand }

func (SreCommand) Meta() CommandType { return Both }

func (SreCommand) Event(dev Device, ctx *Context, params Parameters) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	v, err := params.NextInt()
	if err != nil {
		return err
	}
	d.SetSRE(byte(v))
	return nil
}

func (SreCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.SRE())).Finish()
}

// StbCommand implements *STB? (488.2 §10.36): status byte including MSS.
type StbCommand struct{ BaseCommand }

func (StbCommand) Meta() CommandType { return QueryOnly }

func (StbCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(Status(d))).Finish()
}

// TstCommand implements *TST? (488.2 §10.38): device self-test.
type TstCommand struct{ BaseCommand }

func (TstCommand) Meta() CommandType { return QueryOnly }

func (TstCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	code, err := d.Tst()
	if err != nil {
		return err
	}
	return resp.Data(Int(code)).Finish()
}

// WaiCommand implements *WAI (488.2 §10.39): no-op for a purely sequential
// device (spec.md §4.6/§5).
type WaiCommand struct{ BaseCommand }

func (WaiCommand) Meta() CommandType { return NoQuery }

func (WaiCommand) Event(dev Device, ctx *Context, params Parameters) error {
	return nil
}

// Ieee488Tree returns the root's mandatory common-command children. Callers
// build their own root branches and append these (spec.md §3 "Common-
// command nodes appear only as children of the root").
func Ieee488Tree() []*Node {
	return []*Node{
		CommonLeaf("CLS", ClsCommand{}),
		CommonLeaf("ESE", EseCommand{}),
		CommonLeaf("ESR", EsrCommand{}),
		CommonLeaf("IDN", IdnCommand{}),
		CommonLeaf("OPC", OpcCommand{}),
		CommonLeaf("RST", RstCommand{}),
		CommonLeaf("SRE", SreCommand{}),
		CommonLeaf("STB", StbCommand{}),
		CommonLeaf("TST", TstCommand{}),
		CommonLeaf("WAI", WaiCommand{}),
	}
}
