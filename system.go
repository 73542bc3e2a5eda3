package scpi

// SYSTem subsystem (spec.md §4.6), grounded on the original's
// `scpi_system!()` tree layout: SYSTem:ERRor has children ALL, a default
// leaf NEXT, and COUNt; SYSTem:VERSion is a fixed constant.

type systErrNextCommand struct{ BaseCommand }

func (systErrNextCommand) Meta() CommandType { return QueryOnly }

func (systErrNextCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	e, ok := d.Errors().Pop()
	if !ok {
		e = Error{Code: NoError}
	}
	return resp.Data(e).Finish()
}

type systErrAllCommand struct{ BaseCommand }

func (systErrAllCommand) Meta() CommandType { return QueryOnly }

func (systErrAllCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	errs := d.Errors().All()
	if len(errs) == 0 {
		return resp.Data(Error{Code: NoError}).Finish()
	}
	for _, e := range errs {
		resp.Data(e)
	}
	return resp.Finish()
}

type systErrCountCommand struct{ BaseCommand }

func (systErrCountCommand) Meta() CommandType { return QueryOnly }

func (systErrCountCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	d, ok := dev.(ScpiDevice)
	if !ok {
		return NewError(DeviceSpecificError)
	}
	return resp.Data(Int(d.Errors().Len())).Finish()
}

type systVersCommand struct{ BaseCommand }

func (systVersCommand) Meta() CommandType { return QueryOnly }

func (systVersCommand) Query(dev Device, ctx *Context, params Parameters, resp *ResponseUnit) error {
	return resp.Data(Character("1999.0")).Finish()
}

// SystemTree builds the SYSTem:ERRor / SYSTem:VERSion subtree.
func SystemTree() *Node {
	return Branch("SYSTem",
		Branch("ERRor",
			DefaultLeaf("NEXT", systErrNextCommand{}),
			Leaf("ALL", systErrAllCommand{}),
			Leaf("COUNt", systErrCountCommand{}),
		),
		Leaf("VERSion", systVersCommand{}),
	)
}
