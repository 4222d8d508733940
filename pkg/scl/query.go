package scl

// Devices returns the IED elements directly under the root in document order.
func (d *Document) Devices() []Handle {
	return d.ChildrenByTag(d.root, TagIED)
}

// DeviceByName returns the IED with the given name, or NoHandle.
func (d *Document) DeviceByName(name string) Handle {
	for _, h := range d.Devices() {
		if d.Get(h, "name") == name {
			return h
		}
	}
	return NoHandle
}

// DeviceNames returns the names of all IEDs that carry a name.
func (d *Document) DeviceNames() []string {
	return d.namesOf(d.Devices(), "name")
}

// AccessPointNames returns the names of the access points of a device.
func (d *Document) AccessPointNames(device Handle) []string {
	return d.namesOf(d.ChildrenByTag(device, TagAccessPoint), "name")
}

// AccessPointsWithServer returns the names of the access points of a device
// that own a Server and can therefore be the target of a ServerAt reference.
func (d *Document) AccessPointsWithServer(device Handle) []string {
	var names []string
	for _, ap := range d.ChildrenByTag(device, TagAccessPoint) {
		if d.FirstChild(ap, TagServer) == NoHandle {
			continue
		}
		if name, ok := d.Attr(ap, "name"); ok {
			names = append(names, name)
		}
	}
	return names
}

// AccessPointByName returns the named access point of a device, or NoHandle.
func (d *Document) AccessPointByName(device Handle, name string) Handle {
	for _, ap := range d.ChildrenByTag(device, TagAccessPoint) {
		if d.Get(ap, "name") == name {
			return ap
		}
	}
	return NoHandle
}

// LDeviceInsts returns the inst values of the logical devices of a server.
// Missing inst attributes are reported as empty strings.
func (d *Document) LDeviceInsts(server Handle) []string {
	var insts []string
	for _, ld := range d.ChildrenByTag(server, TagLDevice) {
		insts = append(insts, d.Get(ld, "inst"))
	}
	return insts
}

// LDeviceByInst returns the logical device of a server with the given inst.
func (d *Document) LDeviceByInst(server Handle, inst string) Handle {
	for _, ld := range d.ChildrenByTag(server, TagLDevice) {
		if d.Get(ld, "inst") == inst {
			return ld
		}
	}
	return NoHandle
}

// LogicalNodes returns the LN0 and LN children of a logical device.
func (d *Document) LogicalNodes(ldevice Handle) []Handle {
	return d.ChildrenByTag(ldevice, TagLN0, TagLN)
}

// Descendants returns every descendant of h with one of tags, in document order.
func (d *Document) Descendants(h Handle, tags ...Tag) []Handle {
	var result []Handle
	for _, c := range d.Children(h) {
		for _, t := range tags {
			if d.Tag(c) == t {
				result = append(result, c)
				break
			}
		}
		result = append(result, d.Descendants(c, tags...)...)
	}
	return result
}

func (d *Document) namesOf(hs []Handle, attr string) []string {
	var names []string
	for _, h := range hs {
		if v, ok := d.Attr(h, attr); ok {
			names = append(names, v)
		}
	}
	return names
}
