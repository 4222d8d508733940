package scl

// Tag identifies the element variant of a node.
// Unknown element names keep TagUnknown and their raw name.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagSCL
	TagHeader
	TagPrivate
	TagText
	TagIED
	TagServices
	TagAccessPoint
	TagServer
	TagAuthentication
	TagServerAt
	TagLDevice
	TagLN0
	TagLN
	TagDOI
	TagSDI
	TagDAI
	TagVal
	TagDataTypeTemplates
	TagLNodeType
	TagDOType
	TagDAType
	TagEnumType
	TagDO
	TagSDO
	TagDA
	TagBDA
	TagEnumVal

	tagCount
)

// InstanceKind classifies nodes of the instance tree.
type InstanceKind uint8

const (
	InstanceNone InstanceKind = iota
	InstanceDevice
	InstanceAccessPoint
	InstanceServer
	InstanceServerAt
	InstanceLogicalDevice
	InstanceRootLogicalNode
	InstanceLogicalNode
	InstanceObject
	InstanceSubObject
	InstanceAttribute
	InstanceValue
)

// String returns the instance kind name.
func (k InstanceKind) String() string {
	switch k {
	case InstanceDevice:
		return "DEVICE"
	case InstanceAccessPoint:
		return "ACCESS_POINT"
	case InstanceServer:
		return "SERVER"
	case InstanceServerAt:
		return "SERVER_AT"
	case InstanceLogicalDevice:
		return "LOGICAL_DEVICE"
	case InstanceRootLogicalNode:
		return "ROOT_LOGICAL_NODE"
	case InstanceLogicalNode:
		return "LOGICAL_NODE"
	case InstanceObject:
		return "OBJECT_INSTANCE"
	case InstanceSubObject:
		return "SUB_OBJECT_INSTANCE"
	case InstanceAttribute:
		return "ATTRIBUTE_INSTANCE"
	case InstanceValue:
		return "VALUE"
	default:
		return "NONE"
	}
}

// IsOverride reports whether the kind belongs to the override part of the
// instance tree (below a logical node).
func (k InstanceKind) IsOverride() bool {
	switch k {
	case InstanceObject, InstanceSubObject, InstanceAttribute, InstanceValue:
		return true
	default:
		return false
	}
}

// DefinitionKind classifies catalogue type definitions.
type DefinitionKind uint8

const (
	DefinitionNone DefinitionKind = iota
	DefinitionNodeType
	DefinitionObjectType
	DefinitionAttributeType
	DefinitionEnumType
)

// String returns the definition kind name.
func (k DefinitionKind) String() string {
	switch k {
	case DefinitionNodeType:
		return "NODE_TYPE"
	case DefinitionObjectType:
		return "OBJECT_TYPE"
	case DefinitionAttributeType:
		return "ATTRIBUTE_TYPE"
	case DefinitionEnumType:
		return "ENUM_TYPE"
	default:
		return "NONE"
	}
}

// Tag returns the element tag that carries definitions of this kind.
func (k DefinitionKind) Tag() Tag {
	switch k {
	case DefinitionNodeType:
		return TagLNodeType
	case DefinitionObjectType:
		return TagDOType
	case DefinitionAttributeType:
		return TagDAType
	case DefinitionEnumType:
		return TagEnumType
	default:
		return TagUnknown
	}
}

// DefinitionKinds lists all definition kinds in catalogue schema order.
var DefinitionKinds = []DefinitionKind{
	DefinitionNodeType,
	DefinitionObjectType,
	DefinitionAttributeType,
	DefinitionEnumType,
}

// MemberKind classifies the declared children of a definition.
type MemberKind uint8

const (
	MemberNone MemberKind = iota
	MemberDataObject
	MemberSubDataObject
	MemberDataAttribute
	MemberBasicDataAttribute
	MemberEnumValue
)

// String returns the member kind name.
func (k MemberKind) String() string {
	switch k {
	case MemberDataObject:
		return "DO"
	case MemberSubDataObject:
		return "SDO"
	case MemberDataAttribute:
		return "DA"
	case MemberBasicDataAttribute:
		return "BDA"
	case MemberEnumValue:
		return "ENUM_VAL"
	default:
		return "NONE"
	}
}

type tagInfo struct {
	name       string
	instance   InstanceKind
	definition DefinitionKind
	member     MemberKind
}

var tagTable = [tagCount]tagInfo{
	TagUnknown:           {name: ""},
	TagSCL:               {name: "SCL"},
	TagHeader:            {name: "Header"},
	TagPrivate:           {name: "Private"},
	TagText:              {name: "Text"},
	TagIED:               {name: "IED", instance: InstanceDevice},
	TagServices:          {name: "Services"},
	TagAccessPoint:       {name: "AccessPoint", instance: InstanceAccessPoint},
	TagServer:            {name: "Server", instance: InstanceServer},
	TagAuthentication:    {name: "Authentication"},
	TagServerAt:          {name: "ServerAt", instance: InstanceServerAt},
	TagLDevice:           {name: "LDevice", instance: InstanceLogicalDevice},
	TagLN0:               {name: "LN0", instance: InstanceRootLogicalNode},
	TagLN:                {name: "LN", instance: InstanceLogicalNode},
	TagDOI:               {name: "DOI", instance: InstanceObject},
	TagSDI:               {name: "SDI", instance: InstanceSubObject},
	TagDAI:               {name: "DAI", instance: InstanceAttribute},
	TagVal:               {name: "Val", instance: InstanceValue},
	TagDataTypeTemplates: {name: "DataTypeTemplates"},
	TagLNodeType:         {name: "LNodeType", definition: DefinitionNodeType},
	TagDOType:            {name: "DOType", definition: DefinitionObjectType},
	TagDAType:            {name: "DAType", definition: DefinitionAttributeType},
	TagEnumType:          {name: "EnumType", definition: DefinitionEnumType},
	TagDO:                {name: "DO", member: MemberDataObject},
	TagSDO:               {name: "SDO", member: MemberSubDataObject},
	TagDA:                {name: "DA", member: MemberDataAttribute},
	TagBDA:               {name: "BDA", member: MemberBasicDataAttribute},
	TagEnumVal:           {name: "EnumVal", member: MemberEnumValue},
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, tagCount)
	for t := TagSCL; t < tagCount; t++ {
		m[tagTable[t].name] = t
	}
	return m
}()

// ParseTag returns the tag for an element name (without namespace prefix).
func ParseTag(name string) Tag {
	return tagsByName[name]
}

// String returns the element name of the tag.
func (t Tag) String() string {
	if t >= tagCount || t == TagUnknown {
		return "UNKNOWN"
	}
	return tagTable[t].name
}

// InstanceKind returns the instance-tree kind of the tag.
func (t Tag) InstanceKind() InstanceKind {
	if t >= tagCount {
		return InstanceNone
	}
	return tagTable[t].instance
}

// DefinitionKind returns the catalogue definition kind of the tag.
func (t Tag) DefinitionKind() DefinitionKind {
	if t >= tagCount {
		return DefinitionNone
	}
	return tagTable[t].definition
}

// MemberKind returns the definition-member kind of the tag.
func (t Tag) MemberKind() MemberKind {
	if t >= tagCount {
		return MemberNone
	}
	return tagTable[t].member
}

// IsLogicalNode reports whether the tag is LN0 or LN.
func (t Tag) IsLogicalNode() bool {
	return t == TagLN0 || t == TagLN
}
