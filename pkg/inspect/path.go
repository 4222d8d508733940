// Package inspect provides document inspection utilities for the command line.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "IED1/AP1/LD1/XCBR1.Pos.stVal")
//   - Locating instance nodes and resolved data entries
//   - Building instance trees with the resolved overlay under every logical node
//   - Formatting output as indented text or YAML
package inspect

import (
	"errors"
	"fmt"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// Path represents a parsed inspection path.
// Format: device[/accessPoint[/ldInst[/ln[.DO[.DA...]]]]]
//
// A logical node is named by its prefix, class and instance concatenated
// ("XCBR1", "LLN0"). The data part names members of the resolved overlay.
type Path struct {
	Device      string
	AccessPoint string
	LDevice     string
	LN          string

	// Data lists member names below the logical node.
	Data []string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "IED1" - device
//   - "IED1/AP1" - access point
//   - "IED1/AP1/LD1" - logical device
//   - "IED1/AP1/LD1/XCBR1" - logical node
//   - "IED1/AP1/LD1/XCBR1.Pos.stVal" - data member
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	// Check for invalid patterns
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 4 {
		return nil, fmt.Errorf("%w: too many segments", ErrInvalidPath)
	}
	for i, part := range parts[:len(parts)-1] {
		if strings.Contains(part, ".") {
			return nil, fmt.Errorf("%w: data reference in segment %d", ErrInvalidPath, i+1)
		}
	}

	p := &Path{Raw: input, Device: parts[0]}
	if len(parts) > 1 {
		p.AccessPoint = parts[1]
	}
	if len(parts) > 2 {
		p.LDevice = parts[2]
	}
	if len(parts) > 3 {
		ln, data, _ := strings.Cut(parts[3], ".")
		if ln == "" {
			return nil, fmt.Errorf("%w: missing logical node", ErrInvalidPath)
		}
		p.LN = ln
		if data != "" {
			p.Data = strings.Split(data, ".")
			for _, d := range p.Data {
				if d == "" {
					return nil, fmt.Errorf("%w: empty data name", ErrInvalidPath)
				}
			}
		} else if strings.HasSuffix(parts[3], ".") {
			return nil, fmt.Errorf("%w: empty data name", ErrInvalidPath)
		}
	}

	return p, nil
}

// IsData reports whether the path names a member below a logical node.
func (p *Path) IsData() bool {
	return len(p.Data) > 0
}

// String returns the path as a string.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString(p.Device)
	for _, seg := range []string{p.AccessPoint, p.LDevice, p.LN} {
		if seg == "" {
			return sb.String()
		}
		sb.WriteString("/")
		sb.WriteString(seg)
	}
	for _, d := range p.Data {
		sb.WriteString(".")
		sb.WriteString(d)
	}
	return sb.String()
}
