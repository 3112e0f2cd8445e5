package descriptor

import (
	"fmt"

	"github.com/avbkit/avbkit/internal/buf"
	"github.com/avbkit/avbkit/internal/format"
)

// Tag identifies a descriptor kind.
type Tag uint64

const (
	TagProperty       Tag = format.TagProperty
	TagHashtree       Tag = format.TagHashtree
	TagHash           Tag = format.TagHash
	TagKernelCmdline  Tag = format.TagKernelCmdline
	TagChainPartition Tag = format.TagChainPartition
)

// String returns the conventional name of the tag.
func (t Tag) String() string {
	switch t {
	case TagProperty:
		return "property"
	case TagHashtree:
		return "hashtree"
	case TagHash:
		return "hash"
	case TagKernelCmdline:
		return "kernel cmdline"
	case TagChainPartition:
		return "chain partition"
	default:
		return fmt.Sprintf("unknown(%d)", uint64(t))
	}
}

// Descriptor is any parsed descriptor view. Concrete types are Property,
// Hash, Hashtree, KernelCmdline, ChainPartition, and Unknown.
type Descriptor interface {
	// Tag returns the descriptor kind.
	Tag() Tag
}

// All walks consecutive descriptors in data (the descriptor table region of
// a vbmeta image) and parses each into its typed view. Descriptors with
// unrecognized tags are preserved as Unknown rather than rejected, matching
// the format's forward-compatibility rule. Any structural violation aborts
// the walk with the underlying error; a clean table yields views in table
// order.
func All(data []byte) ([]Descriptor, error) {
	var out []Descriptor
	rest := data
	for len(rest) > 0 {
		p, err := format.ParsePrefix(rest)
		if err != nil {
			if len(rest) < format.PrefixSize {
				return nil, fmt.Errorf("%w (have %d, need %d)",
					ErrInvalidHeader, len(rest), format.PrefixSize)
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidContents, err)
		}
		total, err := p.TotalSize()
		if err != nil {
			return nil, fmt.Errorf("%w (%d)", ErrInvalidValue, p.NumBytesFollowing)
		}
		contents, next, err := buf.Split(rest, total)
		if err != nil {
			return nil, fmt.Errorf("%w (descriptor needs %d, have %d)",
				ErrInvalidSize, total, len(rest))
		}

		d, err := parseOne(p.Tag, contents)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
		rest = next
	}
	return out, nil
}

func parseOne(tag uint64, contents []byte) (Descriptor, error) {
	switch Tag(tag) {
	case TagProperty:
		return ParseProperty(contents)
	case TagHashtree:
		return ParseHashtree(contents)
	case TagHash:
		return ParseHash(contents)
	case TagKernelCmdline:
		return ParseKernelCmdline(contents)
	case TagChainPartition:
		return ParseChainPartition(contents)
	default:
		return Unknown{RawTag: tag, Contents: contents}, nil
	}
}
