package catalog

import "github.com/labakery/backend/internal/domain/shared"

// Channel is a sales surface a product can be offered on
type Channel string

const (
	ChannelEcommerce Channel = "ecommerce"
	ChannelPOS       Channel = "pos"
)

// IsValid checks if the channel is known
func (c Channel) IsValid() bool {
	return c == ChannelEcommerce || c == ChannelPOS
}

// ChannelSet is a duplicate-free set of channels in canonical order.
// The empty set means the product is hidden everywhere.
type ChannelSet []Channel

// NewChannelSet validates and deduplicates the given channels
func NewChannelSet(channels ...Channel) (ChannelSet, error) {
	var hasEcommerce, hasPOS bool
	for _, ch := range channels {
		switch ch {
		case ChannelEcommerce:
			hasEcommerce = true
		case ChannelPOS:
			hasPOS = true
		default:
			return nil, shared.NewDomainError("INVALID_CHANNEL", "Channel must be ecommerce or pos: "+string(ch))
		}
	}

	set := ChannelSet{}
	if hasEcommerce {
		set = append(set, ChannelEcommerce)
	}
	if hasPOS {
		set = append(set, ChannelPOS)
	}
	return set, nil
}

// Has reports whether the set contains ch
func (s ChannelSet) Has(ch Channel) bool {
	for _, c := range s {
		if c == ch {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the set is empty
func (s ChannelSet) IsEmpty() bool {
	return len(s) == 0
}

// Strings returns the channels as plain strings
func (s ChannelSet) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}
