package scpi

import (
	"bytes"
	"strconv"
)

// NumericList parses the content of an expression token as a comma-separated
// list of decimal numerics or inclusive `a:b` ranges (spec.md §4.2).
type NumericList struct {
	body []byte
}

// NumericListItem is either a single value or an inclusive range.
type NumericListItem struct {
	From    float64
	To      float64
	IsRange bool
}

// ParseNumericList validates and parses body (the raw bytes between the
// parentheses of an ExpressionProgramData token).
func ParseNumericList(body []byte) ([]NumericListItem, error) {
	if len(body) == 0 {
		return nil, NewError(InvalidExpression)
	}
	var items []NumericListItem
	for _, part := range bytes.Split(body, []byte{','}) {
		if len(part) == 0 {
			return nil, NewError(InvalidExpression)
		}
		if idx := bytes.IndexByte(part, ':'); idx >= 0 {
			from, err := strconv.ParseFloat(string(part[:idx]), 64)
			if err != nil {
				return nil, NewError(InvalidExpression)
			}
			to, err := strconv.ParseFloat(string(part[idx+1:]), 64)
			if err != nil {
				return nil, NewError(InvalidExpression)
			}
			items = append(items, NumericListItem{From: from, To: to, IsRange: true})
			continue
		}
		v, err := strconv.ParseFloat(string(part), 64)
		if err != nil {
			return nil, NewError(InvalidExpression)
		}
		items = append(items, NumericListItem{From: v, To: v})
	}
	return items, nil
}

// ChannelSpec is one comma-separated item of a channel list: either a
// `!`-joined tuple of dimension indices, or (one endpoint of) a range.
type ChannelSpec struct {
	Dims []int64
}

// ChannelListItem is a single spec or a two-endpoint range of equal
// dimension (spec.md §4.2).
type ChannelListItem struct {
	From    ChannelSpec
	To      ChannelSpec
	IsRange bool
}

// ParseChannelList parses the content of an expression token as a SCPI
// channel list: leading '@', then comma-separated channel specs.
func ParseChannelList(body []byte) ([]ChannelListItem, error) {
	if len(body) == 0 || body[0] != '@' {
		return nil, NewError(InvalidExpression)
	}
	rest := body[1:]
	if len(rest) == 0 {
		return nil, NewError(InvalidExpression)
	}
	var items []ChannelListItem
	for _, part := range bytes.Split(rest, []byte{','}) {
		if len(part) == 0 {
			return nil, NewError(InvalidExpression)
		}
		if idx := bytes.IndexByte(part, ':'); idx >= 0 {
			from, err := parseChannelSpec(part[:idx])
			if err != nil {
				return nil, err
			}
			to, err := parseChannelSpec(part[idx+1:])
			if err != nil {
				return nil, err
			}
			if len(from.Dims) != len(to.Dims) {
				return nil, NewError(InvalidExpression)
			}
			items = append(items, ChannelListItem{From: from, To: to, IsRange: true})
			continue
		}
		spec, err := parseChannelSpec(part)
		if err != nil {
			return nil, err
		}
		items = append(items, ChannelListItem{From: spec})
	}
	return items, nil
}

func parseChannelSpec(s []byte) (ChannelSpec, error) {
	if len(s) == 0 {
		return ChannelSpec{}, NewError(InvalidExpression)
	}
	var dims []int64
	for _, piece := range bytes.Split(s, []byte{'!'}) {
		v, err := strconv.ParseInt(string(piece), 10, 64)
		if err != nil {
			return ChannelSpec{}, NewError(InvalidExpression)
		}
		dims = append(dims, v)
	}
	return ChannelSpec{Dims: dims}, nil
}
