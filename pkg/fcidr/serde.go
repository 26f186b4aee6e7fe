package fcidr

import (
	"encoding/json"

	"github.com/cidrctl/fcidr/pkg/cidr"
	"github.com/vmihailenco/msgpack/v5"
)

// MarshalJSON renders the set as a JSON array of Cidr strings, in
// ascending order — the iterator's own output order, so re-parsing is a
// pure replay of disjoint unions.
func (f *Fcidr) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Slice())
}

// UnmarshalJSON reconstructs a set by unioning each element of a JSON
// array of Cidr strings into a fresh empty set, in order. Because each
// emitted CIDR was disjoint from the others when serialized, the result
// equals the original set.
func (f *Fcidr) UnmarshalJSON(data []byte) error {
	var items []cidr.Cidr
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	fresh := NewEmpty()
	for _, c := range items {
		fresh.Union(c)
	}
	*f = *fresh
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder, giving Fcidr a second,
// binary wire form alongside its JSON array — the same ordered sequence
// of Cidr strings, just MessagePack-encoded rather than JSON-encoded.
func (f *Fcidr) EncodeMsgpack(enc *msgpack.Encoder) error {
	items := f.Slice()
	strs := make([]string, len(items))
	for i, c := range items {
		strs[i] = c.String()
	}
	return enc.Encode(strs)
}

// DecodeMsgpack implements msgpack.CustomDecoder, the binary-adapter
// counterpart of UnmarshalJSON.
func (f *Fcidr) DecodeMsgpack(dec *msgpack.Decoder) error {
	var strs []string
	if err := dec.Decode(&strs); err != nil {
		return err
	}
	fresh := NewEmpty()
	for _, s := range strs {
		c, err := cidr.Parse(s)
		if err != nil {
			return err
		}
		fresh.Union(c)
	}
	*f = *fresh
	return nil
}
