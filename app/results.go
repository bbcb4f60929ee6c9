package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// ResultSet is the query response container. Key and Value of every ABCI
// query response hold one ResultSet each, with entries at the same position
// belonging together.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

var _ barter.Persistent = (*ResultSet)(nil)

func (rs *ResultSet) Reset()         { *rs = ResultSet{} }
func (rs *ResultSet) String() string { return proto.CompactTextString(rs) }
func (*ResultSet) ProtoMessage()     {}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []barter.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []barter.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]barter.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "mismatched result set size: %d keys, %d values", len(kref), len(vref))
	}
	mods := make([]barter.Model, len(kref))
	for i := range mods {
		mods[i] = barter.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o barter.Persistent) error {
	var res ResultSet
	if err := proto.Unmarshal(bz, &res); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return proto.Unmarshal(res.Results[0], o)
}
