package telemetry

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/gangmuk/bufferbloater/common"
)

// Replicate is the named series set of one client replicate.
type Replicate struct {
	Index   int
	Dir     string
	Series  map[Channel]common.Series
	Results map[Channel]LoadResult
}

// Get returns the series for c, empty when the channel was not loaded.
func (r *Replicate) Get(c Channel) common.Series {
	return r.Series[c]
}

// Missing lists the channels whose files were absent.
func (r *Replicate) Missing() []Channel {
	var out []Channel
	for _, c := range Channels {
		if res, ok := r.Results[c]; ok && res.Missing {
			out = append(out, c)
		}
	}
	return out
}

// Malformed returns the number of skipped rows across all channels.
func (r *Replicate) Malformed() int {
	n := 0
	for _, res := range r.Results {
		n += res.Malformed
	}
	return n
}

// LoadReplicate loads every channel of one replicate from dir.
func LoadReplicate(dir string, index int, strict bool) (*Replicate, error) {
	r := &Replicate{
		Index:   index,
		Dir:     dir,
		Series:  make(map[Channel]common.Series, len(Channels)),
		Results: make(map[Channel]LoadResult, len(Channels)),
	}
	for _, c := range Channels {
		s, res, err := Load(dir, c.File(index), strict)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", c, err)
		}
		glog.V(1).Infof("loaded %s: %d samples, %d malformed", res.Path, s.Len(), res.Malformed)
		r.Series[c] = s
		r.Results[c] = res
	}
	return r, nil
}

// LoadRun loads replicates 0..count-1 before any rendering starts. Only
// the first replicate is rendered today.
func LoadRun(dir string, count int, strict bool) ([]*Replicate, error) {
	if count < 1 {
		return nil, fmt.Errorf("replicate count %d: need at least one", count)
	}
	out := make([]*Replicate, 0, count)
	for i := 0; i < count; i++ {
		r, err := LoadReplicate(dir, i, strict)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
