package data

import (
	"time"

	"macro-parity/internal/model"
)

// Snapshot builds the environment for date: for each indicator, the value of
// the first observation on that calendar day. No interpolation; indicators
// without an observation that day are left out.
func Snapshot(indicators []model.EconomicIndicator, date time.Time) model.Environment {
	env := model.Environment{}
	for _, ind := range indicators {
		for _, obs := range ind.Data {
			if model.SameDay(obs.Date, date) {
				env[ind.Name] = obs.Value
				break
			}
		}
	}
	return env
}

// SnapshotIndex answers the same question as Snapshot with one map lookup per
// indicator instead of a scan, for drivers that query many dates.
type SnapshotIndex struct {
	names  []string
	byDate []map[time.Time]float64
}

func NewSnapshotIndex(indicators []model.EconomicIndicator) *SnapshotIndex {
	idx := &SnapshotIndex{
		names:  make([]string, len(indicators)),
		byDate: make([]map[time.Time]float64, len(indicators)),
	}
	for i, ind := range indicators {
		idx.names[i] = ind.Name
		m := make(map[time.Time]float64, len(ind.Data))
		for _, obs := range ind.Data {
			k := model.DayKey(obs.Date)
			if _, dup := m[k]; dup {
				continue // first observation wins
			}
			m[k] = obs.Value
		}
		idx.byDate[i] = m
	}
	return idx
}

func (s *SnapshotIndex) For(date time.Time) model.Environment {
	env := model.Environment{}
	if s == nil {
		return env
	}
	k := model.DayKey(date)
	for i, m := range s.byDate {
		if v, ok := m[k]; ok {
			env[s.names[i]] = v
		}
	}
	return env
}
