package analysis

import "sort"

// RankByMeanAllocation sorts asset stats descending by mean weight; ties
// break by asset name.
func RankByMeanAllocation(s Summary) []AssetStats {
	out := make([]AssetStats, len(s.Assets))
	copy(out, s.Assets)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Asset < out[j].Asset
	})
	return out
}

// RankBySpread sorts asset stats descending by Spread, i.e. the assets the
// macro tilt moved the most come first.
func RankBySpread(s Summary) []AssetStats {
	out := make([]AssetStats, len(s.Assets))
	copy(out, s.Assets)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Spread != out[j].Spread {
			return out[i].Spread > out[j].Spread
		}
		return out[i].Asset < out[j].Asset
	})
	return out
}
