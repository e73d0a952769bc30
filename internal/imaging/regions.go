package imaging

import (
	"math"

	"github.com/ironsheep/pixelsum-mcp/internal/pixelsum"
)

// Region is a query rectangle given by two inclusive corners in any order.
type Region struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// RegionStatsResult contains every aggregate for one region.
type RegionStatsResult struct {
	Region         Region  `json:"region"`
	Sum            uint32  `json:"sum"`
	Average        float64 `json:"average"`
	NonZeroCount   int     `json:"nonzero_count"`
	NonZeroAverage float64 `json:"nonzero_average"`
	// NominalArea is the requested pixel count, the divisor of Average.
	NominalArea float64 `json:"nominal_area"`
}

// RegionStats evaluates all aggregates of r against ix.
func RegionStats(ix *pixelsum.Index, r Region) *RegionStatsResult {
	s := ix.Stats(r.X0, r.Y0, r.X1, r.Y1)
	return &RegionStatsResult{
		Region:         r,
		Sum:            s.Sum,
		Average:        s.Average,
		NonZeroCount:   s.NonZeroCount,
		NonZeroAverage: s.NonZeroAverage,
		NominalArea:    pixelsum.NominalArea(r.X0, r.Y0, r.X1, r.Y1),
	}
}

// CompareRegionsResult contains region comparison information
type CompareRegionsResult struct {
	Region1 *RegionStatsResult `json:"region1"`
	Region2 *RegionStatsResult `json:"region2"`

	// Deltas are region2 minus region1.
	SumDelta            int64   `json:"sum_delta"`
	AverageDelta        float64 `json:"average_delta"`
	NonZeroCountDelta   int     `json:"nonzero_count_delta"`
	NonZeroAverageDelta float64 `json:"nonzero_average_delta"`

	SameSize bool `json:"same_size"`
	// SimilarityScore is 1 - |average2-average1|/255, rounded to 3 decimals.
	SimilarityScore float64 `json:"similarity_score"`
}

// CompareRegions compares two regions of the same index
func CompareRegions(ix *pixelsum.Index, r1, r2 Region) *CompareRegionsResult {
	s1 := RegionStats(ix, r1)
	s2 := RegionStats(ix, r2)

	avgDelta := s2.Average - s1.Average
	similarity := 1.0 - math.Abs(avgDelta)/255.0

	return &CompareRegionsResult{
		Region1:             s1,
		Region2:             s2,
		SumDelta:            int64(s2.Sum) - int64(s1.Sum),
		AverageDelta:        avgDelta,
		NonZeroCountDelta:   s2.NonZeroCount - s1.NonZeroCount,
		NonZeroAverageDelta: s2.NonZeroAverage - s1.NonZeroAverage,
		SameSize:            s1.NominalArea == s2.NominalArea,
		SimilarityScore:     math.Round(similarity*1000) / 1000,
	}
}

// IndexInfo contains metadata about a stored index.
type IndexInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// TotalSum is the sum of every pixel in the grid.
	TotalSum uint32 `json:"total_sum"`

	// NonZeroPixels is the number of pixels with a non-zero value.
	NonZeroPixels int `json:"nonzero_pixels"`

	// Mean is TotalSum over Width*Height.
	Mean float64 `json:"mean"`

	// Coverage is the fraction of non-zero pixels, rounded to 4 decimals.
	Coverage float64 `json:"coverage"`
}

// DescribeIndex summarises ix under the given name.
func DescribeIndex(name string, ix *pixelsum.Index) *IndexInfo {
	w, h := ix.Width(), ix.Height()
	s := ix.Stats(0, 0, w-1, h-1)
	return &IndexInfo{
		Name:          name,
		Width:         w,
		Height:        h,
		TotalSum:      s.Sum,
		NonZeroPixels: s.NonZeroCount,
		Mean:          s.Average,
		Coverage:      math.Round(float64(s.NonZeroCount)/float64(w*h)*10000) / 10000,
	}
}
