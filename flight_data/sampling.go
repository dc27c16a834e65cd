package flight_data

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// SamplingPolicy describes how the landing page flight list is drawn from a
// dataset.
type SamplingPolicy struct {
	Buckets   [][]int
	PerBucket int
	Target    int
	Blocklist []string
}

func DefaultSamplingPolicy() SamplingPolicy {
	return SamplingPolicy{
		Buckets: [][]int{
			{2024},
			{2023},
			{2015, 2016, 2017, 2018, 2019},
		},
		PerBucket: 3,
		Target:    14,
		Blocklist: []string{"WN2933", "WN2759", "WN1889", "WN28", "WN2606", "WN1582", "WN1065", "WN448"},
	}
}

type sampler struct {
	r       *Resolver
	blocked map[string]bool
	picked  map[string]bool
	out     []string
}

func (s *sampler) eligible(flight string) bool {
	return flight != NotAvailable && !s.blocked[flight] && !s.picked[flight]
}

func (s *sampler) add(flight string) {
	s.picked[flight] = true
	s.out = append(s.out, flight)
}

// SampleFlights picks a small, varied set of flight numbers: up to
// PerBucket flights from each year bucket with at most one per month, topped
// up from the rest of the dataset until Target is reached. The list is
// ordered by a stable hash so the same dataset always yields the same order.
func (r *Resolver) SampleFlights(policy SamplingPolicy) []string {
	s := &sampler{
		r:       r,
		blocked: make(map[string]bool),
		picked:  make(map[string]bool),
	}
	for _, f := range policy.Blocklist {
		s.blocked[f] = true
	}

	for _, bucket := range policy.Buckets {
		s.pickBucket(bucket, policy.PerBucket)
	}

	for row := 0; row < r.Dataset.Len() && len(s.out) < policy.Target; row++ {
		if flight := r.FlightNumber(row); s.eligible(flight) {
			s.add(flight)
		}
	}

	sort.SliceStable(s.out, func(i, j int) bool {
		return shuffleKey(s.out[i]) < shuffleKey(s.out[j])
	})

	return s.out
}

func (s *sampler) pickBucket(years []int, n int) {
	inBucket := make(map[int]bool, len(years))
	for _, y := range years {
		inBucket[y] = true
	}

	usedMonths := make(map[string]bool)
	count := 0
	ds := s.r.Dataset

	for row := 0; row < ds.Len() && count < n; row++ {
		year, ok := parseInt(ds.Value(row, ColumnYear))
		if !ok || !inBucket[year] {
			continue
		}

		flight := s.r.FlightNumber(row)
		if !s.eligible(flight) {
			continue
		}

		monthYear := fmt.Sprintf("%d-%d", SafeInt(ds.Value(row, ColumnMonth)), year)
		if usedMonths[monthYear] {
			continue
		}
		usedMonths[monthYear] = true

		s.add(flight)
		count++
	}
}

func shuffleKey(flight string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(flight))
	return h.Sum32() % 1000
}
