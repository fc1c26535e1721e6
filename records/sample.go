// Copyright 2025 EPITAG contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package records

import (
	"math/rand"
	"sort"
	"strings"

	"epitag/merror"
)

const topDecileQuantile = 0.9

// SampleTopDecile draws n records from the longest decile of the
// archive (by interpretive text length), the selection strategy used
// for the gold-standard annotation batches: long inscriptions give the
// annotators enough grammatical context. A fixed seed makes the draw
// reproducible across runs. When fewer than n records qualify, all of
// them are returned.
func (arch *Archive) SampleTopDecile(n int, seed int64) ([]Record, error) {
	if n <= 0 {
		return nil, merror.InputError{Msg: "sample size must be positive"}
	}
	var withText []Record
	for _, rec := range arch.items {
		if strings.TrimSpace(rec.TextInterpretiveWord) != "" {
			withText = append(withText, rec)
		}
	}
	if len(withText) == 0 {
		return []Record{}, nil
	}

	lengths := make([]int, len(withText))
	for i, rec := range withText {
		lengths[i] = len([]rune(strings.TrimSpace(rec.TextInterpretiveWord)))
	}
	threshold := quantile(lengths, topDecileQuantile)

	var top []Record
	for i, rec := range withText {
		if lengths[i] >= threshold {
			top = append(top, rec)
		}
	}

	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(top), func(i, j int) {
		top[i], top[j] = top[j], top[i]
	})
	if n > len(top) {
		n = len(top)
	}
	ans := make([]Record, n)
	copy(ans, top[:n])
	sort.Slice(ans, func(i, j int) bool {
		return ans[i].ID < ans[j].ID
	})
	return ans, nil
}

// quantile returns the q-quantile of values using the same
// linear-interpolation convention as the original extraction pipeline,
// rounded down to an integer threshold.
func quantile(values []int, q float64) int {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return int(float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo]))
}
