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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExport = `[
	{
		"LIST-ID": 44120,
		"inscription": "D(is) M(anibus) / Iuli[us in]fans",
		"text_conservative": "D M Iulius infans",
		"text_interpretive_word": "Dis Manibus Iulius infans",
		"type_of_inscription_auto": "epitaph",
		"dating": {"not_before": 100, "not_after": 200},
		"geography": {"latitude": 41.9, "longitude": 12.5, "urban_context_city": "Roma"},
		"text_length": 25
	},
	{
		"LIST-ID": "9021",
		"inscription": "hic situs est",
		"text_conservative": "hic situs est",
		"text_interpretive_word": "hic situs est",
		"dating": {"not_before": null, "not_after": null},
		"geography": {"latitude": null, "longitude": null},
		"text_length": 13
	}
]`

func writeTestArchive(t *testing.T) *Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(testExport), 0o644))
	arch, err := Load(&Conf{DataPath: path})
	require.NoError(t, err)
	return arch
}

func TestLoadAcceptsNumericAndStringIDs(t *testing.T) {
	arch := writeTestArchive(t)
	assert.Equal(t, 2, arch.Size())

	rec, err := arch.Get("44120")
	require.NoError(t, err)
	assert.Equal(t, "epitaph", rec.TypeOfInscription)
	assert.Equal(t, 4, rec.NumTokens())

	rec, err = arch.Get("9021")
	require.NoError(t, err)
	assert.Equal(t, "hic situs est", rec.TextInterpretiveWord)
}

func TestGetUnknownRecord(t *testing.T) {
	arch := writeTestArchive(t)
	_, err := arch.Get("1")
	assert.Error(t, err)
}

func TestRecordPreview(t *testing.T) {
	rec := Record{TextInterpretiveWord: "Dis Manibus sacrum"}
	assert.Equal(t, "Dis Manibus sacrum", rec.Preview(50))
	assert.Equal(t, "Dis M...", rec.Preview(5))
}

func TestSampleTopDecileReproducible(t *testing.T) {
	items := make([]Record, 0, 100)
	for i := 0; i < 100; i++ {
		items = append(items, Record{
			ID:                   ID(fmt.Sprintf("r%03d", i)),
			TextInterpretiveWord: strings.Repeat("verba ", i+1),
		})
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	arch, err := Load(&Conf{DataPath: path})
	require.NoError(t, err)

	first, err := arch.SampleTopDecile(5, 42)
	require.NoError(t, err)
	assert.Len(t, first, 5)

	second, err := arch.SampleTopDecile(5, 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// only long inscriptions may be drawn
	minLen := len(strings.Repeat("verba ", 85))
	for _, rec := range first {
		assert.GreaterOrEqual(t, len(rec.TextInterpretiveWord), minLen)
	}
}

func TestSampleTopDecileRejectsNonPositiveN(t *testing.T) {
	arch := writeTestArchive(t)
	_, err := arch.SampleTopDecile(0, 1)
	assert.Error(t, err)
}
