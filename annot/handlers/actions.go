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

// Package handlers exposes annotation validation via the HTTP API.
// Pure lookups (tagset, markup rules, record listings) are answered
// directly; anything touching an inscription text goes through the
// worker queue.
package handlers

import (
	"epitag/cnf"
	"epitag/rdb"
	"epitag/records"
)

type Actions struct {
	conf     *cnf.Conf
	radapter *rdb.Adapter
	archive  *records.Archive
}

func NewActions(
	conf *cnf.Conf,
	radapter *rdb.Adapter,
	archive *records.Archive,
) *Actions {
	return &Actions{
		conf:     conf,
		radapter: radapter,
		archive:  archive,
	}
}
