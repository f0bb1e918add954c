//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The implicit resolver: classifies an untagged plain scalar's text into one
// of the core YAML schema tags (ported from the go-yaml resolver table).

package libyaml

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

type resolveMapItem struct {
	value any
	tag   string
}

// Short-form tags, as resolveMap/resolveTable key their entries and as
// ShortTag normalizes any incoming tag to before lookup. These are
// distinct from the long "tag:yaml.org,2002:..." constants in yaml.go,
// which name the same core schema types in wire form.
const (
	nullTagShort      = "!!null"
	boolTagShort      = "!!bool"
	strTagShort       = "!!str"
	intTagShort       = "!!int"
	floatTagShort     = "!!float"
	timestampTagShort = "!!timestamp"
	binaryTagShort    = "!!binary"
	mergeTagShort     = "!!merge"
)

var (
	resolveTable = make([]byte, 256)
	resolveMap   = make(map[string]resolveMapItem)
)

var initResolveOnce sync.Once

func initResolve() {
	t := resolveTable
	t[int('+')] = 'S'
	t[int('-')] = 'S'
	for _, c := range "0123456789" {
		t[int(c)] = 'D'
	}
	for _, c := range "yYnNtTfFoO~" {
		t[int(c)] = 'M'
	}
	t[int('.')] = '.'

	resolveMapList := []struct {
		v   any
		tag string
		l   []string
	}{
		{v: true, tag: boolTagShort, l: []string{"true", "True", "TRUE"}},
		{v: false, tag: boolTagShort, l: []string{"false", "False", "FALSE"}},
		{tag: nullTagShort, l: []string{"", "~", "null", "Null", "NULL"}},
		{v: math.NaN(), tag: floatTagShort, l: []string{".nan", ".NaN", ".NAN"}},
		{v: math.Inf(+1), tag: floatTagShort, l: []string{".inf", ".Inf", ".INF"}},
		{v: math.Inf(+1), tag: floatTagShort, l: []string{"+.inf", "+.Inf", "+.INF"}},
		{v: math.Inf(-1), tag: floatTagShort, l: []string{"-.inf", "-.Inf", "-.INF"}},
		{v: "<<", tag: mergeTagShort, l: []string{"<<"}},
	}

	m := resolveMap
	for _, item := range resolveMapList {
		for _, s := range item.l {
			m[s] = resolveMapItem{value: item.v, tag: item.tag}
		}
	}
}

func resolvableTag(tag string) bool {
	switch tag {
	case "", strTagShort, boolTagShort, intTagShort, floatTagShort, nullTagShort, timestampTagShort:
		return true
	}
	return false
}

var yamlStyleFloat = regexp.MustCompile(`^[-+]?(\.\d+|\d+(\.\d*)?)([eE][-+]?\d+)?$`)

// Resolve classifies the plain-scalar text in, given an optional explicit
// tag, returning the resolved tag and the decoded Go value.
func Resolve(tag, in string) (rtag string, out any, errOut error) {
	initResolveOnce.Do(initResolve)
	tag = ShortTag(tag)
	if !resolvableTag(tag) {
		return tag, in, nil
	}

	defer func() {
		switch tag {
		case "", rtag, strTagShort, binaryTagShort:
			return
		case floatTagShort:
			if rtag == intTagShort {
				switch v := out.(type) {
				case int64:
					rtag = floatTagShort
					out = float64(v)
					return
				case int:
					rtag = floatTagShort
					out = float64(v)
					return
				}
			}
		}
		errOut = fmt.Errorf("yaml: cannot decode %s `%s` as a %s", ShortTag(rtag), in, ShortTag(tag))
	}()

	hint := byte('N')
	if in != "" {
		hint = resolveTable[in[0]]
	}
	if hint != 0 && tag != strTagShort && tag != binaryTagShort {
		if item, ok := resolveMap[in]; ok {
			return item.tag, item.value, nil
		}

		switch hint {
		case 'M':
			// Already checked the map above.

		case '.':
			floatv, err := strconv.ParseFloat(in, 64)
			if err == nil {
				return floatTagShort, floatv, nil
			}

		case 'D', 'S':
			if tag == "" || tag == timestampTagShort {
				t, ok := parseTimestamp(in)
				if ok {
					return timestampTagShort, t, nil
				}
			}

			plain := strings.ReplaceAll(in, "_", "")
			intv, err := strconv.ParseInt(plain, 0, 64)
			if err == nil {
				if intv == int64(int(intv)) {
					return intTagShort, int(intv), nil
				}
				return intTagShort, intv, nil
			}
			uintv, err := strconv.ParseUint(plain, 0, 64)
			if err == nil {
				return intTagShort, uintv, nil
			}
			if yamlStyleFloat.MatchString(plain) {
				floatv, err := strconv.ParseFloat(plain, 64)
				if err == nil {
					return floatTagShort, floatv, nil
				}
			}
		default:
			panic("internal error: missing handler for resolver table: " + string(rune(hint)) + " (with " + in + ")")
		}
	}
	return strTagShort, in, nil
}

// This is a subset of the formats allowed by the regular expression
// defined at http://yaml.org/type/timestamp.html.
var allowedTimestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

func parseTimestamp(s string) (time.Time, bool) {
	i := 0
	for ; i < len(s); i++ {
		if c := s[i]; c < '0' || c > '9' {
			break
		}
	}
	if i != 4 || i == len(s) || s[i] != '-' {
		return time.Time{}, false
	}
	for _, format := range allowedTimestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
