package common

import (
	"encoding/json"
	"os"
	"strconv"
)

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func InStringArray(a []string, s string) (index int, found bool) {
	var h string
	for index, h = range a {
		found = h == s
		if found {
			return
		}
	}

	index = -1
	return
}

// RemoveFromStringArray returns a copy of `a` without the element at `index`,
// keeping the order of the rest.
func RemoveFromStringArray(a []string, index int) []string {
	if index < 0 || index >= len(a) {
		return a
	}

	n := make([]string, 0, len(a)-1)
	n = append(n, a[:index]...)
	return append(n, a[index+1:]...)
}

// Function to wrap calls to `json.Unmarshall` that cannot fail
//
// This function should only be used when doing calls that cannot fails,
// e.g. reading the content of the on-disk storage which was serialized by council.
// It ensures no silent corruption of data can happen
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

func EncodeJSONValue(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func DecodeJSONValue(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}

// ParseUint64 parses a base-10 unsigned integer, used for room ids and
// heights given on the command line.
func ParseUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
