// Package xjson is the single place the JSON codec is chosen. Decision
// records and batch metadata are small documents written on every probe
// round, so the engine uses goccy's encoder; swapping back to encoding/json
// only touches this file.
package xjson

import (
	stdjson "encoding/json"

	gjson "github.com/goccy/go-json"
)

func Marshal(v interface{}) ([]byte, error) {
	return gjson.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return gjson.Unmarshal(data, v)
}

// RawMessage stays interchangeable with encoding/json's RawMessage.
type RawMessage = stdjson.RawMessage
