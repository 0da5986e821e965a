package main

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResponse(t *testing.T) {
	for _, tt := range []struct {
		name   string
		body   string
		reason string
		empty  bool
	}{
		{name: "valid", body: `{"homeworks":[{"homework_name":"hw1","status":"approved"}]}`},
		{name: "array body", body: `[{"homeworks":[]}]`, reason: "not a mapping"},
		{name: "null body", body: `null`, reason: "not a mapping"},
		{name: "no homeworks", body: `{"current_date":1}`, reason: "missing homeworks"},
		{name: "homeworks is object", body: `{"homeworks":{"status":"approved"}}`, reason: "homeworks not a list"},
		{name: "homeworks is null", body: `{"homeworks":null}`, reason: "homeworks not a list"},
		{name: "empty list", body: `{"homeworks":[]}`, empty: true},
		{name: "empty first element", body: `{"homeworks":[{}]}`, empty: true},
		{name: "null first element", body: `{"homeworks":[null]}`, empty: true},
		{name: "no status", body: `{"homeworks":[{"homework_name":"hw1"}]}`, reason: "missing status key"},
		{name: "first element not an object", body: `{"homeworks":["hw1"]}`, reason: "missing status key"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var resp any
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))

			err := checkResponse(resp)

			switch {
			case tt.empty:
				var emptyErr *EmptyError
				assert.True(t, errors.As(err, &emptyErr), "got %v", err)
			case tt.reason != "":
				var shapeErr *ShapeError
				require.True(t, errors.As(err, &shapeErr), "got %v", err)
				assert.Equal(t, tt.reason, shapeErr.Reason)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckResponseNotDecoded(t *testing.T) {
	err := checkResponse(map[string]string{"homeworks": "x"})

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "not a mapping", shapeErr.Reason)
}

func TestLatestHomework(t *testing.T) {
	var resp any
	require.NoError(t, json.Unmarshal([]byte(`{"homeworks":[{"homework_name":"new","status":"reviewing"},{"homework_name":"old","status":"approved"}]}`), &resp))
	require.NoError(t, checkResponse(resp))

	assert.Equal(t, "new", latestHomework(resp)["homework_name"])
}
