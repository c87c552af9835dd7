package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocListsRoutes(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	routes := map[string][]string{
		"/wallet/create":            {"post"},
		"/wallet/load":              {"post"},
		"/wallet/sync":              {"post"},
		"/wallet/accounts":          {"get", "post"},
		"/wallet/accounts/qr":       {"get"},
		"/wallet/accounts/address":  {"get"},
		"/wallet/second-password":   {"post"},
		"/wallet/double-encryption": {"post"},
		"/wallet/mnemonic":          {"get"},
		"/wallet/wipe":              {"post"},
	}
	assert.Len(t, parsed.Paths, len(routes))
	for path, methods := range routes {
		require.Contains(t, parsed.Paths, path)
		for _, m := range methods {
			assert.Contains(t, parsed.Paths[path], m, path)
		}
	}
}
