package application

import (
	"testing"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingTableLookup(t *testing.T) {
	table, err := NewRoutingTable(map[string]string{
		" 120363401821218041@g.us ": "120363342030232133@g.us",
		"120363401821218042@g.us":   "120363342030232133@g.us",
	})
	require.NoError(t, err)

	destination, ok := table.Destination(sourceGroup)
	require.True(t, ok)
	assert.Equal(t, destGroup, destination)
	assert.True(t, table.IsSource("120363401821218042@g.us"))
	assert.False(t, table.IsSource(destGroup))
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []Route{
		{Source: "120363401821218041@g.us", Destination: destGroup},
		{Source: "120363401821218042@g.us", Destination: destGroup},
	}, table.Routes())
}

func TestRoutingTableRejectsInvalidRoutes(t *testing.T) {
	cases := map[string]map[string]string{
		"empty destination": {"a@g.us": " "},
		"self route":        {"a@g.us": "a@g.us"},
		"chained routes":    {"a@g.us": "b@g.us", "b@g.us": "c@g.us"},
	}
	for name, routes := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRoutingTable(routes)
			require.Error(t, err)
		})
	}
}

func TestRoutingTableEmptyIsValid(t *testing.T) {
	table, err := NewRoutingTable(nil)
	require.NoError(t, err)
	_, ok := table.Destination(domain.ConversationID("a@g.us"))
	assert.False(t, ok)
}
