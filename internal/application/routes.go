package application

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/techrelay/internal/domain"
)

type Route struct {
	Source      domain.ConversationID
	Destination domain.ConversationID
}

// RoutingTable maps source conversations to their destination. It is fixed
// for the life of the process.
type RoutingTable struct {
	routes map[domain.ConversationID]domain.ConversationID
}

// NewRoutingTable validates a source to destination mapping. A destination
// that is itself a source would forward requests in a loop and is rejected.
func NewRoutingTable(routes map[string]string) (RoutingTable, error) {
	table := RoutingTable{routes: make(map[domain.ConversationID]domain.ConversationID, len(routes))}
	for src, dst := range routes {
		source := domain.ConversationID(strings.TrimSpace(src))
		destination := domain.ConversationID(strings.TrimSpace(dst))
		if source.IsZero() || destination.IsZero() {
			return RoutingTable{}, fmt.Errorf("route %q -> %q: source and destination are required", src, dst)
		}
		if source == destination {
			return RoutingTable{}, fmt.Errorf("route %q routes to itself", src)
		}
		table.routes[source] = destination
	}
	for source, destination := range table.routes {
		if _, loops := table.routes[destination]; loops {
			return RoutingTable{}, fmt.Errorf("route %q -> %q: destination is also a source", source, destination)
		}
	}
	return table, nil
}

func (t RoutingTable) Destination(source domain.ConversationID) (domain.ConversationID, bool) {
	destination, ok := t.routes[source]
	return destination, ok
}

func (t RoutingTable) IsSource(conversation domain.ConversationID) bool {
	_, ok := t.routes[conversation]
	return ok
}

func (t RoutingTable) Len() int {
	return len(t.routes)
}

// Routes lists the table sorted by source.
func (t RoutingTable) Routes() []Route {
	out := make([]Route, 0, len(t.routes))
	for source, destination := range t.routes {
		out = append(out, Route{Source: source, Destination: destination})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
