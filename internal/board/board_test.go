package board

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"strconv"
	"testing"

	"github.com/idilsaglam/ticketboard/internal/model"
)

func prio(n float64) *float64 { return &n }

func ids(tickets []model.Ticket) []string {
	out := make([]string, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

func randomTickets(n int, seed uint64) []model.Ticket {
	r := rand.New(rand.NewPCG(seed, seed*7+1))
	statuses := []string{"Todo", "In progress", "Done", ""}
	users := []string{"al", "bo", "cy"}
	titles := []string{"alpha", "Beta", "gamma", "Delta", "alpha", "épée"}
	tickets := make([]model.Ticket, n)
	for i := range tickets {
		tickets[i] = model.Ticket{
			ID:     strconv.Itoa(i),
			Title:  titles[r.IntN(len(titles))],
			Status: statuses[r.IntN(len(statuses))],
			User:   users[r.IntN(len(users))],
		}
		if r.IntN(5) > 0 {
			tickets[i].Priority = prio(float64(r.IntN(5)))
		}
	}
	return tickets
}

func TestGroupAndSort_Scenario(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "1", Title: "B", Status: "open", Priority: prio(2), User: "al"},
		{ID: "2", Title: "A", Status: "open", Priority: prio(5), User: "al"},
		{ID: "3", Title: "C", Status: "done", Priority: prio(1), User: "bo"},
	}

	res := GroupAndSort(tickets, model.GroupByStatus, model.SortByPriority)

	if got := res.Keys(); !reflect.DeepEqual(got, []string{"open", "done"}) {
		t.Fatalf("Keys() = %v, want [open done]", got)
	}
	open, _ := res.Get("open")
	if got := ids(open); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Errorf("open = %v, want [2 1]", got)
	}
	done, _ := res.Get("done")
	if got := ids(done); !reflect.DeepEqual(got, []string{"3"}) {
		t.Errorf("done = %v, want [3]", got)
	}
}

func TestGroupAndSort_Empty(t *testing.T) {
	for _, gb := range model.GroupFields {
		for _, sb := range model.SortFields {
			res := GroupAndSort(nil, gb, sb)
			if len(res.Groups) != 0 {
				t.Errorf("GroupAndSort(nil, %s, %s) = %v, want no groups", gb, sb, res.Groups)
			}
		}
	}
}

func TestGroupAndSort_Partition(t *testing.T) {
	tickets := randomTickets(200, 42)

	for _, gb := range model.GroupFields {
		for _, sb := range model.SortFields {
			res := GroupAndSort(tickets, gb, sb)

			if res.Len() != len(tickets) {
				t.Errorf("%s/%s: Len() = %d, want %d", gb, sb, res.Len(), len(tickets))
			}

			seen := make(map[string]int)
			for _, g := range res.Groups {
				for _, ticket := range g.Tickets {
					seen[ticket.ID]++
					if key := ticket.Field(gb); key != g.Key {
						t.Errorf("%s/%s: ticket %s in group %q, own key %q", gb, sb, ticket.ID, g.Key, key)
					}
				}
			}
			for _, ticket := range tickets {
				if seen[ticket.ID] != 1 {
					t.Errorf("%s/%s: ticket %s appears %d times", gb, sb, ticket.ID, seen[ticket.ID])
				}
			}
		}
	}
}

func TestGroupAndSort_FirstOccurrenceOrder(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "1", User: "cy"},
		{ID: "2", User: "al"},
		{ID: "3", User: "cy"},
		{ID: "4"},
		{ID: "5", User: "bo"},
	}

	res := GroupAndSort(tickets, model.GroupByUser, model.SortByTitle)

	want := []string{"cy", "al", model.MissingKey, "bo"}
	if got := res.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestGroupAndSort_PriorityDescendingStable(t *testing.T) {
	tickets := randomTickets(150, 7)

	res := GroupAndSort(tickets, model.GroupByStatus, model.SortByPriority)

	pos := make(map[string]int)
	for i, ticket := range tickets {
		pos[ticket.ID] = i
	}
	for _, g := range res.Groups {
		for i := 1; i < len(g.Tickets); i++ {
			a, b := g.Tickets[i-1], g.Tickets[i]
			if !b.HasPriority() {
				if !a.HasPriority() && pos[a.ID] > pos[b.ID] {
					t.Errorf("group %q: missing-priority tickets %s, %s out of input order", g.Key, a.ID, b.ID)
				}
				continue
			}
			if !a.HasPriority() {
				t.Errorf("group %q: ticket %s without priority before %s", g.Key, a.ID, b.ID)
				continue
			}
			if *a.Priority < *b.Priority {
				t.Errorf("group %q: priority %g before %g", g.Key, *a.Priority, *b.Priority)
			}
			if *a.Priority == *b.Priority && pos[a.ID] > pos[b.ID] {
				t.Errorf("group %q: equal priority tickets %s, %s out of input order", g.Key, a.ID, b.ID)
			}
		}
	}
}

func TestGroupAndSort_MissingPriorityLast(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "none", Status: "open"},
		{ID: "zero", Status: "open", Priority: prio(0)},
		{ID: "neg", Status: "open", Priority: prio(-3)},
		{ID: "high", Status: "open", Priority: prio(4)},
	}

	res := GroupAndSort(tickets, model.GroupByStatus, model.SortByPriority)

	open, _ := res.Get("open")
	if got := ids(open); !reflect.DeepEqual(got, []string{"high", "zero", "neg", "none"}) {
		t.Errorf("order = %v", got)
	}
}

func TestGroupAndSort_TitleCollation(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "1", Title: "Zoo"},
		{ID: "2", Title: "Émile"},
		{ID: "3", Title: "Banana"},
		{ID: "4", Title: "apple"},
		{ID: "5"},
	}

	res := GroupAndSort(tickets, model.GroupByStatus, model.SortByTitle)

	group, ok := res.Get(model.MissingKey)
	if !ok {
		t.Fatal("tickets without status should land in the missing group")
	}
	if got := ids(group); !reflect.DeepEqual(got, []string{"5", "4", "3", "2", "1"}) {
		t.Errorf("order = %v, want [5 4 3 2 1]", got)
	}
}

func TestGroupAndSort_TitleStable(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "1", Title: "same", Status: "s"},
		{ID: "2", Title: "other", Status: "s"},
		{ID: "3", Title: "same", Status: "s"},
		{ID: "4", Title: "same", Status: "s"},
	}

	res := GroupAndSort(tickets, model.GroupByStatus, model.SortByTitle)

	group, _ := res.Get("s")
	if got := ids(group); !reflect.DeepEqual(got, []string{"2", "1", "3", "4"}) {
		t.Errorf("order = %v, want [2 1 3 4]", got)
	}
}

func TestGroupAndSort_UnknownSortKeepsOrder(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "1", Title: "b", Priority: prio(1)},
		{ID: "2", Title: "a", Priority: prio(9)},
	}

	res := GroupAndSort(tickets, model.GroupByStatus, model.SortField("status"))

	if got := ids(res.Flatten()); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("order = %v, want input order", got)
	}
}

func TestGroupAndSort_DoesNotMutateInput(t *testing.T) {
	tickets := randomTickets(50, 3)
	before := slices.Clone(tickets)

	GroupAndSort(tickets, model.GroupByUser, model.SortByPriority)
	GroupAndSort(tickets, model.GroupByPriority, model.SortByTitle)

	if !reflect.DeepEqual(tickets, before) {
		t.Error("input slice was modified")
	}
}

func TestGroupAndSort_Idempotent(t *testing.T) {
	tickets := randomTickets(120, 99)

	for _, gb := range model.GroupFields {
		for _, sb := range model.SortFields {
			first := GroupAndSort(tickets, gb, sb)
			second := GroupAndSort(first.Flatten(), gb, sb)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("%s/%s: regrouping the flattened result changed it", gb, sb)
			}
		}
	}
}

func TestGroupAndSort_PriorityGroupKeys(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "1", Priority: prio(4)},
		{ID: "2"},
		{ID: "3", Priority: prio(0)},
		{ID: "4", Priority: prio(4)},
	}

	res := GroupAndSort(tickets, model.GroupByPriority, model.SortByPriority)

	want := []string{"4", model.MissingKey, "0"}
	if got := res.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if _, ok := res.Get("missing"); ok {
		t.Error("Get should miss unknown keys")
	}
}

func TestGroupAndSort_FractionalPriorities(t *testing.T) {
	tickets, err := model.DecodeTickets([]byte(`[
		{"id": 1, "status": "open", "priority": 3.2},
		{"id": 2, "status": "open", "priority": 3.7},
		{"id": 3, "status": "open"},
		{"id": 4, "status": "open", "priority": 3}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	sorted := GroupAndSort(tickets, model.GroupByStatus, model.SortByPriority)
	var ids []string
	for _, ticket := range sorted.Flatten() {
		ids = append(ids, ticket.ID)
	}
	if want := []string{"2", "1", "4", "3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}

	grouped := GroupAndSort(tickets, model.GroupByPriority, model.SortByTitle)
	if got, want := grouped.Keys(), []string{"3.2", "3.7", model.MissingKey, "3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestGroupAndSort_HugePriority(t *testing.T) {
	tickets, err := model.DecodeTickets([]byte(`[
		{"id": "low", "priority": 1},
		{"id": "none"},
		{"id": "huge", "priority": 1e20},
		{"id": "tiny", "priority": -1e20}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	res := GroupAndSort(tickets, model.GroupByStatus, model.SortByPriority)
	var ids []string
	for _, ticket := range res.Flatten() {
		ids = append(ids, ticket.ID)
	}
	if want := []string{"huge", "low", "tiny", "none"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}

	byPriority := GroupAndSort(tickets, model.GroupByPriority, model.SortByPriority)
	if _, ok := byPriority.Get("100000000000000000000"); !ok {
		t.Errorf("Keys() = %v, want a group for 1e20", byPriority.Keys())
	}
}

func TestResult_Only(t *testing.T) {
	res := GroupAndSort([]model.Ticket{
		{ID: "1", Status: "open"},
		{ID: "2", Status: "done"},
		{ID: "3", Status: "open"},
	}, model.GroupByStatus, model.SortByTitle)

	only, ok := res.Only("open")
	if !ok {
		t.Fatal("Only(open) missed")
	}
	if got := only.Keys(); !reflect.DeepEqual(got, []string{"open"}) || only.Len() != 2 {
		t.Errorf("Only(open) = %+v", only)
	}
	if _, ok := res.Only("blocked"); ok {
		t.Error("Only should miss unknown keys")
	}
}
