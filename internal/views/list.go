package views

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

type ListState string

const (
	StateEmpty     ListState = "empty"
	StatePopulated ListState = "populated"
)

// Placeholder shown when the projection has no rows.
const (
	EmptyTitle   = "No Book"
	EmptyMessage = "No Book yet. Tap the plus button to add a new book."
)

// Row is one line of the list.
type Row struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
}

// Snapshot is the derived state of a ListView at one point in time.
type Snapshot struct {
	Query catalogue.Query `json:"-"`
	Rows  []Row           `json:"rows"`
	State ListState       `json:"state"`
}

func (s Snapshot) Empty() bool {
	return s.State == StateEmpty
}

// ListView renders the filtered and sorted projection of the catalogue.
type ListView struct {
	cat Catalogue

	mu       sync.Mutex
	query    catalogue.Query
	snapshot Snapshot
}

// NewListView creates a list view for q. Call Refresh or Watch to derive
// the first snapshot.
func NewListView(cat Catalogue, q catalogue.Query) *ListView {
	if !q.Sort.Valid() {
		q.Sort = catalogue.DefaultSortOrder
	}
	return &ListView{
		cat:      cat,
		query:    q,
		snapshot: Snapshot{Query: q, State: StateEmpty},
	}
}

// Snapshot returns the last derived state.
func (v *ListView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// State reports whether the last snapshot has any rows.
func (v *ListView) State() ListState {
	return v.Snapshot().State
}

func (v *ListView) Query() catalogue.Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Refresh re-runs the current query. On failure the previous snapshot is kept.
func (v *ListView) Refresh() (Snapshot, error) {
	v.mu.Lock()
	q := v.query
	v.mu.Unlock()

	books, err := v.cat.Query(q)
	if err != nil {
		return v.Snapshot(), err
	}

	snap := newSnapshot(q, books)

	v.mu.Lock()
	if v.query != q {
		// The query changed while this one ran; its own refresh wins.
		snap = v.snapshot
		v.mu.Unlock()
		return snap, nil
	}
	v.snapshot = snap
	v.mu.Unlock()
	return snap, nil
}

// SetSearch replaces the search text and re-derives.
func (v *ListView) SetSearch(text string) (Snapshot, error) {
	v.mu.Lock()
	v.query.Search = text
	v.mu.Unlock()
	return v.Refresh()
}

// SetSort replaces the sort order and re-derives.
func (v *ListView) SetSort(order catalogue.SortOrder) (Snapshot, error) {
	if !order.Valid() {
		return v.Snapshot(), fmt.Errorf("%w: %s", catalogue.ErrUnknownSortOrder, order.Key())
	}
	v.mu.Lock()
	v.query.Sort = order
	v.mu.Unlock()
	return v.Refresh()
}

// DeleteAt deletes the book shown at index of the current snapshot.
func (v *ListView) DeleteAt(index int) (*entities.Book, error) {
	snap := v.Snapshot()
	if index < 0 || index >= len(snap.Rows) {
		return nil, fmt.Errorf("%w: no row at index %d", services.ErrNotFound, index)
	}

	book, err := v.cat.Delete(snap.Rows[index].ID)
	if err != nil {
		return nil, err
	}

	if _, err := v.Refresh(); err != nil {
		log.Printf("[VIEWS] Refresh after delete failed: %v", err)
	}
	return book, nil
}

// Watch derives the first snapshot and then re-derives on every change
// published by source. Each new snapshot is sent on the returned channel,
// which holds only the latest one for a slow reader. The channel is closed
// when ctx is cancelled or source stops delivering.
func (v *ListView) Watch(ctx context.Context, source ChangeSource) (<-chan Snapshot, error) {
	changes, err := source.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribe to changes: %w", err)
	}

	if _, err := v.Refresh(); err != nil {
		return nil, err
	}

	out := make(chan Snapshot, 1)
	go func() {
		defer close(out)
		for range changes {
			snap, err := v.Refresh()
			if err != nil {
				log.Printf("[VIEWS] Refresh after change failed: %v", err)
				continue
			}
			// Only this goroutine sends, so after the drain the send cannot block.
			select {
			case <-out:
			default:
			}
			out <- snap
		}
	}()
	return out, nil
}

func newSnapshot(q catalogue.Query, books []entities.Book) Snapshot {
	rows := make([]Row, len(books))
	for i, b := range books {
		rows[i] = Row{ID: b.ID, Name: b.Name, Author: b.Author}
	}
	state := StatePopulated
	if len(rows) == 0 {
		state = StateEmpty
	}
	return Snapshot{Query: q, Rows: rows, State: state}
}
