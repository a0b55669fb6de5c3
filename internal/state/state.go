package state

import (
	"maps"
	"slices"
	"sync"

	"github.com/samber/lo"

	"feedpoll/internal/model"
)

// Path names the part of the state a Change touched.
type Path string

const (
	PathStatus      Path = "status"
	PathValid       Path = "valid"
	PathErrors      Path = "errors"
	PathLoadedFeeds Path = "loadedFeeds"
	PathFeeds       Path = "contents.feeds"
	PathPosts       Path = "contents.posts"
	PathVisited     Path = "contents.postVisited"
	PathModal       Path = "modal"
)

// Change is delivered to subscribers after every mutation.
type Change struct {
	Path  Path `json:"path"`
	Value any  `json:"value"`
}

// Listener receives state changes. It runs on the mutating goroutine, must
// not block and must not mutate the store.
type Listener func(Change)

// Contents groups the accumulated feed data.
type Contents struct {
	Feeds       []model.Feed `json:"feeds"`
	Posts       []model.Post `json:"posts"`
	PostVisited []string     `json:"postVisited"`
}

// Snapshot is a deep copy of the state.
type Snapshot struct {
	Status      model.Status         `json:"status"`
	Valid       bool                 `json:"valid"`
	Errors      string               `json:"errors"`
	LoadedFeeds []string             `json:"loadedFeeds"`
	Contents    Contents             `json:"contents"`
	Modal       model.ModalSelection `json:"modal"`
}

// Store owns every collection of the application. All access goes through
// its methods; each mutation is applied atomically and then broadcast.
type Store struct {
	mu          sync.RWMutex
	status      model.Status
	valid       bool
	errors      string
	loadedFeeds []string
	feeds       []model.Feed
	posts       []model.Post
	visited     []string
	modal       model.ModalSelection

	// deliverMu is held from a mutation until its changes are broadcast.
	deliverMu   sync.Mutex
	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

func New() *Store {
	return &Store{
		status:    model.StatusFilling,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for every subsequent change and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// mutate applies fn under the write lock, then hands the changes it returns to
// every listener. Listeners see changes in the order mutations committed.
func (s *Store) mutate(fn func() []Change) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	changes := fn()
	s.mu.Unlock()

	s.notify(changes...)
}

func (s *Store) notify(changes ...Change) {
	s.listenersMu.Lock()
	ids := slices.Sorted(maps.Keys(s.listeners))
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, change := range changes {
		for _, fn := range listeners {
			fn(change)
		}
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Status:      s.status,
		Valid:       s.valid,
		Errors:      s.errors,
		LoadedFeeds: cloneSlice(s.loadedFeeds),
		Contents: Contents{
			Feeds:       cloneSlice(s.feeds),
			Posts:       cloneSlice(s.posts),
			PostVisited: cloneSlice(s.visited),
		},
		Modal: s.modal,
	}
}

func (s *Store) Status() model.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) SetStatus(status model.Status) {
	s.mutate(func() []Change {
		s.status = status
		return []Change{{Path: PathStatus, Value: status}}
	})
}

// Error returns the current error translation key; empty means no error.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors
}

// Fail records a failed submission: the error key, valid=false and status
// back to filling.
func (s *Store) Fail(key string) {
	s.mutate(func() []Change {
		s.errors = key
		s.valid = false
		s.status = model.StatusFilling
		return []Change{
			{Path: PathErrors, Value: key},
			{Path: PathValid, Value: false},
			{Path: PathStatus, Value: model.StatusFilling},
		}
	})
}

func (s *Store) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.valid
}

// LoadedFeeds returns the subscribed URLs in subscription order.
func (s *Store) LoadedFeeds() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.loadedFeeds)
}

func (s *Store) IsSubscribed(feedURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Contains(s.loadedFeeds, feedURL)
}

// AddFeed commits a successful submission: the feed is prepended, its posts
// are prepended as one block without de-duplication, the URL is appended to
// the subscribed list, the error is cleared and status returns to filling.
// It reports false, changing nothing, when feedURL is already subscribed.
func (s *Store) AddFeed(feedURL string, feed model.Feed, posts []model.Post) bool {
	added := false
	s.mutate(func() []Change {
		if lo.Contains(s.loadedFeeds, feedURL) {
			return nil
		}
		s.feeds = append([]model.Feed{feed}, s.feeds...)
		s.posts = prepend(s.posts, posts)
		s.loadedFeeds = append(s.loadedFeeds, feedURL)
		s.errors = ""
		s.valid = true
		s.status = model.StatusFilling
		added = true
		return []Change{
			{Path: PathFeeds, Value: feed},
			{Path: PathPosts, Value: cloneSlice(posts)},
			{Path: PathErrors, Value: ""},
			{Path: PathLoadedFeeds, Value: feedURL},
			{Path: PathValid, Value: true},
			{Path: PathStatus, Value: model.StatusFilling},
		}
	})
	return added
}

func (s *Store) Feeds() []model.Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.feeds)
}

func (s *Store) Posts() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.posts)
}

// KnownTitles returns the set of titles currently in the post list.
func (s *Store) KnownTitles() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.SliceToMap(s.posts, func(p model.Post) (string, struct{}) {
		return p.Title, struct{}{}
	})
}

// PrependPosts puts posts in front of the post list, keeping their order.
func (s *Store) PrependPosts(posts []model.Post) {
	if len(posts) == 0 {
		return
	}
	s.mutate(func() []Change {
		s.posts = prepend(s.posts, posts)
		return []Change{{Path: PathPosts, Value: cloneSlice(posts)}}
	})
}

func (s *Store) Modal() model.ModalSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modal
}

// Select shows the post with the given id in the modal slot and marks it
// visited. Unknown ids leave the state untouched.
func (s *Store) Select(id string) (model.ModalSelection, bool) {
	if id == "" {
		return model.ModalSelection{}, false
	}
	var (
		modal model.ModalSelection
		found bool
	)
	s.mutate(func() []Change {
		post, ok := lo.Find(s.posts, func(p model.Post) bool { return p.ID == id })
		if !ok {
			return nil
		}
		found = true
		s.modal = model.ModalSelection{
			Title:       post.Title,
			Description: post.Description,
			Link:        post.Link,
			PostID:      post.ID,
		}
		modal = s.modal
		changes := []Change{{Path: PathModal, Value: modal}}
		if !lo.Contains(s.visited, id) {
			s.visited = append(s.visited, id)
			changes = append(changes, Change{Path: PathVisited, Value: id})
		}
		return changes
	})
	return modal, found
}

func (s *Store) Visited() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.visited)
}

func prepend(existing, front []model.Post) []model.Post {
	out := make([]model.Post, 0, len(front)+len(existing))
	out = append(out, front...)
	return append(out, existing...)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
