// Package state holds the live application state: the catalog collections,
// accounts, members, theme, and the signed-in session. Mutations update
// memory immediately and persist on a debounce; writes from other running
// instances arrive through the event bus and replace the affected collection
// wholesale.
package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/basetic/osint-terminal/internal/domain"
	"github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/id"
	"github.com/basetic/osint-terminal/internal/seed"
	"github.com/basetic/osint-terminal/internal/store"
)

// DefaultFlushDelay is the debounce window between a mutation and its write.
const DefaultFlushDelay = 400 * time.Millisecond

// State is one instance's view of the application data. Multiple State
// instances over the same Store stay consistent through StorageChanged
// events: each instance tags its writes with its origin id and rehydrates on
// writes it did not make itself.
type State struct {
	store      *store.Store
	bus        *events.Bus
	logger     *slog.Logger
	origin     string
	flushDelay time.Duration

	mu         sync.RWMutex
	tools      []domain.Tool
	categories []domain.Category
	accounts   []domain.Account
	members    []domain.Member
	theme      domain.Theme
	version    string

	currentAccount *domain.Account
	currentMember  *domain.Member

	rev         uint64
	initialized bool
	dirty       map[store.Key]bool
	flushTimer  *time.Timer

	sub  *events.Subscriber
	done chan struct{}
}

// New loads persisted collections (falling back to the shipped defaults),
// reconciles them against the current seed version, and starts listening for
// foreign storage changes. flushDelay <= 0 disables debouncing and persists
// every mutation synchronously.
func New(st *store.Store, bus *events.Bus, logger *slog.Logger, flushDelay time.Duration) (*State, error) {
	s := &State{
		store:      st,
		bus:        bus,
		logger:     logger,
		origin:     id.MustGenerate("tab"),
		flushDelay: flushDelay,
		dirty:      make(map[store.Key]bool),
		done:       make(chan struct{}),
	}

	s.tools = store.Load(st, store.KeyTools, defaultTools())
	s.categories = store.Load(st, store.KeyCategories, defaultCategories())
	s.accounts = store.Load(st, store.KeyAccounts, defaultAccounts())
	s.members = store.Load(st, store.KeyMembers, []domain.Member{})
	s.theme = loadTheme(st)
	s.version = store.Load(st, store.KeyAppVersion, "")

	if err := s.reconcile(); err != nil {
		return nil, err
	}
	s.initialized = true

	s.sub = bus.Subscribe()
	go s.watch()

	return s, nil
}

// reconcile merges seed data shipped since the persisted version was written.
// The merge is additive and keyed by id: entries the operator renamed or
// removed stay untouched unless their id is absent. Runs before the instance
// starts accepting mutations, so its writes bypass the debounce.
func (s *State) reconcile() error {
	if s.version == seed.Version {
		return nil
	}

	known := make(map[string]bool, len(s.categories))
	for _, category := range s.categories {
		known[category.ID] = true
	}
	for _, category := range seed.DefaultCategories {
		if !known[category.ID] {
			s.categories = append(s.categories, category)
		}
	}

	knownTools := make(map[string]bool, len(s.tools))
	for _, tool := range s.tools {
		knownTools[tool.ID] = true
	}
	for _, tool := range seed.DefaultTools {
		if !knownTools[tool.ID] {
			s.tools = append(s.tools, tool)
		}
	}

	previous := s.version
	s.version = seed.Version

	if err := errors.Join(
		store.Save(s.store, store.KeyTools, s.tools, s.origin),
		store.Save(s.store, store.KeyCategories, s.categories, s.origin),
		store.Save(s.store, store.KeyAppVersion, s.version, s.origin),
	); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to persist reconciled catalog")
	}

	if s.logger != nil {
		s.logger.Info("catalog reconciled with shipped defaults",
			slog.String("from_version", previous),
			slog.String("to_version", s.version))
	}
	s.bus.Notify(events.LevelInfo, "Base de ferramentas atualizada!")
	return nil
}

// watch consumes bus events and rehydrates collections rewritten by other
// instances. Own writes echo back with this instance's origin and are
// skipped, which keeps pending debounced edits intact.
func (s *State) watch() {
	defer close(s.done)
	for event := range s.sub.EventChan {
		if event.Kind != events.KindStorageChanged || event.Origin == s.origin {
			continue
		}
		s.rehydrate(event.Key)
	}
}

// rehydrate replaces one collection with whatever the store now holds.
// Last write wins; a pending local edit to the same key is discarded.
func (s *State) rehydrate(key store.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case store.KeyTools:
		s.tools = store.Load(s.store, key, defaultTools())
	case store.KeyCategories:
		s.categories = store.Load(s.store, key, defaultCategories())
	case store.KeyAccounts:
		s.accounts = store.Load(s.store, key, defaultAccounts())
	case store.KeyMembers:
		s.members = store.Load(s.store, key, []domain.Member{})
	case store.KeyTheme:
		s.theme = loadTheme(s.store)
	case store.KeyAppVersion:
		s.version = store.Load(s.store, key, "")
	default:
		return
	}

	s.rev++
	delete(s.dirty, key)
	if s.logger != nil {
		s.logger.Debug("collection rehydrated from foreign write", slog.String("key", string(key)))
	}
}

// Origin returns this instance's writer id.
func (s *State) Origin() string {
	return s.origin
}

// Revision returns a counter that increments on every visible change.
func (s *State) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Version returns the persisted seed version watermark.
func (s *State) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Tools returns a copy of the tool collection.
func (s *State) Tools() []domain.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Tool(nil), s.tools...)
}

// Categories returns a copy of the category collection.
func (s *State) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

// Accounts returns a copy of the operator account collection.
func (s *State) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Account(nil), s.accounts...)
}

// Members returns a copy of the member collection.
func (s *State) Members() []domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Member(nil), s.members...)
}

// Theme returns the active theme.
func (s *State) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// UpdateTools replaces the tool collection.
func (s *State) UpdateTools(tools []domain.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools = append([]domain.Tool(nil), tools...)
	s.markDirty(store.KeyTools)
}

// UpdateCategories replaces the category collection.
func (s *State) UpdateCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]domain.Category(nil), categories...)
	s.markDirty(store.KeyCategories)
}

// UpdateCatalog replaces tools and categories in one step, so a cascade
// (category removal plus its tools) is observed atomically.
func (s *State) UpdateCatalog(tools []domain.Tool, categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools = append([]domain.Tool(nil), tools...)
	s.categories = append([]domain.Category(nil), categories...)
	s.markDirty(store.KeyTools)
	s.markDirty(store.KeyCategories)
}

// UpdateAccounts replaces the operator account collection.
func (s *State) UpdateAccounts(accounts []domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append([]domain.Account(nil), accounts...)
	s.markDirty(store.KeyAccounts)
}

// UpdateMembers replaces the member collection.
func (s *State) UpdateMembers(members []domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append([]domain.Member(nil), members...)
	s.markDirty(store.KeyMembers)
}

// SetTheme switches the active theme. Invalid values are ignored.
func (s *State) SetTheme(theme domain.Theme) {
	if !theme.IsValid() {
		if s.logger != nil {
			s.logger.Warn("ignoring invalid theme", slog.String("theme", string(theme)))
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.markDirty(store.KeyTheme)
}

// CurrentAccount returns the signed-in operator account, or nil.
func (s *State) CurrentAccount() *domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentAccount == nil {
		return nil
	}
	account := *s.currentAccount
	return &account
}

// SetCurrentAccount records the signed-in operator. Sessions are in-memory
// only and never persisted.
func (s *State) SetCurrentAccount(account *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account == nil {
		s.currentAccount = nil
	} else {
		copied := *account
		s.currentAccount = &copied
	}
	s.rev++
}

// CurrentMember returns the signed-in member, or nil.
func (s *State) CurrentMember() *domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentMember == nil {
		return nil
	}
	member := *s.currentMember
	return &member
}

// SetCurrentMember records the signed-in member session.
func (s *State) SetCurrentMember(member *domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member == nil {
		s.currentMember = nil
	} else {
		copied := *member
		s.currentMember = &copied
	}
	s.rev++
}

// markDirty bumps the revision, flags key for persistence, and arms the
// debounce timer. Callers hold s.mu.
func (s *State) markDirty(key store.Key) {
	s.rev++
	s.dirty[key] = true
	if !s.initialized {
		return
	}

	if s.flushDelay <= 0 {
		s.flushLocked()
		return
	}
	if s.flushTimer == nil {
		s.flushTimer = time.AfterFunc(s.flushDelay, func() {
			if err := s.Flush(); err != nil && s.logger != nil {
				s.logger.Error("debounced flush failed", slog.Any("error", err))
			}
		})
		return
	}
	s.flushTimer.Reset(s.flushDelay)
}

// Flush persists every dirty collection immediately.
func (s *State) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *State) flushLocked() error {
	var errs []error
	for key := range s.dirty {
		var err error
		switch key {
		case store.KeyTools:
			err = store.Save(s.store, key, s.tools, s.origin)
		case store.KeyCategories:
			err = store.Save(s.store, key, s.categories, s.origin)
		case store.KeyAccounts:
			err = store.Save(s.store, key, s.accounts, s.origin)
		case store.KeyMembers:
			err = store.Save(s.store, key, s.members, s.origin)
		case store.KeyTheme:
			err = store.Save(s.store, key, s.theme, s.origin)
		case store.KeyAppVersion:
			err = store.Save(s.store, key, s.version, s.origin)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		delete(s.dirty, key)
	}
	return errors.Join(errs...)
}

// Reset restores every collection to the shipped defaults and persists the
// result. Sessions are cleared.
func (s *State) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = defaultTools()
	s.categories = defaultCategories()
	s.accounts = defaultAccounts()
	s.members = []domain.Member{}
	s.theme = seed.DefaultTheme
	s.version = seed.Version
	s.currentAccount = nil
	s.currentMember = nil
	s.rev++

	for _, key := range store.Keys {
		s.dirty[key] = true
	}
	return s.flushLocked()
}

// Close stops the event watcher and persists any pending changes.
func (s *State) Close() error {
	s.mu.Lock()
	if s.flushTimer != nil {
		s.flushTimer.Stop()
	}
	s.mu.Unlock()
	s.bus.Unsubscribe(s.sub.ID)
	<-s.done
	return s.Flush()
}

func defaultTools() []domain.Tool {
	return append([]domain.Tool(nil), seed.DefaultTools...)
}

func defaultCategories() []domain.Category {
	return append([]domain.Category(nil), seed.DefaultCategories...)
}

func defaultAccounts() []domain.Account {
	return []domain.Account{seed.DefaultAccount()}
}

func loadTheme(st *store.Store) domain.Theme {
	theme := store.Load(st, store.KeyTheme, seed.DefaultTheme)
	if !theme.IsValid() {
		return seed.DefaultTheme
	}
	return theme
}
