package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lifeforge/internal/engine"
	"lifeforge/internal/snapshot"
	"lifeforge/internal/storage"
)

// Session identifies the authenticated user a Store acts for. A Store
// without a session refuses every mutation with AuthError.
type Session struct {
	UserID string
	Name   string
	Email  string
}

// Notifier sends the fixed check-in reminder to a contact address.
type Notifier interface {
	Send(ctx context.Context, phoneNumber string) error
}

// State is the canonical in-memory snapshot for one session. The store
// owns it exclusively; remote persistence trails behind, best-effort.
type State struct {
	Stats            engine.Stats
	Routines         []engine.Routine
	ShopItems        []engine.ShopItem
	Inventory        []engine.InventoryItem
	LastUpdate       time.Time
	PendingReview    []engine.Routine
	TodayCompletions map[string]int
}

// Store orchestrates the progression and rollover engines around the
// local state and the remote collaborators. It is created at session
// start and discarded at logout; there are no ambient globals. All
// methods run on the caller's goroutine, one action at a time.
type Store struct {
	session  *Session
	remote   Remote
	notifier Notifier

	policy       engine.LevelPolicy
	now          func() time.Time
	snapshotPath string

	state        State
	review       engine.ReviewState
	dirty        map[string]bool
	pendingLogs  []engine.RoutineLog
	pendingPrefs *prefsUpdate
}

// prefsUpdate is the reminder-prefs payload awaiting a retry.
type prefsUpdate struct {
	PhoneNumber string `json:"phoneNumber"`
	Active      bool   `json:"active"`
}

type Option func(*Store)

// WithLevelPolicy selects single (default) or looping level-ups.
func WithLevelPolicy(p engine.LevelPolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithNotifier wires the reminder collaborator.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithSnapshotPath enables the local state blob at the given path.
func WithSnapshotPath(path string) Option {
	return func(s *Store) { s.snapshotPath = path }
}

func NewStore(session *Session, remote Remote, opts ...Option) *Store {
	s := &Store{
		session: session,
		remote:  remote,
		now:     time.Now,
		review:  engine.ReviewSettled,
		dirty:   map[string]bool{},
		state: State{
			Stats:            engine.NewStats(),
			TodayCompletions: map[string]int{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.LastUpdate = s.now()
	return s
}

func (s *Store) requireSession() error {
	if s.session == nil {
		return AuthError{}
	}
	return nil
}

func (s *Store) Stats() engine.Stats             { return s.state.Stats }
func (s *Store) Routines() []engine.Routine      { return s.state.Routines }
func (s *Store) ShopItems() []engine.ShopItem    { return s.state.ShopItems }
func (s *Store) Inventory() []engine.InventoryItem {
	return s.state.Inventory
}
func (s *Store) PendingReview() []engine.Routine { return s.state.PendingReview }
func (s *Store) ReviewState() engine.ReviewState { return s.review }
func (s *Store) LastUpdate() time.Time           { return s.state.LastUpdate }

// TodayCount returns how many times a routine was completed today.
func (s *Store) TodayCount(routineID string) int {
	return s.state.TodayCompletions[routineID]
}

func (s *Store) findRoutine(id string) *engine.Routine {
	for i := range s.state.Routines {
		if s.state.Routines[i].ID == id {
			return &s.state.Routines[i]
		}
	}
	return nil
}

// FetchUserStats loads the stats row, auto-provisioning the profile on
// the collaborator's stable no-rows signal.
func (s *Store) FetchUserStats(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	u, err := s.remote.GetUser(ctx, s.session.UserID)
	if errors.Is(err, storage.ErrNoRows) {
		u = &storage.User{
			ID:    s.session.UserID,
			Name:  s.session.Name,
			Email: s.session.Email,
			Stats: engine.NewStats(),
		}
		if err := s.remote.InsertUser(ctx, u); err != nil {
			return fmt.Errorf("provision user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("fetch user stats: %w", err)
	}
	// Stats awaiting a retry are newer than the remote row; adopting the
	// remote copy would resurrect the stale value on the next flush.
	if !s.dirty[dirtyStats] {
		s.state.Stats = u.Stats
	}
	return nil
}

// FetchRoutines loads routine definitions and rebuilds today's completion
// counters from the audit log. Completion timestamps are session-local,
// so they are carried over from the current state by id.
func (s *Store) FetchRoutines(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	routines, err := s.remote.ListRoutines(ctx, s.session.UserID)
	if err != nil {
		return fmt.Errorf("fetch routines: %w", err)
	}

	completedAt := map[string]*time.Time{}
	fetched := map[string]bool{}
	for _, r := range s.state.Routines {
		completedAt[r.ID] = r.CompletedAt
	}
	for i := range routines {
		routines[i].CompletedAt = completedAt[routines[i].ID]
		fetched[routines[i].ID] = true
	}
	// A routine whose insert is still awaiting a retry exists only
	// locally; keep it rather than let the refresh drop it.
	for _, r := range s.state.Routines {
		if !fetched[r.ID] && s.dirty[dirtyRoutine(r.ID)] {
			routines = append(routines, r)
		}
	}

	counts, err := s.remote.CompletedCounts(ctx, s.session.UserID, engine.DayKey(s.now()))
	if err != nil {
		return fmt.Errorf("fetch completion counts: %w", err)
	}

	s.state.Routines = routines
	s.state.TodayCompletions = counts
	if s.state.TodayCompletions == nil {
		s.state.TodayCompletions = map[string]int{}
	}
	return nil
}

// FetchShopAndInventory loads the catalog and the owned items, resolving
// each inventory row to its shared shop item. Rows whose item was deleted
// are dropped.
func (s *Store) FetchShopAndInventory(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	items, err := s.remote.ListShopItems(ctx, s.session.UserID)
	if err != nil {
		return fmt.Errorf("fetch shop items: %w", err)
	}
	rows, err := s.remote.ListInventory(ctx, s.session.UserID)
	if err != nil {
		return fmt.Errorf("fetch inventory: %w", err)
	}

	byID := map[string]*engine.ShopItem{}
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	var inventory []engine.InventoryItem
	for _, row := range rows {
		item, ok := byID[row.ItemID]
		if !ok {
			continue
		}
		inventory = append(inventory, engine.InventoryItem{
			ID:          row.ID,
			Item:        item,
			Quantity:    row.Quantity,
			PurchasedAt: row.PurchasedAt,
		})
	}

	s.state.ShopItems = items
	s.state.Inventory = inventory
	return nil
}

// Load restores the local snapshot, then refreshes everything from the
// remote store.
func (s *Store) Load(ctx context.Context) error {
	if err := s.RestoreSnapshot(); err != nil {
		return err
	}
	if err := s.FetchUserStats(ctx); err != nil {
		return err
	}
	if err := s.FetchRoutines(ctx); err != nil {
		return err
	}
	return s.FetchShopAndInventory(ctx)
}

// persistedState is the snapshot blob layout. Inventory is flattened to
// item references so the shared shop items are not duplicated.
type persistedState struct {
	Stats         engine.Stats           `json:"stats"`
	Routines      []engine.Routine       `json:"routines"`
	ShopItems     []engine.ShopItem      `json:"shopItems"`
	Inventory     []persistedInventory   `json:"inventory"`
	LastUpdate    time.Time              `json:"lastUpdateDate"`
	PendingReview []engine.Routine       `json:"pendingDailiesToReview"`
	TodayCounts   map[string]int         `json:"todayCompletions"`
	ReviewState   engine.ReviewState     `json:"reviewState"`
	Dirty         []string               `json:"dirty,omitempty"`
	PendingLogs   []engine.RoutineLog    `json:"pendingLogs,omitempty"`
	PendingPrefs  *prefsUpdate           `json:"pendingPrefs,omitempty"`
}

type persistedInventory struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	Quantity    int       `json:"quantity"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// SaveSnapshot writes the whole state tree to the configured blob path.
func (s *Store) SaveSnapshot() error {
	if s.snapshotPath == "" {
		return nil
	}
	p := persistedState{
		Stats:         s.state.Stats,
		Routines:      s.state.Routines,
		ShopItems:     s.state.ShopItems,
		LastUpdate:    s.state.LastUpdate,
		PendingReview: s.state.PendingReview,
		TodayCounts:   s.state.TodayCompletions,
		ReviewState:   s.review,
		PendingLogs:   s.pendingLogs,
		PendingPrefs:  s.pendingPrefs,
	}
	for key := range s.dirty {
		p.Dirty = append(p.Dirty, key)
	}
	for _, inv := range s.state.Inventory {
		p.Inventory = append(p.Inventory, persistedInventory{
			ID:          inv.ID,
			ItemID:      inv.Item.ID,
			Quantity:    inv.Quantity,
			PurchasedAt: inv.PurchasedAt,
		})
	}
	return snapshot.Save(s.snapshotPath, p)
}

// RestoreSnapshot loads the blob written by SaveSnapshot, if any.
func (s *Store) RestoreSnapshot() error {
	if s.snapshotPath == "" {
		return nil
	}
	var p persistedState
	ok, err := snapshot.Load(s.snapshotPath, &p)
	if err != nil || !ok {
		return err
	}

	s.state.Stats = p.Stats
	s.state.Routines = p.Routines
	s.state.ShopItems = p.ShopItems
	s.state.LastUpdate = p.LastUpdate
	s.state.PendingReview = p.PendingReview
	s.state.TodayCompletions = p.TodayCounts
	if s.state.TodayCompletions == nil {
		s.state.TodayCompletions = map[string]int{}
	}
	s.review = p.ReviewState
	if s.review == "" {
		s.review = engine.ReviewSettled
	}
	for _, key := range p.Dirty {
		s.dirty[key] = true
	}
	s.pendingLogs = append(s.pendingLogs, p.PendingLogs...)
	if p.PendingPrefs != nil {
		s.pendingPrefs = p.PendingPrefs
	}

	byID := map[string]*engine.ShopItem{}
	for i := range s.state.ShopItems {
		byID[s.state.ShopItems[i].ID] = &s.state.ShopItems[i]
	}
	s.state.Inventory = nil
	for _, inv := range p.Inventory {
		item, ok := byID[inv.ItemID]
		if !ok {
			continue
		}
		s.state.Inventory = append(s.state.Inventory, engine.InventoryItem{
			ID:          inv.ID,
			Item:        item,
			Quantity:    inv.Quantity,
			PurchasedAt: inv.PurchasedAt,
		})
	}
	return nil
}

func (s *Store) snapshotBestEffort() {
	// Snapshot failures never block an action; the state is still live in
	// memory and the remote store has its own copy.
	_ = s.SaveSnapshot()
}
