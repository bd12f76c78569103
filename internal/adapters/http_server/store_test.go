package httpserver_test

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

// memStore backs the handler tests with a single in-memory store that
// satisfies every repository port.
type memStore struct {
	mu sync.Mutex

	nextBizID    int64
	businesses   map[int64]domain.Business
	nextReviewID int64
	reviews      map[int64]domain.Review
	flags        map[int64][]string
	claims       map[string]domain.Claim
	saved        map[string]map[int64]struct{}
	convs        map[string]domain.Conversation
	msgs         []domain.Message
	notifs       []domain.Notification
}

func newMemStore() *memStore {
	return &memStore{
		businesses: map[int64]domain.Business{},
		reviews:    map[int64]domain.Review{},
		flags:      map[int64][]string{},
		claims:     map[string]domain.Claim{},
		saved:      map[string]map[int64]struct{}{},
		convs:      map[string]domain.Conversation{},
	}
}

func (m *memStore) InsertBusiness(ctx context.Context, b domain.Business) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBizID++
	b.ID = m.nextBizID
	b.CreatedAt = time.Now()
	m.businesses[b.ID] = b
	return b.ID, nil
}

func (m *memStore) GetBusiness(ctx context.Context, id int64) (domain.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.businesses[id]
	if !ok {
		return domain.Business{}, domain.ErrBusinessNotFound
	}
	return b, nil
}

func (m *memStore) ListBusinesses(ctx context.Context, q domain.BusinessQuery) (domain.BusinessesPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Business
	for _, b := range m.businesses {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return domain.BusinessesPage{Items: out}, nil
}

func (m *memStore) UpdateBusiness(ctx context.Context, b domain.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.businesses[b.ID]; !ok {
		return domain.ErrBusinessNotFound
	}
	m.businesses[b.ID] = b
	return nil
}

func (m *memStore) DeleteBusiness(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.businesses[id]; !ok {
		return domain.ErrBusinessNotFound
	}
	delete(m.businesses, id)
	return nil
}

func (m *memStore) SetBusinessOwner(ctx context.Context, id int64, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.businesses[id]
	if !ok {
		return domain.ErrBusinessNotFound
	}
	b.OwnerID = &userID
	m.businesses[id] = b
	return nil
}

func (m *memStore) SetBusinessCoords(ctx context.Context, id int64, lat, lon float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.businesses[id]
	if !ok {
		return domain.ErrBusinessNotFound
	}
	b.Lat, b.Lon = &lat, &lon
	m.businesses[id] = b
	return nil
}

func (m *memStore) ListUngeocoded(ctx context.Context, limit int) ([]domain.Business, error) {
	return nil, nil
}

func (m *memStore) RecalcBusinessStats(ctx context.Context, id int64) error { return nil }

func (m *memStore) InsertReview(ctx context.Context, rv domain.Review) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.BusinessID == rv.BusinessID && r.UserID == rv.UserID {
			return 0, domain.ErrReviewDuplicate
		}
	}
	m.nextReviewID++
	rv.ID = m.nextReviewID
	rv.CreatedAt = time.Now()
	m.reviews[rv.ID] = rv
	return rv.ID, nil
}

func (m *memStore) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	return rv, nil
}

func (m *memStore) ListReviews(ctx context.Context, businessID int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Review
	for _, rv := range m.reviews {
		if rv.BusinessID == businessID && rv.Status == domain.ReviewPublished {
			out = append(out, rv)
		}
	}
	return domain.ReviewsPage{Items: out}, nil
}

func (m *memStore) DeleteReview(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *memStore) SetReviewStatus(ctx context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.reviews[id]
	if !ok {
		return domain.ErrReviewNotFound
	}
	rv.Status = status
	m.reviews[id] = rv
	return nil
}

func (m *memStore) HasReview(ctx context.Context, businessID int64, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rv := range m.reviews {
		if rv.BusinessID == businessID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, rv := range m.reviews {
		if rv.UserID == userID && !rv.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) InsertFlag(ctx context.Context, reviewID int64, userID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[reviewID] = append(m.flags[reviewID], userID)
	rv := m.reviews[reviewID]
	rv.FlagCount++
	m.reviews[reviewID] = rv
	return nil
}

func (m *memStore) CountFlagsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, users := range m.flags {
		for _, u := range users {
			if u == userID {
				n++
			}
		}
	}
	return n, nil
}

func (m *memStore) ListFlagged(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Review
	for _, rv := range m.reviews {
		if rv.FlagCount > 0 && rv.Status != domain.ReviewRemoved {
			out = append(out, rv)
		}
	}
	return domain.ReviewsPage{Items: out}, nil
}

func (m *memStore) InsertClaim(ctx context.Context, c domain.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims[c.ID] = c
	return nil
}

func (m *memStore) GetClaim(ctx context.Context, id string) (domain.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[id]
	if !ok {
		return domain.Claim{}, domain.ErrClaimNotFound
	}
	return c, nil
}

func (m *memStore) GetOpenClaim(ctx context.Context, businessID int64) (domain.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.claims {
		if c.BusinessID == businessID && domain.ClaimOpen(c.Status) {
			return c, nil
		}
	}
	return domain.Claim{}, domain.ErrClaimNotFound
}

func (m *memStore) UpdateClaim(ctx context.Context, c domain.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.claims[c.ID]; !ok {
		return domain.ErrClaimNotFound
	}
	m.claims[c.ID] = c
	return nil
}

func (m *memStore) SaveItem(ctx context.Context, userID string, businessID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved[userID] == nil {
		m.saved[userID] = map[int64]struct{}{}
	}
	m.saved[userID][businessID] = struct{}{}
	return nil
}

func (m *memStore) UnsaveItem(ctx context.Context, userID string, businessID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved[userID], businessID)
	return nil
}

func (m *memStore) ListSaved(ctx context.Context, userID string, pg domain.PageQuery) ([]domain.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Business
	for id := range m.saved[userID] {
		if b, ok := m.businesses[id]; ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CountSaved(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved[userID]), nil
}

func (m *memStore) FindConversation(ctx context.Context, userID string, businessID int64) (domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.convs {
		if c.UserID == userID && c.BusinessID == businessID {
			return c, nil
		}
	}
	return domain.Conversation{}, domain.ErrNotFound
}

func (m *memStore) GetConversation(ctx context.Context, id string) (domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[id]
	if !ok {
		return domain.Conversation{}, domain.ErrNotFound
	}
	return c, nil
}

func (m *memStore) InsertConversation(ctx context.Context, c domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CreatedAt = time.Now()
	c.LastMessageAt = c.CreatedAt
	m.convs[c.ID] = c
	return nil
}

func (m *memStore) ListConversations(ctx context.Context, userID string, limit int) ([]domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Conversation
	for _, c := range m.convs {
		if c.UserID == userID || c.OwnerID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) InsertMessage(ctx context.Context, msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.CreatedAt = time.Now()
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memStore) ListMessages(ctx context.Context, conversationID string, pg domain.PageQuery) (domain.MessagesPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Message
	for _, msg := range m.msgs {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return domain.MessagesPage{Items: out}, nil
}

func (m *memStore) InsertNotification(ctx context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = int64(len(m.notifs) + 1)
	n.CreatedAt = time.Now()
	m.notifs = append(m.notifs, n)
	return nil
}

func (m *memStore) ListNotifications(ctx context.Context, userID string, pg domain.PageQuery) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Notification
	for _, n := range m.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memStore) MarkRead(ctx context.Context, userID string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notifs {
		if n.ID == id && n.UserID == userID {
			now := time.Now()
			m.notifs[i].ReadAt = &now
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStore) MarkAllRead(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for i, n := range m.notifs {
		if n.UserID == userID && n.ReadAt == nil {
			m.notifs[i].ReadAt = &now
		}
	}
	return nil
}

func (m *memStore) CountUnread(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.notifs {
		if it.UserID == userID && it.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

type memCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func (c *memCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, _ := json.Marshal(v)
	c.store[key] = b
	return nil
}

func (c *memCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *memCache) DelPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

type memSMS struct {
	mu   sync.Mutex
	sent []string
}

func (s *memSMS) SendSMS(ctx context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, body)
	return nil
}
