package app_test

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

// ---- shared fakes ----

func ptr[T any](v T) *T { return &v }

type fakeBusinessRepo struct {
	mu       sync.Mutex
	nextID   int64
	items    map[int64]domain.Business
	recalcs  []int64
	events   *[]string // optional shared ordering log
	ownerErr error
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{items: map[int64]domain.Business{}}
}

func (f *fakeBusinessRepo) InsertBusiness(ctx context.Context, b domain.Business) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	f.items[b.ID] = b
	return b.ID, nil
}

func (f *fakeBusinessRepo) GetBusiness(ctx context.Context, id int64) (domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return domain.Business{}, domain.ErrBusinessNotFound
	}
	return b, nil
}

func (f *fakeBusinessRepo) ListBusinesses(ctx context.Context, q domain.BusinessQuery) (domain.BusinessesPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Business
	for _, b := range f.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return domain.BusinessesPage{Items: out}, nil
}

func (f *fakeBusinessRepo) UpdateBusiness(ctx context.Context, b domain.Business) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[b.ID]; !ok {
		return domain.ErrBusinessNotFound
	}
	f.items[b.ID] = b
	return nil
}

func (f *fakeBusinessRepo) DeleteBusiness(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.ErrBusinessNotFound
	}
	delete(f.items, id)
	if f.events != nil {
		*f.events = append(*f.events, "db:delete")
	}
	return nil
}

func (f *fakeBusinessRepo) SetBusinessOwner(ctx context.Context, id int64, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ownerErr != nil {
		return f.ownerErr
	}
	b, ok := f.items[id]
	if !ok {
		return domain.ErrBusinessNotFound
	}
	b.OwnerID = &userID
	f.items[id] = b
	return nil
}

func (f *fakeBusinessRepo) SetBusinessCoords(ctx context.Context, id int64, lat, lon float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return domain.ErrBusinessNotFound
	}
	b.Lat, b.Lon = &lat, &lon
	f.items[id] = b
	return nil
}

func (f *fakeBusinessRepo) ListUngeocoded(ctx context.Context, limit int) ([]domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Business
	for _, b := range f.items {
		if b.Lat == nil && b.Address != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBusinessRepo) RecalcBusinessStats(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recalcs = append(f.recalcs, id)
	return nil
}

type fakeReviewRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]domain.Review
	flags  map[int64][]string // reviewID -> flagger userIDs
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{items: map[int64]domain.Review{}, flags: map[int64][]string{}}
}

func (f *fakeReviewRepo) InsertReview(ctx context.Context, rv domain.Review) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.items {
		if r.BusinessID == rv.BusinessID && r.UserID == rv.UserID {
			return 0, domain.ErrReviewDuplicate
		}
	}
	f.nextID++
	rv.ID = f.nextID
	rv.CreatedAt = time.Now()
	f.items[rv.ID] = rv
	return rv.ID, nil
}

func (f *fakeReviewRepo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rv, ok := f.items[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	return rv, nil
}

func (f *fakeReviewRepo) ListReviews(ctx context.Context, businessID int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, rv := range f.items {
		if rv.BusinessID == businessID && rv.Status == domain.ReviewPublished {
			out = append(out, rv)
		}
	}
	return domain.ReviewsPage{Items: out}, nil
}

func (f *fakeReviewRepo) DeleteReview(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeReviewRepo) SetReviewStatus(ctx context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rv, ok := f.items[id]
	if !ok {
		return domain.ErrReviewNotFound
	}
	rv.Status = status
	f.items[id] = rv
	return nil
}

func (f *fakeReviewRepo) HasReview(ctx context.Context, businessID int64, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rv := range f.items {
		if rv.BusinessID == businessID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, rv := range f.items {
		if rv.UserID == userID && !rv.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) InsertFlag(ctx context.Context, reviewID int64, userID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.flags[reviewID] {
		if u == userID {
			return nil
		}
	}
	f.flags[reviewID] = append(f.flags[reviewID], userID)
	rv := f.items[reviewID]
	rv.FlagCount++
	f.items[reviewID] = rv
	return nil
}

func (f *fakeReviewRepo) CountFlagsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, users := range f.flags {
		for _, u := range users {
			if u == userID {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) ListFlagged(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, rv := range f.items {
		if rv.FlagCount > 0 && rv.Status != domain.ReviewRemoved {
			out = append(out, rv)
		}
	}
	return domain.ReviewsPage{Items: out}, nil
}

type fakeClaimRepo struct {
	mu    sync.Mutex
	items map[string]domain.Claim
}

func newFakeClaimRepo() *fakeClaimRepo { return &fakeClaimRepo{items: map[string]domain.Claim{}} }

func (f *fakeClaimRepo) InsertClaim(ctx context.Context, c domain.Claim) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[c.ID] = c
	return nil
}

func (f *fakeClaimRepo) GetClaim(ctx context.Context, id string) (domain.Claim, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return domain.Claim{}, domain.ErrClaimNotFound
	}
	return c, nil
}

func (f *fakeClaimRepo) GetOpenClaim(ctx context.Context, businessID int64) (domain.Claim, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.BusinessID == businessID && domain.ClaimOpen(c.Status) {
			return c, nil
		}
	}
	return domain.Claim{}, domain.ErrClaimNotFound
}

func (f *fakeClaimRepo) UpdateClaim(ctx context.Context, c domain.Claim) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[c.ID]; !ok {
		return domain.ErrClaimNotFound
	}
	f.items[c.ID] = c
	return nil
}

type fakeSavedRepo struct {
	mu    sync.Mutex
	items map[string]map[int64]time.Time
	biz   *fakeBusinessRepo
}

func newFakeSavedRepo(biz *fakeBusinessRepo) *fakeSavedRepo {
	return &fakeSavedRepo{items: map[string]map[int64]time.Time{}, biz: biz}
}

func (f *fakeSavedRepo) SaveItem(ctx context.Context, userID string, businessID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[userID] == nil {
		f.items[userID] = map[int64]time.Time{}
	}
	if _, dup := f.items[userID][businessID]; !dup {
		f.items[userID][businessID] = time.Now()
	}
	return nil
}

func (f *fakeSavedRepo) UnsaveItem(ctx context.Context, userID string, businessID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[userID], businessID)
	return nil
}

func (f *fakeSavedRepo) ListSaved(ctx context.Context, userID string, pg domain.PageQuery) ([]domain.Business, error) {
	f.mu.Lock()
	ids := make([]int64, 0, len(f.items[userID]))
	for id := range f.items[userID] {
		ids = append(ids, id)
	}
	f.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []domain.Business
	for _, id := range ids {
		if b, err := f.biz.GetBusiness(ctx, id); err == nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeSavedRepo) CountSaved(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items[userID]), nil
}

type fakeMsgRepo struct {
	mu    sync.Mutex
	convs map[string]domain.Conversation
	msgs  []domain.Message
}

func newFakeMsgRepo() *fakeMsgRepo { return &fakeMsgRepo{convs: map[string]domain.Conversation{}} }

func (f *fakeMsgRepo) FindConversation(ctx context.Context, userID string, businessID int64) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.UserID == userID && c.BusinessID == businessID {
			return c, nil
		}
	}
	return domain.Conversation{}, domain.ErrNotFound
}

func (f *fakeMsgRepo) GetConversation(ctx context.Context, id string) (domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[id]
	if !ok {
		return domain.Conversation{}, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeMsgRepo) InsertConversation(ctx context.Context, c domain.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.CreatedAt = time.Now()
	c.LastMessageAt = c.CreatedAt
	f.convs[c.ID] = c
	return nil
}

func (f *fakeMsgRepo) ListConversations(ctx context.Context, userID string, limit int) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Conversation
	for _, c := range f.convs {
		if c.UserID == userID || c.OwnerID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeMsgRepo) InsertMessage(ctx context.Context, m domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.CreatedAt = time.Now()
	f.msgs = append(f.msgs, m)
	if c, ok := f.convs[m.ConversationID]; ok {
		c.LastMessageAt = m.CreatedAt
		f.convs[m.ConversationID] = c
	}
	return nil
}

func (f *fakeMsgRepo) ListMessages(ctx context.Context, conversationID string, pg domain.PageQuery) (domain.MessagesPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Message
	for _, m := range f.msgs {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return domain.MessagesPage{Items: out}, nil
}

type fakeNotifRepo struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (f *fakeNotifRepo) InsertNotification(ctx context.Context, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = int64(len(f.items) + 1)
	n.CreatedAt = time.Now()
	f.items = append(f.items, n)
	return nil
}

func (f *fakeNotifRepo) ListNotifications(ctx context.Context, userID string, pg domain.PageQuery) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifRepo) MarkRead(ctx context.Context, userID string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.items {
		if n.ID == id && n.UserID == userID {
			now := time.Now()
			f.items[i].ReadAt = &now
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeNotifRepo) MarkAllRead(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for i, n := range f.items {
		if n.UserID == userID && n.ReadAt == nil {
			f.items[i].ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotifRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.items {
		if it.UserID == userID && it.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

// fakeCache stores JSON so it stays type-agnostic, like the real adapter.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, _ := json.Marshal(v)
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) DelPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []string // "to|body"
	err  error
}

func (f *fakeSMS) SendSMS(ctx context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+"|"+body)
	return nil
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmail) SendEmail(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+"|"+subject)
	return nil
}

type fakeObjStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	events  *[]string
	listErr error
	upErr   error
}

func newFakeObjStore() *fakeObjStore { return &fakeObjStore{objects: map[string][]byte{}} }

func (f *fakeObjStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.upErr != nil {
		return "", f.upErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "https://cdn.example/" + key, nil
}

func (f *fakeObjStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	if f.events != nil {
		*f.events = append(*f.events, "objstore:delete:"+key)
	}
	return nil
}

func (f *fakeObjStore) List(ctx context.Context, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for k := range f.objects {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeGeo struct {
	pt  domain.Coords
	err error
}

func (f *fakeGeo) Geocode(ctx context.Context, address string) (domain.Coords, error) {
	if f.err != nil {
		return domain.Coords{}, f.err
	}
	return f.pt, nil
}
