package booking

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nailbooker/nailbooker/internal/catalog"
	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/notify"
)

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[int64]*Booking
	nextID   int64
	err      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[int64]*Booking)}
}

func (f *fakeRepo) Create(_ context.Context, b *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeRepo) List(_ context.Context, status *Status) ([]*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if status != nil && b.Status != *status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status Status) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return 0, nil
	}
	b.Status = status
	return 1, nil
}

func (f *fakeRepo) get(id int64) *Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookings[id]
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return f.err
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeNotifier) {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	repo := newFakeRepo()
	n := &fakeNotifier{}
	return NewService(repo, cat, n), repo, n
}

func validRequest() *SubmitRequest {
	return &SubmitRequest{
		Name:    "Jane Doe",
		Contact: "jane@example.com",
		Service: "gel-gloss",
		Date:    "2024-06-01",
		Time:    "14:30",
	}
}

func TestSubmitStoresPendingBooking(t *testing.T) {
	svc, repo, n := newTestService(t)

	b, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	stored := repo.get(b.ID)
	if stored == nil {
		t.Fatal("booking not stored")
	}
	if stored.Service != "Gel Gloss Manicure" {
		t.Fatalf("expected service name, got %q", stored.Service)
	}
	if stored.Status != StatusPending {
		t.Fatalf("expected Pending, got %q", stored.Status)
	}
	if stored.Date != "2024-06-01" || stored.Time != "14:30" {
		t.Fatalf("unexpected schedule %s %s", stored.Date, stored.Time)
	}

	if len(n.msgs) != 1 || !strings.Contains(n.msgs[0].Body, "Jane Doe") {
		t.Fatalf("expected one notification, got %+v", n.msgs)
	}
}

func TestSubmitLogsSlotWithoutTimestampClash(t *testing.T) {
	svc, _, _ := newTestService(t)

	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background(), &l)

	if _, err := svc.Submit(ctx, validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, `"slot_date":"2024-06-01"`) || !strings.Contains(line, `"slot_time":"14:30"`) {
		t.Fatalf("expected slot fields in log, got %s", line)
	}
	if strings.Count(line, `"time":`) != 1 {
		t.Fatalf("expected a single time key, got %s", line)
	}
}

func TestSubmitTrimsInput(t *testing.T) {
	svc, repo, _ := newTestService(t)

	req := validRequest()
	req.Name = "  Jane Doe  "
	req.Service = " gel-gloss "
	b, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := repo.get(b.ID).CustomerName; got != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitRequest)
		want   error
	}{
		{"missing name", func(r *SubmitRequest) { r.Name = "" }, ErrMissingFields},
		{"whitespace contact", func(r *SubmitRequest) { r.Contact = "   " }, ErrMissingFields},
		{"missing service", func(r *SubmitRequest) { r.Service = "" }, ErrMissingFields},
		{"impossible date", func(r *SubmitRequest) { r.Date = "2024-13-40" }, ErrInvalidDateTime},
		{"year zero", func(r *SubmitRequest) { r.Date = "0000-06-01" }, ErrInvalidDateTime},
		{"bad time", func(r *SubmitRequest) { r.Time = "25:99" }, ErrInvalidDateTime},
		{"unknown service", func(r *SubmitRequest) { r.Service = "pedicure" }, ErrUnknownService},
		{"name too long", func(r *SubmitRequest) { r.Name = strings.Repeat("a", 121) }, ErrFieldTooLong},
		{"missing wins over bad date", func(r *SubmitRequest) { r.Name = ""; r.Date = "nope" }, ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, n := newTestService(t)
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %T", err)
			}
			if repo.count() != 0 {
				t.Fatal("rejected submission must not be stored")
			}
			if len(n.msgs) != 0 {
				t.Fatal("rejected submission must not notify")
			}
		})
	}
}

func TestSubmitAcceptsMaxLengthFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validRequest()
	req.Name = strings.Repeat("é", 120)

	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("expected 120 characters to be accepted, got %v", err)
	}
}

func TestSubmitSurvivesNotifierFailure(t *testing.T) {
	svc, repo, n := newTestService(t)
	n.err = errors.New("smtp down")

	b, err := svc.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("notification failure must not fail submission: %v", err)
	}
	if repo.get(b.ID) == nil {
		t.Fatal("booking must be stored")
	}
}

func TestSubmitWithoutNotifier(t *testing.T) {
	cat, _ := catalog.Load("")
	svc := NewService(newFakeRepo(), cat, nil)

	if _, err := svc.Submit(context.Background(), validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmitPropagatesStoreFailure(t *testing.T) {
	svc, repo, n := newTestService(t)
	repo.err = errors.New("connection reset")

	_, err := svc.Submit(context.Background(), validRequest())
	if err == nil || IsValidation(err) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(n.msgs) != 0 {
		t.Fatal("failed store must not notify")
	}
}

func TestTransitions(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	b, _ := svc.Submit(ctx, validRequest())

	if err := svc.Approve(ctx, "owner", b.ID); err != nil {
		t.Fatal(err)
	}
	if got := repo.get(b.ID).Status; got != StatusApproved {
		t.Fatalf("expected Approved, got %q", got)
	}

	if err := svc.Cancel(ctx, "owner", b.ID); err != nil {
		t.Fatal(err)
	}
	if got := repo.get(b.ID).Status; got != StatusCancelled {
		t.Fatalf("expected Cancelled, got %q", got)
	}

	if err := svc.Approve(ctx, "owner", b.ID); err != nil {
		t.Fatal(err)
	}
	if got := repo.get(b.ID).Status; got != StatusApproved {
		t.Fatalf("cancelled booking must be re-approvable, got %q", got)
	}
}

func TestTransitionMissingIDIsNoop(t *testing.T) {
	svc, repo, _ := newTestService(t)

	if err := svc.Approve(context.Background(), "owner", 9999); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Cancel(context.Background(), "owner", 9999); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.count() != 0 {
		t.Fatal("missing id must not create rows")
	}
}

func TestListOrderAndFilter(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	schedule := [][2]string{
		{"2024-06-02", "09:00"},
		{"2024-06-01", "15:00"},
		{"2024-06-01", "10:00"},
	}
	for _, s := range schedule {
		req := validRequest()
		req.Date, req.Time = s[0], s[1]
		if _, err := svc.Submit(ctx, req); err != nil {
			t.Fatal(err)
		}
	}
	_ = svc.Approve(ctx, "owner", 1)

	all, err := svc.List(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{3, 2, 1}
	for i, b := range all {
		if b.ID != want[i] {
			t.Fatalf("position %d: expected id %d, got %d", i, want[i], b.ID)
		}
	}

	approved := StatusApproved
	filtered, _ := svc.List(ctx, &approved)
	if len(filtered) != 1 || filtered[0].ID != 1 {
		t.Fatalf("unexpected filtered list %+v", filtered)
	}
}

func TestListOrderClause(t *testing.T) {
	if !strings.Contains(listOrder, "ORDER BY b.date ASC, b.time ASC") {
		t.Fatalf("list order must sort by date then time: %q", listOrder)
	}
}
