package application

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/petstay/service-booking/internal/domain"
	bookingDomain "github.com/petstay/service-booking/internal/domain/booking"
	notifDomain "github.com/petstay/service-booking/internal/domain/notification"
	petDomain "github.com/petstay/service-booking/internal/domain/pet"
	reviewDomain "github.com/petstay/service-booking/internal/domain/review"
)

// fakeBookingRepo is an in-memory booking.Repository with version checking on
// Update, mirroring the optimistic locking of the real store.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
	versions map[uuid.UUID]int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*bookingDomain.Booking),
		versions: make(map[uuid.UUID]int64),
	}
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.BookingNumber() == number {
			return bk, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", number)
}

func (r *fakeBookingRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.OwnerID() == ownerID {
			result = append(result, bk)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.HostID() == hostID {
			result = append(result, bk)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) FindCompletedByHostID(ctx context.Context, hostID uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.HostID() == hostID && bk.Status() == bookingDomain.StatusCompleted {
			result = append(result, bk)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt().Before(result[j].UpdatedAt())
	})
	return result, nil
}

func (r *fakeBookingRepo) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		result = append(result, bk)
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = bk
	r.versions[bk.ID()] = bk.Version()
	return nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.versions[bk.ID()]
	if !ok {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	if stored != bk.Version()-1 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	r.bookings[bk.ID()] = bk
	r.versions[bk.ID()] = bk.Version()
	return nil
}

// fakePetRepo is an in-memory pet.Repository.
type fakePetRepo struct {
	pets map[uuid.UUID]*petDomain.Pet
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: make(map[uuid.UUID]*petDomain.Pet)}
}

func (r *fakePetRepo) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", id.String())
	}
	return p, nil
}

func (r *fakePetRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*petDomain.Pet, error) {
	var result []*petDomain.Pet
	for _, id := range ids {
		if p, ok := r.pets[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePetRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	var result []*petDomain.Pet
	for _, p := range r.pets {
		if p.OwnerID() == ownerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePetRepo) Save(ctx context.Context, p *petDomain.Pet) error {
	r.pets[p.ID()] = p
	return nil
}

func (r *fakePetRepo) Update(ctx context.Context, p *petDomain.Pet) error {
	r.pets[p.ID()] = p
	return nil
}

// fakeReviewRepo is an in-memory review.Repository.
type fakeReviewRepo struct {
	reviews []*reviewDomain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) FindByBookingAndReviewer(ctx context.Context, bookingID, reviewerID uuid.UUID) (*reviewDomain.Review, error) {
	for _, rv := range r.reviews {
		if rv.BookingID() == bookingID && rv.ReviewerID() == reviewerID {
			return rv, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByRevieweeID(ctx context.Context, revieweeID uuid.UUID) ([]*reviewDomain.Review, error) {
	var result []*reviewDomain.Review
	for _, rv := range r.reviews {
		if rv.RevieweeID() == revieweeID {
			result = append(result, rv)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*reviewDomain.Review, error) {
	var result []*reviewDomain.Review
	for _, rv := range r.reviews {
		if rv.BookingID() == bookingID {
			result = append(result, rv)
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) Save(ctx context.Context, rv *reviewDomain.Review) error {
	r.reviews = append(r.reviews, rv)
	return nil
}

// fakeNotificationRepo is an in-memory notification.Repository.
type fakeNotificationRepo struct {
	notifications []*notifDomain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*notifDomain.Notification, error) {
	for _, n := range r.notifications {
		if n.ID() == id {
			return n, nil
		}
	}
	return nil, domain.NewNotFoundError("Notification", id.String())
}

func (r *fakeNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*notifDomain.Notification, int64, error) {
	var result []*notifDomain.Notification
	for _, n := range r.notifications {
		if n.UserID() == userID {
			result = append(result, n)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID() == userID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Save(ctx context.Context, n *notifDomain.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	for _, n := range r.notifications {
		if n.ID() == id {
			n.MarkRead()
			return nil
		}
	}
	return domain.NewNotFoundError("Notification", id.String())
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.UserID() == userID {
			n.MarkRead()
		}
	}
	return nil
}

// emittedNotification records one Notify call on the recordingEmitter.
type emittedNotification struct {
	UserID    uuid.UUID
	Type      notifDomain.NotificationType
	Title     string
	Message   string
	BookingID *uuid.UUID
}

// recordingEmitter captures notifications instead of persisting them.
type recordingEmitter struct {
	emitted []emittedNotification
}

func (e *recordingEmitter) Notify(ctx context.Context, userID uuid.UUID, notifType notifDomain.NotificationType, title, message string, bookingID *uuid.UUID) {
	e.emitted = append(e.emitted, emittedNotification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		BookingID: bookingID,
	})
}
